// e2e_test.go
//
// A scholarship-application management portal data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of gss-portal.
// gss-portal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// gss-portal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with gss-portal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/localnerve/gss-portal/internal/config"
	"github.com/localnerve/gss-portal/internal/database"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/tests/helpers"
)

// TestE2EWithFullStack tests the entire service stack
func TestE2EWithFullStack(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	ctx := context.Background()

	tc, err := helpers.CreateAllTestContainers(t)
	if err != nil {
		t.Fatalf("Failed to start test containers: %v", err)
	}
	defer tc.Terminate(t)

	portalHost, _ := tc.PortalContainer.Host(ctx)
	portalPort, _ := tc.PortalContainer.MappedPort(ctx, "3000")
	baseURL := fmt.Sprintf("http://%s:%s", portalHost, portalPort.Port())

	// Wait a bit for everything to stabilize
	time.Sleep(5 * time.Second)

	// Run E2E tests
	t.Run("HealthCheck", func(t *testing.T) {
		testHealthCheck(t, tc)
	})

	t.Run("PrometheusMetrics", func(t *testing.T) {
		testPrometheusMetrics(t, baseURL)
	})

	t.Run("SwaggerUI", func(t *testing.T) {
		testSwaggerUI(t, baseURL)
	})

	// Public API Access
	t.Run("PublicAPIAccess", func(t *testing.T) {
		testPublicAPIAccess(t, baseURL)
	})

	t.Run("ApplicationWindow", func(t *testing.T) {
		testWindowStatus(t, baseURL)
	})

	t.Run("ApplicantSession", func(t *testing.T) {
		authzHost, _ := tc.AuthorizerContainer.Host(ctx)
		authzPort, _ := tc.AuthorizerContainer.MappedPort(ctx, "8080")
		authzURL := fmt.Sprintf("http://%s:%s", authzHost, authzPort.Port())
		testApplicantSession(t, baseURL, authzURL)
	})
}

func testHealthCheck(t *testing.T, tc *helpers.TestContainers) {
	ctx := context.Background()

	// 1. Prepare configuration for the health check
	// We need to point to the mapped ports on localhost, not internal container names
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Update DB host and port to mapped values
	dbHost, _ := tc.DBContainer.Host(ctx)
	dbPort, _ := tc.DBContainer.MappedPort(ctx, "3306")
	cfg.DBHost = dbHost
	cfg.DBPort = dbPort.Port()

	// Update Authorizer URL to mapped value
	authzHost, _ := tc.AuthorizerContainer.Host(ctx)
	authzPort, _ := tc.AuthorizerContainer.MappedPort(ctx, "8080")
	cfg.AuthzURL = fmt.Sprintf("http://%s:%s", authzHost, authzPort.Port())

	// The host process has no media volume; point the check at a scratch dir
	cfg.MediaRoot = t.TempDir()

	// 2. Establish GORM connection to the test database
	gormDB, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	defer database.Close(gormDB)

	// 3. Perform the health check
	result := services.HealthCheck(cfg, gormDB)

	// 4. Verify the result
	if result.Status != "healthy" {
		t.Errorf("Health check failed: %+v", result)
	}

	t.Logf("Health check passed: status=%s, database=%s, authorizer=%s",
		result.Status, result.Database, result.Authorizer)
}

func testPrometheusMetrics(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/metrics")
	if err != nil {
		t.Fatalf("Failed to get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 for metrics, got %d. Body: %s", resp.StatusCode, bodyStr)
	}

	t.Logf("Metrics endpoint working, found %d bytes of metrics", len(bodyStr))
}

func testSwaggerUI(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/swagger/index.html")
	if err != nil {
		t.Fatalf("Failed to get Swagger UI: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 for Swagger UI, got %d", resp.StatusCode)
	}
}

func testPublicAPIAccess(t *testing.T, baseURL string) {
	// The institution catalog is readable without a session
	resp, err := http.Get(baseURL + "/api/institutions")
	if err != nil {
		t.Fatalf("Failed to access public API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Logf("Response body: %s", string(body))
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
		return
	}

	var institutions []interface{}
	if err := json.NewDecoder(resp.Body).Decode(&institutions); err != nil {
		t.Errorf("Response is not a JSON array: %v", err)
	}

	// Applicant routes require a session cookie
	resp2, err := http.Get(baseURL + "/api/applications")
	if err != nil {
		t.Fatalf("Failed to access protected API: %v", err)
	}
	defer resp2.Body.Close()

	if resp2.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403 without session, got %d", resp2.StatusCode)
	}
}

func testApplicantSession(t *testing.T, baseURL, authzURL string) {
	session := helpers.AcquireApplicantSession(t, authzURL,
		"applicant-e2e@example.com", helpers.GeneratePassword())

	req, err := http.NewRequest("GET", baseURL+"/api/applications", nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Cookie", "cookie_session="+session)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to access applicant API: %v", err)
	}
	defer resp.Body.Close()

	helpers.RequireStatus(t, resp, http.StatusOK)

	// Fresh account, no profile yet, so the list is empty
	var views []interface{}
	helpers.DecodeJSON(t, resp, &views)
	if len(views) != 0 {
		t.Errorf("Expected empty application list for a fresh account, got %d", len(views))
	}
}

func testWindowStatus(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/api/config/status")
	if err != nil {
		t.Fatalf("Failed to get window status: %v", err)
	}
	defer resp.Body.Close()

	helpers.RequireStatus(t, resp, http.StatusOK)

	var result map[string]interface{}
	helpers.DecodeJSON(t, resp, &result)
	if _, ok := result["open"]; !ok {
		t.Errorf("Window status missing open field: %v", result)
	}
}
