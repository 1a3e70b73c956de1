package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/localnerve/gss-portal/internal/handlers"
	"github.com/localnerve/gss-portal/internal/models"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/tests/helpers"
)

// setupTestDB creates an in-memory SQLite database for handler tests
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Institution{},
		&models.Course{},
		&models.ApplicantProfile{},
		&models.Application{},
		&models.Review{},
		&models.Payment{},
		&models.LegacyStudent{},
		&models.ApplicationConfig{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// withUser injects the auth payload the way the auth middleware does,
// so handlers can be exercised without a running authorizer.
func withUser(id, email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"id":    id,
			"email": email,
		})
		return c.Next()
	}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}

// TestListInstitutions tests GET /api/institutions
func TestListInstitutions(t *testing.T) {
	db := setupTestDB(t)
	helpers.CreateTestInstitution(t, db, "UNZA", "CS101", 4, "5000.00")

	app := fiber.New()
	handler := &handlers.PublicHandler{DB: db}
	app.Get("/api/institutions", handler.ListInstitutions)

	req := httptest.NewRequest("GET", "/api/institutions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var institutions []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&institutions); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(institutions) != 1 {
		t.Errorf("Expected 1 institution, got %d", len(institutions))
	}
}

// TestListCourses tests GET /api/institutions/:id/courses
func TestListCourses(t *testing.T) {
	db := setupTestDB(t)
	inst, _ := helpers.CreateTestInstitution(t, db, "UNZA", "CS101", 4, "5000.00")

	app := fiber.New()
	handler := &handlers.PublicHandler{DB: db}
	app.Get("/api/institutions/:id/courses", handler.ListCourses)

	url := "/api/institutions/" + strconv.FormatUint(inst.InstitutionID, 10) + "/courses"
	req := httptest.NewRequest("GET", url, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var courses []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&courses); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(courses) != 1 {
		t.Errorf("Expected 1 course, got %d", len(courses))
	}
}

// TestListCoursesUnknownInstitution tests the 404 path
func TestListCoursesUnknownInstitution(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.PublicHandler{DB: db}
	app.Get("/api/institutions/:id/courses", handler.ListCourses)

	req := httptest.NewRequest("GET", "/api/institutions/999/courses", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

// TestWindowStatus tests GET /api/config/status
func TestWindowStatus(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.PublicHandler{DB: db}
	app.Get("/api/config/status", handler.WindowStatus)

	req := httptest.NewRequest("GET", "/api/config/status", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["open"] != true {
		t.Error("Expected open=true for the default configuration")
	}
	if result["legacy_path"] != true {
		t.Error("Expected legacy_path=true for the default configuration")
	}
}

// TestServeDocument tests the signed media route
func TestServeDocument(t *testing.T) {
	db := setupTestDB(t)

	store := services.NewLocalDocumentStore(t.TempDir(), "http://localhost:3000/media", "test-secret")
	key := "applications/1/test.pdf"
	if err := store.Put(key, []byte("%PDF-1.4 test")); err != nil {
		t.Fatalf("Failed to store document: %v", err)
	}

	app := fiber.New()
	handler := &handlers.PublicHandler{DB: db, Store: store}
	app.Get("/media/*", handler.ServeDocument)

	signed, err := store.SignedURL(key, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("Failed to sign URL: %v", err)
	}

	req := httptest.NewRequest("GET", signed, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf content type, got %q", ct)
	}
}

// TestServeDocumentTamperedSignature tests signature rejection
func TestServeDocumentTamperedSignature(t *testing.T) {
	db := setupTestDB(t)

	store := services.NewLocalDocumentStore(t.TempDir(), "http://localhost:3000/media", "test-secret")
	key := "applications/1/test.pdf"
	if err := store.Put(key, []byte("%PDF-1.4 test")); err != nil {
		t.Fatalf("Failed to store document: %v", err)
	}

	app := fiber.New()
	handler := &handlers.PublicHandler{DB: db, Store: store}
	app.Get("/media/*", handler.ServeDocument)

	expires := time.Now().Add(time.Minute).Unix()
	url := path.Join("/media", key) +
		"?expires=" + strconv.FormatInt(expires, 10) + "&signature=deadbeef"

	req := httptest.NewRequest("GET", url, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
}
