package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/localnerve/gss-portal/internal/middleware"
	"github.com/localnerve/gss-portal/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.ApplicationConfig{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func windowApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Post("/api/applications", middleware.ApplicationWindow(db), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

// TestWindowOpenPassesThrough tests the default open window
func TestWindowOpenPassesThrough(t *testing.T) {
	db := setupTestDB(t)
	app := windowApp(db)

	req := httptest.NewRequest("POST", "/api/applications", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

// TestWindowClosedByFlag tests the administrative close
func TestWindowClosedByFlag(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Create(&models.ApplicationConfig{
		ConfigID:         models.ApplicationConfigID,
		ApplicationsOpen: false,
	}).Error; err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}
	app := windowApp(db)

	req := httptest.NewRequest("POST", "/api/applications", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
}

// TestWindowClosedByDeadline tests the deadline close
func TestWindowClosedByDeadline(t *testing.T) {
	db := setupTestDB(t)
	past := time.Now().Add(-time.Hour)
	if err := db.Create(&models.ApplicationConfig{
		ConfigID:         models.ApplicationConfigID,
		ApplicationsOpen: true,
		CloseAt:          &past,
	}).Error; err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}
	app := windowApp(db)

	req := httptest.NewRequest("POST", "/api/applications", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
}
