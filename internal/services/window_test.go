package services_test

import (
	"testing"
	"time"

	"github.com/localnerve/gss-portal/internal/models"
	"github.com/localnerve/gss-portal/internal/services"
)

func TestGetConfigCreatesDefaultSingleton(t *testing.T) {
	db := setupTestDB(t)

	cfg, err := services.GetConfig(db)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg.ConfigID != models.ApplicationConfigID {
		t.Errorf("Expected singleton id %d, got %d", models.ApplicationConfigID, cfg.ConfigID)
	}
	if !cfg.ApplicationsOpen {
		t.Error("Expected the window open by default")
	}
	if !cfg.LegacyLookupEnabled {
		t.Error("Expected legacy lookup enabled by default")
	}

	// A second fetch returns the same row, not a new one.
	if _, err := services.GetConfig(db); err != nil {
		t.Fatalf("Second GetConfig failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.ApplicationConfig{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count config rows: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected a single config row, got %d", count)
	}
}

func TestWindowClosedByFlag(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.UpdateConfig(db, services.ConfigUpdate{
		ApplicationsOpen:    false,
		LegacyLookupEnabled: true,
	}); err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}

	closed, err := services.IsClosedNow(db)
	if err != nil {
		t.Fatalf("IsClosedNow failed: %v", err)
	}
	if !closed {
		t.Error("Expected closed when applications_open is false")
	}
}

func TestWindowClosedByDeadline(t *testing.T) {
	db := setupTestDB(t)

	past := time.Now().Add(-time.Hour)
	cfg, err := services.UpdateConfig(db, services.ConfigUpdate{
		ApplicationsOpen:    true,
		CloseAt:             &past,
		LegacyLookupEnabled: true,
	})
	if err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}

	// The flag stays true; the deadline alone closes the window.
	if !cfg.ApplicationsOpen {
		t.Error("Expected applications_open still true")
	}
	closed, err := services.IsClosedNow(db)
	if err != nil {
		t.Fatalf("IsClosedNow failed: %v", err)
	}
	if !closed {
		t.Error("Expected closed past close_at even while applications_open is true")
	}
}

func TestWindowOpenBeforeDeadline(t *testing.T) {
	db := setupTestDB(t)

	future := time.Now().Add(time.Hour)
	if _, err := services.UpdateConfig(db, services.ConfigUpdate{
		ApplicationsOpen:    true,
		CloseAt:             &future,
		LegacyLookupEnabled: true,
	}); err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}

	closed, err := services.IsClosedNow(db)
	if err != nil {
		t.Fatalf("IsClosedNow failed: %v", err)
	}
	if closed {
		t.Error("Expected open before close_at")
	}
}

func TestUpdateConfigClearsTimestamps(t *testing.T) {
	db := setupTestDB(t)

	at := time.Now().Add(time.Hour)
	if _, err := services.UpdateConfig(db, services.ConfigUpdate{
		ApplicationsOpen:    true,
		CloseAt:             &at,
		RolloverAt:          &at,
		LegacyLookupEnabled: true,
	}); err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}

	cfg, err := services.UpdateConfig(db, services.ConfigUpdate{
		ApplicationsOpen:    true,
		LegacyLookupEnabled: true,
	})
	if err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}
	if cfg.CloseAt != nil || cfg.RolloverAt != nil {
		t.Error("Expected nil timestamps to clear the stored values")
	}

	stored, err := services.GetConfig(db)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if stored.CloseAt != nil || stored.RolloverAt != nil {
		t.Error("Expected cleared timestamps persisted")
	}
}

func TestRolloverDue(t *testing.T) {
	db := setupTestDB(t)

	due, err := services.RolloverDue(db)
	if err != nil {
		t.Fatalf("RolloverDue failed: %v", err)
	}
	if due {
		t.Error("Expected rollover not due without a cutover")
	}

	past := time.Now().Add(-time.Minute)
	if _, err := services.UpdateConfig(db, services.ConfigUpdate{
		ApplicationsOpen:    true,
		RolloverAt:          &past,
		LegacyLookupEnabled: true,
	}); err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}

	due, err = services.RolloverDue(db)
	if err != nil {
		t.Fatalf("RolloverDue failed: %v", err)
	}
	if !due {
		t.Error("Expected rollover due after the cutover")
	}
}
