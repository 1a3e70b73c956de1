package services

import (
	"time"

	"github.com/localnerve/gss-portal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetConfig fetches the application window singleton, creating the default
// open row on first access.
func GetConfig(db *gorm.DB) (*models.ApplicationConfig, error) {
	cfg := models.ApplicationConfig{
		ConfigID:            models.ApplicationConfigID,
		ApplicationsOpen:    true,
		LegacyLookupEnabled: true,
	}
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Where("config_id = ?", models.ApplicationConfigID).
		FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigUpdate carries the administrative window settings. Pointer fields
// clear the stored timestamp when nil.
type ConfigUpdate struct {
	ApplicationsOpen    bool       `json:"applications_open"`
	CloseAt             *time.Time `json:"close_at"`
	RolloverAt          *time.Time `json:"rollover_at"`
	LegacyLookupEnabled bool       `json:"legacy_lookup_enabled"`
}

// UpdateConfig applies administrative changes to the window singleton.
func UpdateConfig(db *gorm.DB, update ConfigUpdate) (*models.ApplicationConfig, error) {
	var cfg *models.ApplicationConfig

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		cfg, err = GetConfig(tx)
		if err != nil {
			return err
		}

		cfg.ApplicationsOpen = update.ApplicationsOpen
		cfg.CloseAt = update.CloseAt
		cfg.RolloverAt = update.RolloverAt
		cfg.LegacyLookupEnabled = update.LegacyLookupEnabled

		return tx.Model(cfg).
			Select("ApplicationsOpen", "CloseAt", "RolloverAt", "LegacyLookupEnabled").
			Updates(cfg).Error
	})
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsClosedNow reports whether submissions and edits are currently rejected.
func IsClosedNow(db *gorm.DB) (bool, error) {
	cfg, err := GetConfig(db)
	if err != nil {
		return false, err
	}
	return cfg.IsClosedNow(time.Now()), nil
}

// RolloverDue reports whether the legacy lookup path has been cut over.
func RolloverDue(db *gorm.DB) (bool, error) {
	cfg, err := GetConfig(db)
	if err != nil {
		return false, err
	}
	return cfg.RolloverDue(time.Now()), nil
}
