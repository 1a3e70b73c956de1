// legacy.go
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

package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/localnerve/gss-portal/internal/models"
	"github.com/localnerve/gss-portal/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// LookupLegacy matches historical paper records by case-insensitive exact
// first-name and surname equality, optionally narrowed to an exact year of
// study. Ambiguity among multiple candidates is resolved by the applicant,
// not here.
func LookupLegacy(db *gorm.DB, firstName, surname string, yearOfStudy *int) ([]models.LegacyStudent, error) {
	firstName = strings.TrimSpace(firstName)
	surname = strings.TrimSpace(surname)
	if firstName == "" || surname == "" {
		return nil, &types.ValidationError{
			Message: "first name and surname are required",
		}
	}

	query := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Where("LOWER(first_name) = ? AND LOWER(surname) = ?",
			strings.ToLower(firstName), strings.ToLower(surname))
	if yearOfStudy != nil {
		query = query.Where("year_of_study = ?", *yearOfStudy)
	}

	var candidates []models.LegacyStudent
	if err := query.Order("legacy_id").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

// ConfirmLegacy binds a chosen legacy record to the invoking account and
// creates exactly one continuing PENDING application for it. The chosen
// course must belong to the chosen institution. A missing profile is created
// lazily, seeded from the legacy record's name. The caller must have checked
// the rollover/legacy-lookup gate before invoking.
func ConfirmLegacy(db *gorm.DB, legacyID, institutionID, courseID uint64, yearOfStudy int, userID, email string) (*models.Application, []Event, error) {
	if yearOfStudy <= 0 {
		return nil, nil, &types.ValidationError{
			Message: "year of study must be positive",
			Fields:  []types.FieldError{{Field: "year_of_study", Message: "must be positive"}},
		}
	}

	var app *models.Application
	var events []Event

	err := db.Transaction(func(tx *gorm.DB) error {
		silent := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})

		var legacy models.LegacyStudent
		if err := silent.Where("legacy_id = ?", legacyID).
			First(&legacy).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFound{Kind: "legacy record", ID: strconv.FormatUint(legacyID, 10)}
			}
			return err
		}

		var institution models.Institution
		if err := silent.Where("institution_id = ?", institutionID).
			First(&institution).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.SelectionError{Message: "selected institution does not exist"}
			}
			return err
		}

		var course models.Course
		if err := silent.Where("course_id = ?", courseID).
			First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.SelectionError{Message: "selected course does not exist"}
			}
			return err
		}
		if course.InstitutionID != institution.InstitutionID {
			return &types.SelectionError{Message: "selected course does not belong to the selected institution"}
		}

		// Lazily create the profile, seeded from the legacy name.
		profile := models.ApplicantProfile{
			UserID:    userID,
			FirstName: legacy.FirstName,
			Surname:   legacy.Surname,
			Email:     email,
		}
		if err := tx.Where("user_id = ?", userID).
			FirstOrCreate(&profile).Error; err != nil {
			return err
		}

		year := yearOfStudy
		next := models.Application{
			Status:        models.StatusPending,
			ApplicantID:   profile.ProfileID,
			InstitutionID: institution.InstitutionID,
			CourseID:      &course.CourseID,
			IsContinuing:  true,
			YearOfStudy:   &year,
			Email:         email,
		}
		if err := tx.Create(&next).Error; err != nil {
			return err
		}
		app = &next

		ev := NewEvent(EventContinuationCreated, email)
		ev.Payload = map[string]interface{}{
			"application_id": next.ApplicationID,
			"legacy_id":      legacy.LegacyID,
			"year_of_study":  year,
		}
		events = append(events, ev)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return app, events, nil
}

// LegacyPathAvailable reports whether the legacy-migration path may still be
// offered: the lookup flag is on and the rollover cutover has not passed.
func LegacyPathAvailable(db *gorm.DB, now time.Time) (bool, error) {
	cfg, err := GetConfig(db)
	if err != nil {
		return false, err
	}
	if !cfg.LegacyLookupEnabled {
		return false, nil
	}
	return !cfg.RolloverDue(now), nil
}
