// continuation.go
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
	"time"

	"github.com/localnerve/gss-portal/internal/database"
	"github.com/localnerve/gss-portal/internal/models"
	"github.com/localnerve/gss-portal/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CanStartContinuingCycle reports whether the application may spawn a
// next-year continuing application. All of these must hold: a course is
// assigned, year_of_study is set and positive, status is exactly APPROVED,
// the program length is unknown or strictly greater than the current year,
// and no continuation already exists at year+1.
func CanStartContinuingCycle(db *gorm.DB, app *models.Application) (bool, error) {
	if app.CourseID == nil || app.YearOfStudy == nil || *app.YearOfStudy <= 0 {
		return false, nil
	}
	if app.Status != models.StatusApproved {
		return false, nil
	}

	var course models.Course
	if err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Where("course_id = ?", *app.CourseID).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	// Unknown program length is permissive.
	if course.YearsOfStudy != nil && *course.YearsOfStudy <= *app.YearOfStudy {
		return false, nil
	}

	var count int64
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Model(&models.Application{}).
		Where("original_application_id = ? AND year_of_study = ?",
			app.ApplicationID, *app.YearOfStudy+1).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count == 0, nil
}

// CreateContinuingApplication spawns the next academic-year application for
// an approved source, or fetches the existing one. The eligibility re-check
// and the insert happen inside one transaction under the source row's lock,
// so two concurrent callers converge on a single continuation row. Returns
// (nil, nil, nil) when the source is not eligible.
func CreateContinuingApplication(db *gorm.DB, appID uint64, when time.Time) (*models.Application, []Event, error) {
	if when.IsZero() {
		when = time.Now().UTC()
	}

	var continuation *models.Application
	var events []Event

	err := db.Transaction(func(tx *gorm.DB) error {
		var source models.Application
		if err := database.LockForUpdate(
			tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})).
			Where("application_id = ?", appID).
			First(&source).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFound{Kind: "application", ID: strconv.FormatUint(appID, 10)}
			}
			return err
		}

		eligible, err := CanStartContinuingCycle(tx, &source)
		if err != nil {
			return err
		}

		targetYear := 0
		if source.YearOfStudy != nil {
			targetYear = *source.YearOfStudy + 1
		}

		if !eligible {
			// The loser of a creation race observes the winner's row here
			// and returns it instead of failing.
			if source.Status == models.StatusApproved && source.YearOfStudy != nil {
				var existing models.Application
				err := tx.Where("original_application_id = ? AND year_of_study = ?",
					source.ApplicationID, targetYear).
					First(&existing).Error
				if err == nil {
					continuation = &existing
					return nil
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
			}
			return nil
		}

		next := models.Application{
			Status:                models.StatusPending,
			ApplicantID:           source.ApplicantID,
			InstitutionID:         source.InstitutionID,
			CourseID:              source.CourseID,
			OriginalApplicationID: &source.ApplicationID,
			IsContinuing:          true,
			YearOfStudy:           &targetYear,
			ActiveStudentID:       source.ActiveStudentID,
			Email:                 source.Email,
			CurrentAddress:        source.CurrentAddress,
			LastCycleStartedAt:    &when,
		}
		if err := tx.Create(&next).Error; err != nil {
			return err
		}

		// Stamp the cycle start on the source side as well.
		if err := tx.Model(&source).
			Update("last_cycle_started_at", when).Error; err != nil {
			return err
		}

		continuation = &next

		ev := NewEvent(EventContinuationCreated, source.Email)
		ev.Payload = map[string]interface{}{
			"source_application_id": source.ApplicationID,
			"application_id":        next.ApplicationID,
			"year_of_study":         targetYear,
		}
		events = append(events, ev)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return continuation, events, nil
}

// IncrementYearAndCheckGraduation advances the same row's year counter by one
// and marks the application GRADUATING when the new year reaches the program
// length. This administrative advance applies only to the current row, before
// its own next continuation is spawned. Returns false without writing when
// the course or program length is unknown, or the year is already at or past
// the program length.
func IncrementYearAndCheckGraduation(db *gorm.DB, appID uint64) (bool, []Event, error) {
	var advanced bool
	var events []Event

	err := db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := database.LockForUpdate(
			tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})).
			Where("application_id = ?", appID).
			First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFound{Kind: "application", ID: strconv.FormatUint(appID, 10)}
			}
			return err
		}

		if app.CourseID == nil || app.YearOfStudy == nil {
			return nil
		}

		var course models.Course
		if err := tx.Where("course_id = ?", *app.CourseID).
			First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if course.YearsOfStudy == nil || *app.YearOfStudy >= *course.YearsOfStudy {
			return nil
		}

		newYear := *app.YearOfStudy + 1
		updates := map[string]interface{}{"year_of_study": newYear}
		if newYear >= *course.YearsOfStudy {
			updates["status"] = models.StatusGraduating
		}
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}

		if newYear >= *course.YearsOfStudy {
			review := models.Review{
				ApplicationID: app.ApplicationID,
				Note:          "Status changed to GRADUATING",
				Status:        models.ReviewPending,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}

			ev := NewEvent(EventStatusChanged, app.Email)
			ev.ReviewID = review.ReviewID
			ev.Payload = map[string]interface{}{
				"application_id": app.ApplicationID,
				"status":         models.StatusGraduating,
			}
			events = append(events, ev)
		}

		advanced = true
		return nil
	})
	if err != nil {
		return false, nil, err
	}

	return advanced, events, nil
}

// MarkPassout unconditionally moves the application to the terminal PASSOUT
// status through the transition engine.
func MarkPassout(db *gorm.DB, appID uint64, reviewerID string, notify bool) (*models.Review, []Event, error) {
	return SetStatus(db, appID, models.StatusPassout, reviewerID, "", notify)
}
