// status.go
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
	"fmt"
	"strconv"
	"strings"

	"github.com/localnerve/gss-portal/internal/database"
	"github.com/localnerve/gss-portal/internal/models"
	"github.com/localnerve/gss-portal/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetStatus validates and applies a status change to an application. The
// status update and its audit Review are written in one transaction under an
// exclusive row lock. A same-status call is a no-op returning (nil, nil, nil).
// Returned events must be dispatched by the caller only after this function
// returns, so a rollback never notifies anyone.
func SetStatus(db *gorm.DB, appID uint64, newStatus, reviewerID, note string, notify bool) (*models.Review, []Event, error) {
	newStatus = strings.ToUpper(strings.TrimSpace(newStatus))
	if _, ok := models.ValidStatuses[newStatus]; !ok {
		return nil, nil, &types.ValidationError{
			Message: fmt.Sprintf("invalid status value: %q", newStatus),
			Fields:  []types.FieldError{{Field: "status", Message: "must be one of PENDING, APPROVED, REJECTED, GRADUATING, PASSOUT"}},
		}
	}

	var review *models.Review
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

		// Idempotent no-op on an unchanged status.
		if app.Status == newStatus {
			return nil
		}

		updates := map[string]interface{}{"status": newStatus}
		if note != "" {
			updates["reviewer_note"] = note
		}
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}

		reviewNote := note
		if reviewNote == "" {
			reviewNote = fmt.Sprintf("Status changed to %s", newStatus)
		}
		review = &models.Review{
			ApplicationID: app.ApplicationID,
			ReviewerID:    reviewerID,
			Note:          reviewNote,
			Status:        MapApplicationStatusToReviewStatus(newStatus),
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		if notify {
			ev := NewEvent(EventStatusChanged, app.Email)
			ev.ReviewID = review.ReviewID
			ev.Payload = map[string]interface{}{
				"application_id": app.ApplicationID,
				"status":         newStatus,
			}
			events = append(events, ev)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return review, events, nil
}

// ApplyReview records an officer-authored review and keeps Application.status
// authoritative by routing the derived status through the same transactional
// discipline as SetStatus.
func ApplyReview(db *gorm.DB, appID uint64, reviewerID, note, reviewStatus string, notify bool) (*models.Review, []Event, error) {
	reviewStatus = strings.ToLower(strings.TrimSpace(reviewStatus))
	if _, ok := models.ValidReviewStatuses[reviewStatus]; !ok {
		return nil, nil, &types.ValidationError{
			Message: fmt.Sprintf("invalid review status value: %q", reviewStatus),
			Fields:  []types.FieldError{{Field: "status", Message: "must be one of pending, approved, rejected, needs_info"}},
		}
	}

	var review *models.Review
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

		targetStatus := MapReviewStatusToApplicationStatus(reviewStatus)
		if app.Status != targetStatus {
			updates := map[string]interface{}{"status": targetStatus}
			if note != "" {
				updates["reviewer_note"] = note
			}
			if err := tx.Model(&app).Updates(updates).Error; err != nil {
				return err
			}
		}

		review = &models.Review{
			ApplicationID: app.ApplicationID,
			ReviewerID:    reviewerID,
			Note:          note,
			Status:        reviewStatus,
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		if notify {
			ev := NewEvent(EventStatusChanged, app.Email)
			ev.ReviewID = review.ReviewID
			ev.Payload = map[string]interface{}{
				"application_id": app.ApplicationID,
				"status":         targetStatus,
				"review_status":  reviewStatus,
			}
			events = append(events, ev)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return review, events, nil
}

// MapApplicationStatusToReviewStatus derives the audit-record status from an
// application status. Only terminal decisions map to decided review values.
func MapApplicationStatusToReviewStatus(appStatus string) string {
	switch appStatus {
	case models.StatusApproved:
		return models.ReviewApproved
	case models.StatusRejected:
		return models.ReviewRejected
	default:
		return models.ReviewPending
	}
}

// MapReviewStatusToApplicationStatus derives the application status from a
// review outcome. A needs_info review sends the application back to PENDING.
func MapReviewStatusToApplicationStatus(reviewStatus string) string {
	switch reviewStatus {
	case models.ReviewApproved:
		return models.StatusApproved
	case models.ReviewRejected:
		return models.StatusRejected
	default:
		return models.StatusPending
	}
}
