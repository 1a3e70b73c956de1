// review.go
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

package models

import (
	"time"

	"gorm.io/gorm"
)

// Review status values (review-level, lowercase on the wire).
const (
	ReviewPending   = "pending"
	ReviewApproved  = "approved"
	ReviewRejected  = "rejected"
	ReviewNeedsInfo = "needs_info"
)

// ValidReviewStatuses enumerates every status a review may carry.
var ValidReviewStatuses = map[string]struct{}{
	ReviewPending:   {},
	ReviewApproved:  {},
	ReviewRejected:  {},
	ReviewNeedsInfo: {},
}

// Review is the immutable audit record of a single reviewer action on an
// application. One row per actual status transition; rows are never mutated
// after creation except the one-time decision timestamp below.
type Review struct {
	ReviewID      uint64 `gorm:"primaryKey;autoIncrement"`
	ApplicationID uint64 `gorm:"not null;index"`
	// Reviewer account identifier; empty for system-initiated transitions.
	ReviewerID string `gorm:"size:64;index"`
	Note       string `gorm:"type:text"`
	Status     string `gorm:"size:32;not null;default:'pending'"`

	CreatedAt time.Time `gorm:"index;autoCreateTime"`
	UpdatedAt time.Time
	// Set exactly once, when status first becomes a terminal decision value.
	DecisionDate *time.Time

	Application *Application `gorm:"foreignKey:ApplicationID"`
}

// TableName overrides the table name for Review
func (Review) TableName() string {
	return "application_reviews"
}

// BeforeSave stamps the decision timestamp the first time the review carries
// a terminal decision status. It never overwrites an existing timestamp.
func (r *Review) BeforeSave(tx *gorm.DB) error {
	if (r.Status == ReviewApproved || r.Status == ReviewRejected) && r.DecisionDate == nil {
		now := tx.NowFunc()
		r.DecisionDate = &now
	}
	return nil
}

// IsDecided reports whether the review holds a terminal decision.
func (r *Review) IsDecided() bool {
	return r.DecisionDate != nil
}
