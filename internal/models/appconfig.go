// appconfig.go
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
)

// ApplicationConfigID is the fixed primary key of the singleton row.
const ApplicationConfigID uint64 = 1

// ApplicationConfig is the process-wide submission window. Exactly one row
// exists, keyed by ApplicationConfigID and lazily created on first access.
type ApplicationConfig struct {
	ConfigID         uint64 `gorm:"primaryKey"`
	ApplicationsOpen bool   `gorm:"not null;default:true"`
	// Optional absolute deadline; past this instant the window is closed
	// even while ApplicationsOpen is still true.
	CloseAt *time.Time

	// Cutover after which legacy lookup is replaced by the transcript-only
	// continuation path.
	RolloverAt          *time.Time
	LegacyLookupEnabled bool `gorm:"not null;default:true"`

	UpdatedAt time.Time
}

// TableName overrides the table name for ApplicationConfig
func (ApplicationConfig) TableName() string {
	return "application_config"
}

// IsClosedNow reports whether submissions are closed at the given instant.
func (c *ApplicationConfig) IsClosedNow(now time.Time) bool {
	if !c.ApplicationsOpen {
		return true
	}
	return c.CloseAt != nil && !now.Before(*c.CloseAt)
}

// RolloverDue reports whether the legacy-path cutover has passed.
func (c *ApplicationConfig) RolloverDue(now time.Time) bool {
	return c.RolloverAt != nil && !now.Before(*c.RolloverAt)
}
