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

package models

import (
	"github.com/shopspring/decimal"
)

// LegacyStudent is a read-only historical paper record imported from the
// pre-digital program. Rows are matched against new accounts during the
// continuing-student migration and never mutated by this service.
type LegacyStudent struct {
	LegacyID  uint64 `gorm:"primaryKey;autoIncrement"`
	FirstName string `gorm:"size:100;not null;index"`
	Surname   string `gorm:"size:100;not null;index"`
	// Institution and course as free text, exactly as on the paper record.
	Institution string `gorm:"size:200"`
	Course      string `gorm:"size:200"`
	YearOfStudy int    `gorm:"not null"`

	TuitionFee decimal.Decimal `gorm:"type:decimal(10,2)"`
}

// TableName overrides the table name for LegacyStudent
func (LegacyStudent) TableName() string {
	return "legacy_students"
}
