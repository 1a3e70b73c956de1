// institution.go
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

// Institution and Course are owned by the institutions collaborator; this
// service treats them as read references and only ever writes them through
// seeding/admin tooling.

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Institution is a tertiary institution participating in the program.
type Institution struct {
	InstitutionID uint64 `gorm:"primaryKey;autoIncrement"`
	Code          string `gorm:"uniqueIndex;size:20;not null"`
	Name          string `gorm:"size:200;not null;index"`
	Location      string `gorm:"size:200"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Courses []Course `gorm:"foreignKey:InstitutionID"`
}

// TableName overrides the table name for Institution
func (Institution) TableName() string {
	return "institutions"
}

// Course is an academic program offered by one institution.
type Course struct {
	CourseID      uint64 `gorm:"primaryKey;autoIncrement"`
	InstitutionID uint64 `gorm:"not null;index"`
	Code          string `gorm:"size:20;not null;index"`
	Name          string `gorm:"size:200;not null"`

	// Program length in years; nil when the institution never reported it.
	YearsOfStudy *int
	// Annual tuition fee; nil means "fee not set", which is distinct from zero.
	TotalTuitionFee *decimal.Decimal `gorm:"type:decimal(12,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Institution *Institution `gorm:"foreignKey:InstitutionID"`
}

// TableName overrides the table name for Course
func (Course) TableName() string {
	return "courses"
}
