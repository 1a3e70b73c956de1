// application.go
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
	"fmt"
	"strings"
	"time"
)

// Application status values, stored verbatim in the status column.
const (
	StatusPending    = "PENDING"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusGraduating = "GRADUATING"
	StatusPassout    = "PASSOUT"
)

// ValidStatuses enumerates every status an application may hold.
var ValidStatuses = map[string]struct{}{
	StatusPending:    {},
	StatusApproved:   {},
	StatusRejected:   {},
	StatusGraduating: {},
	StatusPassout:    {},
}

// Application is the central entity of the portal. A row is created on a new
// submission, or by the continuation engine for a next academic-year cycle.
// Rows are never deleted; the review history is the audit trail.
type Application struct {
	ApplicationID uint64 `gorm:"primaryKey;autoIncrement"`

	Status      string `gorm:"size:20;not null;default:'PENDING';index"`
	ApplicantID uint64 `gorm:"not null;index"`

	InstitutionID uint64  `gorm:"not null;index"`
	CourseID      *uint64 `gorm:"index"`

	// Self-reference to the application this continuing cycle stems from.
	OriginalApplicationID *uint64 `gorm:"index"`
	IsContinuing          bool    `gorm:"not null;default:false"`
	// One-time edit guard for continuing applications. false -> true at most once.
	HasEdited bool `gorm:"not null;default:false"`

	YearOfStudy *int

	// Continuing-specific fields synced from the profile/account at submission.
	ActiveStudentID string `gorm:"size:50"`
	Email           string `gorm:"size:255"`
	CurrentAddress  string `gorm:"type:text"`

	ReviewerNote string `gorm:"type:text"`

	// Metadata of the single uploaded PDF bundle (storage key, name, size).
	DocumentsPDF JSON `gorm:"type:json"`

	// Employment details, required when the matching employed flag is set.
	ParentEmployed     bool   `gorm:"not null;default:false"`
	ParentCompany      string `gorm:"size:255"`
	ParentJobTitle     string `gorm:"size:255"`
	ParentSalaryRange  string `gorm:"size:100"`
	ParentIncomeSource string `gorm:"size:255"`
	ParentAnnualIncome string `gorm:"size:100"`

	StudentEmployed    bool   `gorm:"not null;default:false"`
	StudentCompany     string `gorm:"size:255"`
	StudentJobTitle    string `gorm:"size:255"`
	StudentSalaryRange string `gorm:"size:100"`

	// Origin/residency snapshot taken from the profile at submission time.
	OriginProvince    string `gorm:"size:100"`
	OriginDistrict    string `gorm:"size:100"`
	OriginWard        string `gorm:"size:100"`
	ResidencyProvince string `gorm:"size:100"`
	ResidencyDistrict string `gorm:"size:100"`
	ResidencyWard     string `gorm:"size:100"`
	ResidencyYears    string `gorm:"size:3"`

	SubmissionDate     time.Time `gorm:"autoCreateTime;index"`
	LastCycleStartedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Applicant           *ApplicantProfile `gorm:"foreignKey:ApplicantID"`
	Institution         *Institution      `gorm:"foreignKey:InstitutionID"`
	Course              *Course           `gorm:"foreignKey:CourseID"`
	OriginalApplication *Application      `gorm:"foreignKey:OriginalApplicationID"`
	Reviews             []Review          `gorm:"foreignKey:ApplicationID"`
}

// TableName overrides the table name for Application
func (Application) TableName() string {
	return "applications"
}

// UniqueID builds the human-facing reference, e.g. "2026-UOT-BSC101-42".
func (a *Application) UniqueID() string {
	year := a.SubmissionDate.Year()
	if a.SubmissionDate.IsZero() {
		year = time.Now().UTC().Year()
	}
	instCode := "NOINST"
	if a.Institution != nil && a.Institution.Code != "" {
		instCode = strings.ToUpper(a.Institution.Code)
	}
	courseCode := "NOCOURSE"
	if a.Course != nil && a.Course.Code != "" {
		courseCode = strings.ToUpper(a.Course.Code)
	}
	return fmt.Sprintf("%d-%s-%s-%d", year, instCode, courseCode, a.ApplicationID)
}
