// profile.go
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

// ApplicantProfile holds the demographic, family, and residency attributes of
// one user account. Exactly one profile exists per account; it is created
// lazily on first application start and never deleted while the account lives.
type ApplicantProfile struct {
	ProfileID uint64 `gorm:"primaryKey;autoIncrement"`
	// Account identifier issued by the identity provider (authorizer sub).
	UserID string `gorm:"uniqueIndex;size:64;not null"`

	FirstName     string `gorm:"size:100"`
	Surname       string `gorm:"size:100"`
	Gender        string `gorm:"size:10"`
	DateOfBirth   *time.Time
	Email         string `gorm:"size:255"`
	PhoneNumber   string `gorm:"size:20"`
	PostalAddress string `gorm:"type:text"`
	PhotoKey      string `gorm:"size:255"`

	NIDNumber               string `gorm:"size:50"`
	Grade12CertificateNo    string `gorm:"size:50"`
	ElementaryCompleted     bool
	PrimaryCompleted        bool
	SecondarySchoolName     string `gorm:"size:150"`
	YearCompletedGrade12    int
	TesasCategory           string `gorm:"size:10"` // HECAS | AES | SS
	ActiveStudentID         string `gorm:"size:50"`

	FatherName        string `gorm:"size:150"`
	FatherOccupation  string `gorm:"size:100"`
	FatherNationality string `gorm:"size:100"`
	FatherProvince    string `gorm:"size:100"`
	FatherDistrict    string `gorm:"size:100"`
	FatherVillage     string `gorm:"size:100"`

	MotherName        string `gorm:"size:150"`
	MotherOccupation  string `gorm:"size:100"`
	MotherNationality string `gorm:"size:100"`
	MotherProvince    string `gorm:"size:100"`
	MotherDistrict    string `gorm:"size:100"`
	MotherVillage     string `gorm:"size:100"`

	CurrentResidentialArea string `gorm:"size:255"`
	CurrentDistrict        string `gorm:"size:100"`
	OriginProvince         string `gorm:"size:100"`
	OriginDistrict         string `gorm:"size:100"`
	OriginWard             string `gorm:"size:100"`
	ResidencyProvince      string `gorm:"size:100"`
	ResidencyDistrict      string `gorm:"size:100"`
	ResidencyWard          string `gorm:"size:100"`
	ResidencyYears         int

	CreatedAt time.Time
	UpdatedAt time.Time

	Applications []Application `gorm:"foreignKey:ApplicantID"`
}

// TableName overrides the table name for ApplicantProfile
func (ApplicantProfile) TableName() string {
	return "applicant_profiles"
}

// DisplayName returns the profile's full name, or the account id when the
// name fields were never filled in.
func (p *ApplicantProfile) DisplayName() string {
	if p.FirstName == "" && p.Surname == "" {
		return p.UserID
	}
	if p.Surname == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.Surname
}
