// data.go
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

package helpers

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/localnerve/gss-portal/internal/models"
)

// CreateTestInstitution creates an institution with a single course and
// returns both records.
func CreateTestInstitution(t *testing.T, db *gorm.DB, instCode, courseCode string, years int, fee string) (*models.Institution, *models.Course) {
	inst := models.Institution{
		Code: instCode,
		Name: "Test Institution " + instCode,
	}
	if err := db.Create(&inst).Error; err != nil {
		t.Fatalf("Failed to create institution: %v", err)
	}

	tuition, err := decimal.NewFromString(fee)
	if err != nil {
		t.Fatalf("Failed to parse fee %q: %v", fee, err)
	}

	course := models.Course{
		InstitutionID:   inst.InstitutionID,
		Code:            courseCode,
		Name:            "Test Course " + courseCode,
		YearsOfStudy:    &years,
		TotalTuitionFee: &tuition,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}

	return &inst, &course
}

// CreateTestProfile creates an applicant profile keyed by the auth user id.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID, firstName, surname string) *models.ApplicantProfile {
	profile := models.ApplicantProfile{
		UserID:    userID,
		FirstName: firstName,
		Surname:   surname,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create applicant profile: %v", err)
	}
	return &profile
}

// CreateTestApplication creates an application in the given status.
func CreateTestApplication(t *testing.T, db *gorm.DB, profile *models.ApplicantProfile, inst *models.Institution, course *models.Course, status string, year int) *models.Application {
	app := models.Application{
		Status:        status,
		ApplicantID:   profile.ProfileID,
		InstitutionID: inst.InstitutionID,
		YearOfStudy:   &year,
	}
	if course != nil {
		app.CourseID = &course.CourseID
	}
	if err := db.Create(&app).Error; err != nil {
		t.Fatalf("Failed to create application: %v", err)
	}
	return &app
}

// CreateTestPayment records a payment against an application.
func CreateTestPayment(t *testing.T, db *gorm.DB, appID uint64, amount, status string) *models.Payment {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("Failed to parse payment amount %q: %v", amount, err)
	}
	payment := models.Payment{
		ApplicationID: appID,
		Amount:        value,
		Status:        status,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("Failed to create payment: %v", err)
	}
	return &payment
}

// CreateTestLegacyStudent seeds one legacy roster row.
func CreateTestLegacyStudent(t *testing.T, db *gorm.DB, firstName, surname string, year int) *models.LegacyStudent {
	legacy := models.LegacyStudent{
		FirstName:   firstName,
		Surname:     surname,
		YearOfStudy: year,
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("Failed to create legacy student: %v", err)
	}
	return &legacy
}
