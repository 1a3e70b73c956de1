// continuation_test.go
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

package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/localnerve/gss-portal/internal/models"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/internal/types"
	"github.com/localnerve/gss-portal/tests/helpers"
)

func TestCreateContinuingApplication(t *testing.T) {
	db := setupTestDB(t)

	inst, course := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, course, models.StatusApproved, 2)

	when := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	next, events, err := services.CreateContinuingApplication(db, app.ApplicationID, when)
	if err != nil {
		t.Fatalf("CreateContinuingApplication failed: %v", err)
	}
	if next == nil {
		t.Fatal("Expected a continuation row")
	}
	if !next.IsContinuing {
		t.Error("Expected continuation to be marked continuing")
	}
	if next.YearOfStudy == nil || *next.YearOfStudy != 3 {
		t.Errorf("Expected continuation at year 3, got %v", next.YearOfStudy)
	}
	if next.Status != models.StatusPending {
		t.Errorf("Expected continuation PENDING, got %q", next.Status)
	}
	if next.OriginalApplicationID == nil || *next.OriginalApplicationID != app.ApplicationID {
		t.Error("Expected continuation to reference the source application")
	}
	if len(events) != 1 || events[0].Name != services.EventContinuationCreated {
		t.Errorf("Expected one continuation event, got %v", events)
	}

	// The source row is stamped with the cycle start.
	var source models.Application
	if err := db.First(&source, "application_id = ?", app.ApplicationID).Error; err != nil {
		t.Fatalf("Failed to reload source: %v", err)
	}
	if source.LastCycleStartedAt == nil {
		t.Error("Expected last_cycle_started_at stamped on the source")
	}
}

func TestCreateContinuingApplicationIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	inst, course := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, course, models.StatusApproved, 2)

	first, _, err := services.CreateContinuingApplication(db, app.ApplicationID, time.Time{})
	if err != nil {
		t.Fatalf("First call failed: %v", err)
	}
	second, events, err := services.CreateContinuingApplication(db, app.ApplicationID, time.Time{})
	if err != nil {
		t.Fatalf("Second call failed: %v", err)
	}
	if second == nil {
		t.Fatal("Expected the existing continuation back on the second call")
	}
	if second.ApplicationID != first.ApplicationID {
		t.Errorf("Expected the same continuation row, got %d and %d",
			first.ApplicationID, second.ApplicationID)
	}
	if len(events) != 0 {
		t.Errorf("Expected no events on the idempotent path, got %d", len(events))
	}

	var count int64
	if err := db.Model(&models.Application{}).
		Where("original_application_id = ?", app.ApplicationID).
		Count(&count).Error; err != nil {
		t.Fatalf("Failed to count continuations: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one continuation row, got %d", count)
	}
}

func TestCreateContinuingApplicationIneligible(t *testing.T) {
	db := setupTestDB(t)

	inst, course := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")

	cases := []struct {
		name   string
		status string
		year   int
	}{
		{"NotApproved", models.StatusPending, 2},
		{"FinalYear", models.StatusApproved, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := helpers.CreateTestApplication(t, db, profile, inst, course, tc.status, tc.year)

			next, events, err := services.CreateContinuingApplication(db, app.ApplicationID, time.Time{})
			if err != nil {
				t.Fatalf("CreateContinuingApplication failed: %v", err)
			}
			if next != nil {
				t.Error("Expected no continuation for an ineligible source")
			}
			if len(events) != 0 {
				t.Errorf("Expected no events, got %d", len(events))
			}

			var count int64
			if err := db.Model(&models.Application{}).
				Where("original_application_id = ?", app.ApplicationID).
				Count(&count).Error; err != nil {
				t.Fatalf("Failed to count continuations: %v", err)
			}
			if count != 0 {
				t.Errorf("Expected no continuation rows, got %d", count)
			}
		})
	}
}

func TestCreateContinuingApplicationUnknownSource(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := services.CreateContinuingApplication(db, 424242, time.Time{})
	var nf *types.NotFound
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFound, got %v", err)
	}
}

func TestCanStartContinuingCycleNoCourse(t *testing.T) {
	db := setupTestDB(t)

	inst, _ := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, nil, models.StatusApproved, 2)

	ok, err := services.CanStartContinuingCycle(db, app)
	if err != nil {
		t.Fatalf("CanStartContinuingCycle failed: %v", err)
	}
	if ok {
		t.Error("Expected ineligible without a course")
	}
}

func TestCanStartContinuingCycleUnknownProgramLengthIsPermissive(t *testing.T) {
	db := setupTestDB(t)

	inst, _ := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	course := models.Course{InstitutionID: inst.InstitutionID, Code: "LAW", Name: "Law"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, &course, models.StatusApproved, 7)

	ok, err := services.CanStartContinuingCycle(db, app)
	if err != nil {
		t.Fatalf("CanStartContinuingCycle failed: %v", err)
	}
	if !ok {
		t.Error("Expected eligible when the program length is unknown")
	}
}

func TestIncrementYearAdvances(t *testing.T) {
	db := setupTestDB(t)

	inst, course := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, course, models.StatusApproved, 1)

	advanced, events, err := services.IncrementYearAndCheckGraduation(db, app.ApplicationID)
	if err != nil {
		t.Fatalf("IncrementYearAndCheckGraduation failed: %v", err)
	}
	if !advanced {
		t.Fatal("Expected the year to advance")
	}
	if len(events) != 0 {
		t.Errorf("Expected no events below the final year, got %d", len(events))
	}

	var stored models.Application
	if err := db.First(&stored, "application_id = ?", app.ApplicationID).Error; err != nil {
		t.Fatalf("Failed to reload application: %v", err)
	}
	if stored.YearOfStudy == nil || *stored.YearOfStudy != 2 {
		t.Errorf("Expected year 2, got %v", stored.YearOfStudy)
	}
	if stored.Status != models.StatusApproved {
		t.Errorf("Expected status unchanged below the final year, got %q", stored.Status)
	}
}

func TestIncrementYearReachesGraduation(t *testing.T) {
	db := setupTestDB(t)

	inst, course := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, course, models.StatusApproved, 3)

	advanced, events, err := services.IncrementYearAndCheckGraduation(db, app.ApplicationID)
	if err != nil {
		t.Fatalf("IncrementYearAndCheckGraduation failed: %v", err)
	}
	if !advanced {
		t.Fatal("Expected the year to advance")
	}
	if len(events) != 1 {
		t.Fatalf("Expected a graduation event, got %d events", len(events))
	}

	var stored models.Application
	if err := db.First(&stored, "application_id = ?", app.ApplicationID).Error; err != nil {
		t.Fatalf("Failed to reload application: %v", err)
	}
	if stored.Status != models.StatusGraduating {
		t.Errorf("Expected status GRADUATING, got %q", stored.Status)
	}
	if stored.YearOfStudy == nil || *stored.YearOfStudy != 4 {
		t.Errorf("Expected year 4, got %v", stored.YearOfStudy)
	}
	if n := countReviews(t, db, app.ApplicationID); n != 1 {
		t.Errorf("Expected the graduation audit review, got %d reviews", n)
	}
}

func TestIncrementYearAtProgramEndWritesNothing(t *testing.T) {
	db := setupTestDB(t)

	inst, course := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, course, models.StatusGraduating, 4)

	advanced, _, err := services.IncrementYearAndCheckGraduation(db, app.ApplicationID)
	if err != nil {
		t.Fatalf("IncrementYearAndCheckGraduation failed: %v", err)
	}
	if advanced {
		t.Error("Expected no advance at the program end")
	}

	var stored models.Application
	if err := db.First(&stored, "application_id = ?", app.ApplicationID).Error; err != nil {
		t.Fatalf("Failed to reload application: %v", err)
	}
	if stored.YearOfStudy == nil || *stored.YearOfStudy != 4 {
		t.Errorf("Expected year unchanged at 4, got %v", stored.YearOfStudy)
	}
}

func TestMarkPassout(t *testing.T) {
	db := setupTestDB(t)

	inst, course := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, course, models.StatusGraduating, 4)

	review, events, err := services.MarkPassout(db, app.ApplicationID, "staff-1", true)
	if err != nil {
		t.Fatalf("MarkPassout failed: %v", err)
	}
	if review == nil {
		t.Fatal("Expected a review record")
	}
	if len(events) != 1 {
		t.Errorf("Expected one event, got %d", len(events))
	}

	var stored models.Application
	if err := db.First(&stored, "application_id = ?", app.ApplicationID).Error; err != nil {
		t.Fatalf("Failed to reload application: %v", err)
	}
	if stored.Status != models.StatusPassout {
		t.Errorf("Expected status PASSOUT, got %q", stored.Status)
	}
}
