// applications.go
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
	"github.com/localnerve/gss-portal/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewApplicationInput is the applicant-supplied payload for a first-time
// submission. Employment detail fields become required when the matching
// employed flag is set.
type NewApplicationInput struct {
	// IDs arrive as numbers or numeric strings depending on the form client.
	InstitutionID types.FlexUint64  `json:"institution_id" validate:"required"`
	CourseID      *types.FlexUint64 `json:"course_id"`
	YearOfStudy   *int              `json:"year_of_study" validate:"omitempty,min=1"`

	FirstName      string `json:"first_name" validate:"required,max=100"`
	Surname        string `json:"surname" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	CurrentAddress string `json:"current_address"`

	ParentEmployed     bool   `json:"parent_employed"`
	ParentCompany      string `json:"parent_company" validate:"required_if=ParentEmployed true"`
	ParentJobTitle     string `json:"parent_job_title" validate:"required_if=ParentEmployed true"`
	ParentSalaryRange  string `json:"parent_salary_range" validate:"required_if=ParentEmployed true"`
	ParentIncomeSource string `json:"parent_income_source"`
	ParentAnnualIncome string `json:"parent_annual_income"`

	StudentEmployed    bool   `json:"student_employed"`
	StudentCompany     string `json:"student_company" validate:"required_if=StudentEmployed true"`
	StudentJobTitle    string `json:"student_job_title" validate:"required_if=StudentEmployed true"`
	StudentSalaryRange string `json:"student_salary_range" validate:"required_if=StudentEmployed true"`

	OriginProvince    string `json:"origin_province"`
	OriginDistrict    string `json:"origin_district"`
	OriginWard        string `json:"origin_ward"`
	ResidencyProvince string `json:"residency_province"`
	ResidencyDistrict string `json:"residency_district"`
	ResidencyWard     string `json:"residency_ward"`
	ResidencyYears    string `json:"residency_years" validate:"omitempty,max=3"`
}

// SubmitNewApplication creates a first-time (non-continuing) application for
// the account, lazily creating the profile. At most one non-continuing
// application may exist per applicant; duplicates fail with PolicyViolation.
// The caller must have consulted the window gate first.
func SubmitNewApplication(db *gorm.DB, userID string, input NewApplicationInput) (*models.Application, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var app *models.Application

	err := db.Transaction(func(tx *gorm.DB) error {
		silent := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})

		var courseID *uint64
		if input.CourseID != nil {
			id := uint64(*input.CourseID)
			courseID = &id
		}

		var institution models.Institution
		if err := silent.Where("institution_id = ?", uint64(input.InstitutionID)).
			First(&institution).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.SelectionError{Message: "selected institution does not exist"}
			}
			return err
		}
		if courseID != nil {
			var course models.Course
			if err := silent.Where("course_id = ?", *courseID).
				First(&course).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &types.SelectionError{Message: "selected course does not exist"}
				}
				return err
			}
			if course.InstitutionID != institution.InstitutionID {
				return &types.SelectionError{Message: "selected course does not belong to the selected institution"}
			}
		}

		profile := models.ApplicantProfile{
			UserID:    userID,
			FirstName: input.FirstName,
			Surname:   input.Surname,
			Email:     input.Email,
		}
		if err := tx.Where("user_id = ?", userID).
			FirstOrCreate(&profile).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Application{}).
			Where("applicant_id = ? AND is_continuing = ?", profile.ProfileID, false).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &types.PolicyViolation{Message: "a non-continuing application already exists for this account"}
		}

		next := models.Application{
			Status:             models.StatusPending,
			ApplicantID:        profile.ProfileID,
			InstitutionID:      institution.InstitutionID,
			CourseID:           courseID,
			YearOfStudy:        input.YearOfStudy,
			Email:              input.Email,
			CurrentAddress:     input.CurrentAddress,
			ParentEmployed:     input.ParentEmployed,
			ParentCompany:      input.ParentCompany,
			ParentJobTitle:     input.ParentJobTitle,
			ParentSalaryRange:  input.ParentSalaryRange,
			ParentIncomeSource: input.ParentIncomeSource,
			ParentAnnualIncome: input.ParentAnnualIncome,
			StudentEmployed:    input.StudentEmployed,
			StudentCompany:     input.StudentCompany,
			StudentJobTitle:    input.StudentJobTitle,
			StudentSalaryRange: input.StudentSalaryRange,
			OriginProvince:     input.OriginProvince,
			OriginDistrict:     input.OriginDistrict,
			OriginWard:         input.OriginWard,
			ResidencyProvince:  input.ResidencyProvince,
			ResidencyDistrict:  input.ResidencyDistrict,
			ResidencyWard:      input.ResidencyWard,
			ResidencyYears:     input.ResidencyYears,
		}
		if err := tx.Create(&next).Error; err != nil {
			return err
		}
		app = &next

		return nil
	})
	if err != nil {
		return nil, err
	}

	return app, nil
}

// ContinuingEditInput is the restricted field set a continuing applicant may
// change, once. Institution and course are immutable after binding.
type ContinuingEditInput struct {
	ActiveStudentID string `json:"active_student_id" validate:"required,max=50"`
	Email           string `json:"email" validate:"required,email"`
	CurrentAddress  string `json:"current_address" validate:"required"`
}

// EditContinuingApplication applies the one-time continuing edit. The
// has_edited flag flips false to true exactly once; any later attempt fails
// with PolicyViolation and mutates nothing.
func EditContinuingApplication(db *gorm.DB, appID uint64, userID string, input ContinuingEditInput) (*models.Application, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var app *models.Application

	err := db.Transaction(func(tx *gorm.DB) error {
		silent := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})

		var profile models.ApplicantProfile
		if err := silent.Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFound{Kind: "profile", ID: userID}
			}
			return err
		}

		var row models.Application
		if err := database.LockForUpdate(silent).
			Where("application_id = ? AND applicant_id = ?", appID, profile.ProfileID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFound{Kind: "application", ID: strconv.FormatUint(appID, 10)}
			}
			return err
		}

		if !row.IsContinuing {
			return &types.PolicyViolation{Message: "only continuing applications may be edited through this path"}
		}
		if row.HasEdited {
			return &types.PolicyViolation{Message: "this application has already been edited once"}
		}

		if err := tx.Model(&row).Updates(map[string]interface{}{
			"active_student_id": input.ActiveStudentID,
			"email":             input.Email,
			"current_address":   input.CurrentAddress,
			"has_edited":        true,
		}).Error; err != nil {
			return err
		}
		app = &row

		return nil
	})
	if err != nil {
		return nil, err
	}

	return app, nil
}

// ApplicationView is one application enriched with its derived financial
// summary and latest review status.
type ApplicationView struct {
	models.Application
	Reference          string          `json:"reference"`
	Finance            *FinanceSummary `json:"finance"`
	LatestReviewStatus string          `json:"latest_review_status,omitempty"`
}

// ListApplicantApplications returns the account's applications ordered by
// submission time descending, each enriched with the financial summary.
func ListApplicantApplications(db *gorm.DB, reader PaymentReader, userID string) ([]ApplicationView, error) {
	var profile models.ApplicantProfile
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ApplicationView{}, nil
		}
		return nil, err
	}

	var apps []models.Application
	err = db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Preload("Institution").
		Preload("Course").
		Preload("Reviews", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Where("applicant_id = ?", profile.ProfileID).
		Order("submission_date DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	views := make([]ApplicationView, 0, len(apps))
	for i := range apps {
		summary, err := Summarize(reader, &apps[i], apps[i].Course)
		if err != nil {
			return nil, err
		}
		view := ApplicationView{
			Application: apps[i],
			Reference:   apps[i].UniqueID(),
			Finance:     summary,
		}
		if len(apps[i].Reviews) > 0 {
			view.LatestReviewStatus = apps[i].Reviews[0].Status
		}
		views = append(views, view)
	}

	return views, nil
}

// GetApplication fetches one application with its relations.
func GetApplication(db *gorm.DB, appID uint64) (*models.Application, error) {
	var app models.Application
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Preload("Applicant").
		Preload("Institution").
		Preload("Course").
		Preload("Reviews", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Where("application_id = ?", appID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFound{Kind: "application", ID: strconv.FormatUint(appID, 10)}
		}
		return nil, err
	}
	return &app, nil
}

// ListInstitutions returns all institutions ordered by name.
func ListInstitutions(db *gorm.DB) ([]models.Institution, error) {
	var institutions []models.Institution
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Order("name").
		Find(&institutions).Error
	return institutions, err
}

// ListCoursesByInstitution returns the institution's courses ordered by name.
// Used to populate the dependent course select.
func ListCoursesByInstitution(db *gorm.DB, institutionID uint64) ([]models.Course, error) {
	var count int64
	if err := db.Model(&models.Institution{}).
		Where("institution_id = ?", institutionID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, &types.NotFound{Kind: "institution", ID: strconv.FormatUint(institutionID, 10)}
	}

	var courses []models.Course
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Where("institution_id = ?", institutionID).
		Order("name").
		Find(&courses).Error
	return courses, err
}

// SubmittedSince counts applications submitted at or after the given instant.
func SubmittedSince(db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("submission_date >= ?", since).
		Count(&count).Error
	return count, err
}
