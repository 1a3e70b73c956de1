package services

import (
	"github.com/localnerve/gss-portal/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// OfficerListFilter narrows the officer application list.
type OfficerListFilter struct {
	Status        string
	InstitutionID uint64
	IsContinuing  *bool
	Limit         int
	Offset        int
}

// ListApplicationsForOfficer returns applications for the review queue,
// newest first. The status index hint keeps the common status-filtered scan
// off the primary key on large tables.
func ListApplicationsForOfficer(db *gorm.DB, filter OfficerListFilter) ([]models.Application, int64, error) {
	query := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Model(&models.Application{})

	if filter.Status != "" {
		// MySQL-style index hint; other drivers ignore or reject it.
		if db.Dialector.Name() == "mysql" {
			query = query.Clauses(hints.UseIndex("idx_applications_status"))
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InstitutionID != 0 {
		query = query.Where("institution_id = ?", filter.InstitutionID)
	}
	if filter.IsContinuing != nil {
		query = query.Where("is_continuing = ?", *filter.IsContinuing)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var apps []models.Application
	err := query.
		Preload("Applicant").
		Preload("Institution").
		Preload("Course").
		Order("submission_date DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// StatusCount is one row of the per-status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// InstitutionCount is one row of the per-institution breakdown.
type InstitutionCount struct {
	InstitutionID uint64 `json:"institution_id"`
	Name          string `json:"name"`
	Count         int64  `json:"count"`
	Approved      int64  `json:"approved"`
}

// DashboardStats is the officer dashboard aggregate view.
type DashboardStats struct {
	Total          int64              `json:"total"`
	ByStatus       []StatusCount      `json:"by_status"`
	ByInstitution  []InstitutionCount `json:"by_institution"`
	ApprovedFees   string             `json:"approved_fees"`
	TotalPaid      string             `json:"total_paid"`
	TotalCommitted string             `json:"total_committed"`
	Outstanding    string             `json:"outstanding"`
}

// DashboardStatsQuery computes the officer dashboard aggregates in a handful
// of grouped queries. Financial totals cover the approved pool only.
func DashboardStatsQuery(db *gorm.DB) (*DashboardStats, error) {
	silent := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
	stats := &DashboardStats{}

	if err := silent.Model(&models.Application{}).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := silent.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&stats.ByStatus).Error; err != nil {
		return nil, err
	}

	if err := silent.Model(&models.Application{}).
		Select("applications.institution_id, institutions.name, COUNT(*) AS count, "+
			"SUM(CASE WHEN applications.status = ? THEN 1 ELSE 0 END) AS approved",
			models.StatusApproved).
		Joins("JOIN institutions ON institutions.institution_id = applications.institution_id").
		Group("applications.institution_id, institutions.name").
		Order("institutions.name").
		Scan(&stats.ByInstitution).Error; err != nil {
		return nil, err
	}

	var fees decimal.NullDecimal
	if err := silent.Model(&models.Application{}).
		Select("SUM(courses.total_tuition_fee)").
		Joins("JOIN courses ON courses.course_id = applications.course_id").
		Where("applications.status = ?", models.StatusApproved).
		Scan(&fees).Error; err != nil {
		return nil, err
	}

	paid, err := sumApprovedPayments(silent, models.PaymentPaid)
	if err != nil {
		return nil, err
	}
	committed, err := sumApprovedPayments(silent, models.PaymentCommitted)
	if err != nil {
		return nil, err
	}

	feeTotal := decimal.Zero
	if fees.Valid {
		feeTotal = fees.Decimal
	}
	outstanding := feeTotal.Sub(paid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	stats.ApprovedFees = FormatAmount(feeTotal)
	stats.TotalPaid = FormatAmount(paid)
	stats.TotalCommitted = FormatAmount(committed)
	stats.Outstanding = FormatAmount(outstanding)

	return stats, nil
}

func sumApprovedPayments(db *gorm.DB, paymentStatus string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(&models.Payment{}).
		Select("SUM(payments.amount)").
		Joins("JOIN applications ON applications.application_id = payments.application_id").
		Where("applications.status = ? AND payments.status = ?",
			models.StatusApproved, paymentStatus).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
