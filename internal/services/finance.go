package services

import (
	"github.com/localnerve/gss-portal/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Payment status display values, two-decimal fixed point everywhere.
const (
	PaymentFeeNotSet     = "Fee Not Set"
	PaymentFullyPaid     = "Fully Paid"
	PaymentPartiallyPaid = "Partially Paid"
	PaymentUnpaid        = "Unpaid"
)

// PaymentReader is the read-only query boundary to the finance collaborator.
// The calculator depends on it instead of reaching into payment tables, so
// the lifecycle engines stay testable without the finance implementation.
type PaymentReader interface {
	// TotalPaid sums PAID payment amounts for the application.
	TotalPaid(appID uint64) (decimal.Decimal, error)
	// TotalCommitted sums COMMITTED payment amounts for the application.
	TotalCommitted(appID uint64) (decimal.Decimal, error)
}

// GormPaymentReader reads payment totals from the shared relational store.
type GormPaymentReader struct {
	DB *gorm.DB
}

// TotalPaid sums PAID payment amounts for the application.
func (r GormPaymentReader) TotalPaid(appID uint64) (decimal.Decimal, error) {
	return r.sumByStatus(appID, models.PaymentPaid)
}

// TotalCommitted sums COMMITTED payment amounts for the application.
func (r GormPaymentReader) TotalCommitted(appID uint64) (decimal.Decimal, error) {
	return r.sumByStatus(appID, models.PaymentCommitted)
}

func (r GormPaymentReader) sumByStatus(appID uint64, status string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.DB.Session(&gorm.Session{Logger: r.DB.Logger.LogMode(logger.Silent)}).
		Model(&models.Payment{}).
		Select("SUM(amount)").
		Where("application_id = ? AND status = ?", appID, status).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// OutstandingBalance is max(0, fee - totalPaid). An unset fee yields zero;
// fee-not-set is not the same as fully paid, see PaymentStatus.
func OutstandingBalance(fee *decimal.Decimal, totalPaid decimal.Decimal) decimal.Decimal {
	if fee == nil {
		return decimal.Zero
	}
	balance := fee.Sub(totalPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// PaymentStatus classifies the settled total against the course fee. An
// unset fee overrides everything else.
func PaymentStatus(fee *decimal.Decimal, totalPaid decimal.Decimal) string {
	if fee == nil {
		return PaymentFeeNotSet
	}
	switch {
	case totalPaid.GreaterThanOrEqual(*fee):
		return PaymentFullyPaid
	case totalPaid.IsPositive():
		return PaymentPartiallyPaid
	default:
		return PaymentUnpaid
	}
}

// IsFinalYear reports whether the application has reached the last year of
// its program. False when either side is unknown.
func IsFinalYear(yearOfStudy, programLength *int) bool {
	if yearOfStudy == nil || programLength == nil {
		return false
	}
	return *yearOfStudy >= *programLength
}

// FormatAmount renders a currency amount as two-decimal fixed point,
// rounding half up.
func FormatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// FinanceSummary is the derived financial view of one application. Never
// cached on the application row; recomputed from current payments each time.
type FinanceSummary struct {
	TuitionFee         *string `json:"tuition_fee"`
	TotalPaid          string  `json:"total_paid"`
	TotalCommitted     string  `json:"total_committed"`
	OutstandingBalance string  `json:"outstanding_balance"`
	PaymentStatus      string  `json:"payment_status"`
	IsFinalYear        bool    `json:"is_final_year"`
}

// Summarize derives the financial and final-year view for an application and
// its course through the finance read boundary.
func Summarize(reader PaymentReader, app *models.Application, course *models.Course) (*FinanceSummary, error) {
	paid, err := reader.TotalPaid(app.ApplicationID)
	if err != nil {
		return nil, err
	}
	committed, err := reader.TotalCommitted(app.ApplicationID)
	if err != nil {
		return nil, err
	}

	var fee *decimal.Decimal
	var programLength *int
	if course != nil {
		fee = course.TotalTuitionFee
		programLength = course.YearsOfStudy
	}

	summary := &FinanceSummary{
		TotalPaid:          FormatAmount(paid),
		TotalCommitted:     FormatAmount(committed),
		OutstandingBalance: FormatAmount(OutstandingBalance(fee, paid)),
		PaymentStatus:      PaymentStatus(fee, paid),
		IsFinalYear:        IsFinalYear(app.YearOfStudy, programLength),
	}
	if fee != nil {
		formatted := FormatAmount(*fee)
		summary.TuitionFee = &formatted
	}

	return summary, nil
}
