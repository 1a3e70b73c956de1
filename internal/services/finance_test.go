package services_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/localnerve/gss-portal/internal/models"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/tests/helpers"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("Failed to parse decimal %q: %v", s, err)
	}
	return d
}

func TestOutstandingBalance(t *testing.T) {
	fee := dec(t, "5000.00")

	cases := []struct {
		name string
		fee  *decimal.Decimal
		paid string
		want string
	}{
		{"PartiallyPaid", &fee, "2000.00", "3000.00"},
		{"Unpaid", &fee, "0", "5000.00"},
		{"FullyPaid", &fee, "5000.00", "0.00"},
		{"OverPaid", &fee, "6000.00", "0.00"},
		{"FeeNotSet", nil, "2000.00", "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.FormatAmount(services.OutstandingBalance(tc.fee, dec(t, tc.paid)))
			if got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestPaymentStatus(t *testing.T) {
	fee := dec(t, "5000.00")

	cases := []struct {
		name string
		fee  *decimal.Decimal
		paid string
		want string
	}{
		{"FullyPaid", &fee, "5000.00", services.PaymentFullyPaid},
		{"OverPaid", &fee, "5500.00", services.PaymentFullyPaid},
		{"PartiallyPaid", &fee, "2000.00", services.PaymentPartiallyPaid},
		{"Unpaid", &fee, "0", services.PaymentUnpaid},
		{"FeeNotSetOverridesPayment", nil, "2000.00", services.PaymentFeeNotSet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.PaymentStatus(tc.fee, dec(t, tc.paid))
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatAmountRoundsHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2000.005", "2000.01"},
		{"2000.004", "2000.00"},
		{"0", "0.00"},
		{"1234.5", "1234.50"},
	}
	for _, tc := range cases {
		if got := services.FormatAmount(dec(t, tc.in)); got != tc.want {
			t.Errorf("FormatAmount(%s): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestIsFinalYear(t *testing.T) {
	three, four := 3, 4

	if services.IsFinalYear(&three, &four) {
		t.Error("Year 3 of 4 is not final")
	}
	if !services.IsFinalYear(&four, &four) {
		t.Error("Year 4 of 4 is final")
	}
	if services.IsFinalYear(nil, &four) || services.IsFinalYear(&three, nil) {
		t.Error("Unknown sides are never final")
	}
}

func TestGormPaymentReaderSums(t *testing.T) {
	db := setupTestDB(t)

	inst, course := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, course, models.StatusApproved, 2)

	helpers.CreateTestPayment(t, db, app.ApplicationID, "1200.00", models.PaymentPaid)
	helpers.CreateTestPayment(t, db, app.ApplicationID, "800.00", models.PaymentPaid)
	helpers.CreateTestPayment(t, db, app.ApplicationID, "500.00", models.PaymentCommitted)
	// Cancelled payments never count.
	helpers.CreateTestPayment(t, db, app.ApplicationID, "999.00", models.PaymentCancelled)

	reader := services.GormPaymentReader{DB: db}

	paid, err := reader.TotalPaid(app.ApplicationID)
	if err != nil {
		t.Fatalf("TotalPaid failed: %v", err)
	}
	if services.FormatAmount(paid) != "2000.00" {
		t.Errorf("Expected paid total 2000.00, got %s", services.FormatAmount(paid))
	}

	committed, err := reader.TotalCommitted(app.ApplicationID)
	if err != nil {
		t.Fatalf("TotalCommitted failed: %v", err)
	}
	if services.FormatAmount(committed) != "500.00" {
		t.Errorf("Expected committed total 500.00, got %s", services.FormatAmount(committed))
	}

	// No rows at all yields zero, not an error.
	none, err := reader.TotalPaid(999999)
	if err != nil {
		t.Fatalf("TotalPaid with no rows failed: %v", err)
	}
	if !none.IsZero() {
		t.Errorf("Expected zero for an application without payments, got %s", none)
	}
}

func TestSummarize(t *testing.T) {
	db := setupTestDB(t)

	inst, course := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, course, models.StatusApproved, 4)

	helpers.CreateTestPayment(t, db, app.ApplicationID, "2000.00", models.PaymentPaid)

	summary, err := services.Summarize(services.GormPaymentReader{DB: db}, app, course)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.TuitionFee == nil || *summary.TuitionFee != "5000.00" {
		t.Errorf("Expected fee 5000.00, got %v", summary.TuitionFee)
	}
	if summary.TotalPaid != "2000.00" {
		t.Errorf("Expected paid 2000.00, got %s", summary.TotalPaid)
	}
	if summary.OutstandingBalance != "3000.00" {
		t.Errorf("Expected outstanding 3000.00, got %s", summary.OutstandingBalance)
	}
	if summary.PaymentStatus != services.PaymentPartiallyPaid {
		t.Errorf("Expected %q, got %q", services.PaymentPartiallyPaid, summary.PaymentStatus)
	}
	if !summary.IsFinalYear {
		t.Error("Expected final year at year 4 of a 4-year course")
	}
}

func TestSummarizeWithoutCourse(t *testing.T) {
	db := setupTestDB(t)

	inst, _ := helpers.CreateTestInstitution(t, db, "UPNG", "CS", 4, "5000.00")
	profile := helpers.CreateTestProfile(t, db, "user-1", "Maria", "Kila")
	app := helpers.CreateTestApplication(t, db, profile, inst, nil, models.StatusPending, 1)

	summary, err := services.Summarize(services.GormPaymentReader{DB: db}, app, nil)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.TuitionFee != nil {
		t.Errorf("Expected no fee, got %v", *summary.TuitionFee)
	}
	if summary.PaymentStatus != services.PaymentFeeNotSet {
		t.Errorf("Expected %q, got %q", services.PaymentFeeNotSet, summary.PaymentStatus)
	}
	if summary.IsFinalYear {
		t.Error("Expected not final year without a course")
	}
}
