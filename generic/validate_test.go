package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/restaurant-engine/generic"
)

func validSale() generic.SaleRecord {
	return generic.SaleRecord{
		Timestamp: time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		ItemName:  "Burger",
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("5.00"),
	}
}

func validShift() generic.ShiftRecord {
	return generic.ShiftRecord{
		EmployeeID: "EMP001",
		ClockIn:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		ClockOut:   time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC),
		HourlyRate: decimal.RequireFromString("15.00"),
	}
}

func TestValidateSale(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*generic.SaleRecord)
		field  string
	}{
		{"valid", func(*generic.SaleRecord) {}, ""},
		{"zero quantity is allowed", func(s *generic.SaleRecord) { s.Quantity = 0 }, ""},
		{"negative quantity", func(s *generic.SaleRecord) { s.Quantity = -1 }, "quantity"},
		{"negative price", func(s *generic.SaleRecord) { s.UnitPrice = decimal.NewFromInt(-1) }, "unit_price"},
		{"missing item", func(s *generic.SaleRecord) { s.ItemName = "  " }, "item_name"},
		{"missing timestamp", func(s *generic.SaleRecord) { s.Timestamp = time.Time{} }, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := validSale()
			tt.mutate(&sale)
			err := generic.ValidateSale(sale)

			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *generic.ValidationError
			if assert.True(t, errors.As(err, &verr)) {
				assert.Equal(t, tt.field, verr.Field)
			}
			assert.ErrorIs(t, err, generic.ErrValidation)
		})
	}
}

func TestValidateShift(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*generic.ShiftRecord)
		field  string
	}{
		{"valid", func(*generic.ShiftRecord) {}, ""},
		{"zero length shift", func(s *generic.ShiftRecord) { s.ClockOut = s.ClockIn }, ""},
		{"clock out before clock in", func(s *generic.ShiftRecord) { s.ClockOut = s.ClockIn.Add(-time.Minute) }, "clock_out"},
		{"negative rate", func(s *generic.ShiftRecord) { s.HourlyRate = decimal.NewFromInt(-15) }, "hourly_rate"},
		{"missing employee", func(s *generic.ShiftRecord) { s.EmployeeID = "" }, "employee_id"},
		{"break longer than shift", func(s *generic.ShiftRecord) { s.BreakMinutes = 9 * 60 }, "break_minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := validShift()
			tt.mutate(&shift)
			err := generic.ValidateShift(shift)

			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *generic.ValidationError
			if assert.True(t, errors.As(err, &verr)) {
				assert.Equal(t, tt.field, verr.Field)
			}
		})
	}
}

func TestShiftRecord_HoursSubtractsBreak(t *testing.T) {
	shift := validShift()
	assert.True(t, shift.Hours().Equal(decimal.RequireFromString("8.5")))

	shift.BreakMinutes = 30
	assert.True(t, shift.Hours().Equal(decimal.NewFromInt(8)))
}

func TestSaleRecord_LineTotal(t *testing.T) {
	assert.True(t, validSale().LineTotal().Equal(decimal.RequireFromString("15")))
}

func TestStorageError_KeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := generic.NewStorageError("insert sale", cause)

	assert.ErrorIs(t, err, generic.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, generic.NewStorageError("noop", nil))

	// Already-classified errors pass through untouched.
	verr := &generic.ValidationError{Field: "x", Message: "y"}
	assert.Same(t, verr, generic.NewStorageError("insert", verr))
}
