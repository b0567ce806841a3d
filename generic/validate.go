package generic

import (
	"fmt"
	"strings"
)

// ValidateSale checks the invariants every stored sale must satisfy.
func ValidateSale(s SaleRecord) error {
	if strings.TrimSpace(s.ItemName) == "" {
		return &ValidationError{Field: "item_name", Message: "is required"}
	}
	if s.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Message: "is required"}
	}
	if s.Quantity < 0 {
		return &ValidationError{Field: "quantity", Message: fmt.Sprintf("must be >= 0, got %d", s.Quantity)}
	}
	if s.UnitPrice.IsNegative() {
		return &ValidationError{Field: "unit_price", Message: fmt.Sprintf("must be >= 0, got %s", s.UnitPrice)}
	}
	return nil
}

// ValidateShift checks the invariants every stored shift must satisfy.
func ValidateShift(s ShiftRecord) error {
	if strings.TrimSpace(s.EmployeeID) == "" {
		return &ValidationError{Field: "employee_id", Message: "is required"}
	}
	if s.ClockIn.IsZero() || s.ClockOut.IsZero() {
		return &ValidationError{Field: "clock_in", Message: "clock_in and clock_out are required"}
	}
	if s.ClockOut.Before(s.ClockIn) {
		return &ValidationError{
			Field:   "clock_out",
			Message: fmt.Sprintf("%s is before clock_in %s", s.ClockOut.Format("2006-01-02 15:04"), s.ClockIn.Format("2006-01-02 15:04")),
		}
	}
	if s.HourlyRate.IsNegative() {
		return &ValidationError{Field: "hourly_rate", Message: fmt.Sprintf("must be >= 0, got %s", s.HourlyRate)}
	}
	if s.BreakMinutes < 0 {
		return &ValidationError{Field: "break_minutes", Message: "must be >= 0"}
	}
	if float64(s.BreakMinutes) > s.ClockOut.Sub(s.ClockIn).Minutes() {
		return &ValidationError{Field: "break_minutes", Message: "exceeds shift length"}
	}
	return nil
}

// ValidateEmployee checks roster master data.
func ValidateEmployee(e Employee) error {
	if strings.TrimSpace(e.ID) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if e.HourlyRate.IsNegative() {
		return &ValidationError{Field: "hourly_rate", Message: "must be >= 0"}
	}
	return nil
}
