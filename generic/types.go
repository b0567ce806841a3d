/*
Package generic provides the shared domain model for the restaurant engine.

PURPOSE:
  This package contains the record types, period arithmetic, error kinds and
  the storage interface that the POS and roster packages build on. Neither
  aggregator knows about SQL, HTTP or the CLI; they only see these types.

KEY CONCEPTS IN THIS FILE (types.go):
  - SaleRecord: One POS line (item x quantity at a unit price)
  - ShiftRecord: One clocked shift for an employee at an hourly rate
  - Employee: Roster master data (name, position, default rate)
  - Money/Hours: decimal.Decimal helpers so totals never drift

DESIGN PRINCIPLES:
  1. Immutability: Records are never updated, only purged
  2. Precision: Uses decimal.Decimal for money and hours
  3. Type Safety: Record IDs are opaque strings assigned by the store

USAGE:
  sale := generic.SaleRecord{
      Timestamp: time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
      ItemName:  "Burger",
      Quantity:  2,
      UnitPrice: generic.MustParseDecimal("18.50"),
  }
  total := sale.LineTotal() // 37.00

SEE ALSO:
  - period.go: Closed date ranges used to scope queries
  - store.go: RecordStore interface
  - errors.go: ValidationError, StorageError, ConfigurationError
*/
package generic

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DECIMAL HELPERS
// =============================================================================

// MustParseDecimal parses s, returning zero on malformed input.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Money rounds an amount to cents for display and export.
func Money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// DurationHours converts a duration to fractional hours.
func DurationHours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(decimal.NewFromInt(int64(time.Hour)))
}

// =============================================================================
// SALE RECORD - One POS transaction line
// =============================================================================

type SaleRecord struct {
	ID         string
	Timestamp  time.Time
	ItemName   string
	Category   string // optional, e.g. "Main", "Beverage"
	Quantity   int
	UnitPrice  decimal.Decimal
	EmployeeID string // optional attribution, not a foreign key
	CreatedAt  time.Time
}

// LineTotal returns Quantity x UnitPrice.
func (s SaleRecord) LineTotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// =============================================================================
// SHIFT RECORD - One clocked shift
// =============================================================================

type ShiftRecord struct {
	ID           string
	EmployeeID   string
	ClockIn      time.Time
	ClockOut     time.Time
	HourlyRate   decimal.Decimal
	BreakMinutes int // unpaid
	CreatedAt    time.Time
}

// Duration is the paid time of the shift (clock time minus unpaid breaks),
// never negative.
func (s ShiftRecord) Duration() time.Duration {
	d := s.ClockOut.Sub(s.ClockIn) - time.Duration(s.BreakMinutes)*time.Minute
	if d < 0 {
		return 0
	}
	return d
}

// Hours returns Duration in fractional hours.
func (s ShiftRecord) Hours() decimal.Decimal { return DurationHours(s.Duration()) }

// =============================================================================
// EMPLOYEE - Roster master data
// =============================================================================

type Employee struct {
	ID         string
	Name       string
	Position   string
	HourlyRate decimal.Decimal
	Active     bool
	CreatedAt  time.Time
}
