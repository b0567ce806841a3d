/*
Package factory provides JSON to Go record conversion and sample data.

PURPOSE:
  Converts JSON sale and shift exports (from a POS terminal or a timesheet
  tool) into generic.SaleRecord and generic.ShiftRecord values, and imports
  them into a store. Also generates deterministic demo data (sample.go).

JSON SCHEMA (sales):
  [
    {
      "sale_date": "2024-01-15",        // or "timestamp": "2024-01-15T12:30:00Z"
      "sale_time": "12:30:00",
      "item_name": "Burger Deluxe",
      "item_category": "Main",          // optional
      "quantity": 2,
      "unit_price": 18.50,              // number or string
      "employee_id": "EMP003"           // optional
    }
  ]

JSON SCHEMA (shifts):
  [
    {
      "employee_id": "EMP001",
      "shift_date": "2024-01-15",
      "start_time": "09:00",
      "end_time": "17:30",              // earlier than start: next day
      "hourly_rate": 28.50,             // optional: falls back to the employee record
      "break_minutes": 30,              // optional
      "meal_breaks": [{"duration": 15}] // optional, minutes, added to break_minutes
    }
  ]

IMPORT RULES:
  - Records missing a required field, or failing validation, are skipped
    and reported; the rest are written in one batch.
  - Dates accept the formats of generic.ParseDate, times those of
    generic.CombineDateClock.

USAGE:
  f := factory.NewRecordFactory()
  result, err := f.ImportSales(ctx, store, data)
  fmt.Println(result.Imported, len(result.Skipped))

SEE ALSO:
  - generic/validate.go: Record validation
  - sample.go: Demo menu, staff and generators
*/
package factory

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/roster"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SaleJSON is the JSON representation of a sale.
type SaleJSON struct {
	Timestamp    string           `json:"timestamp,omitempty"`
	SaleDate     string           `json:"sale_date,omitempty"`
	SaleTime     string           `json:"sale_time,omitempty"`
	ItemName     string           `json:"item_name"`
	ItemCategory string           `json:"item_category,omitempty"`
	Quantity     *int             `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	EmployeeID   string           `json:"employee_id,omitempty"`
}

// ShiftJSON is the JSON representation of a shift.
type ShiftJSON struct {
	EmployeeID   string           `json:"employee_id"`
	EmployeeName string           `json:"employee_name,omitempty"`
	ShiftDate    string           `json:"shift_date"`
	StartTime    string           `json:"start_time"`
	EndTime      string           `json:"end_time"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	BreakMinutes int              `json:"break_minutes,omitempty"`
	MealBreaks   []MealBreakJSON  `json:"meal_breaks,omitempty"`
}

// MealBreakJSON is one unpaid break.
type MealBreakJSON struct {
	Duration int `json:"duration"` // minutes
}

// EmployeeJSON is the JSON representation of an employee.
type EmployeeJSON struct {
	ID         string          `json:"employee_id"`
	Name       string          `json:"name"`
	Position   string          `json:"position,omitempty"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Active     *bool           `json:"active,omitempty"`
}

// Skipped describes a record left out of an import.
type Skipped struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ImportResult summarizes an import.
type ImportResult struct {
	Imported int       `json:"imported"`
	IDs      []string  `json:"ids"`
	Skipped  []Skipped `json:"skipped"`
}

// =============================================================================
// RECORD FACTORY
// =============================================================================

// RecordFactory converts JSON records to Go structs.
type RecordFactory struct{}

// NewRecordFactory creates a new record factory.
func NewRecordFactory() *RecordFactory {
	return &RecordFactory{}
}

// ParseSales decodes a JSON array of sales. Records that cannot be converted
// are reported in skipped; a malformed document is an error.
func (f *RecordFactory) ParseSales(data []byte) (sales []generic.SaleRecord, skipped []Skipped, err error) {
	var raw []SaleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, &generic.ValidationError{Field: "body", Message: "failed to parse sales JSON", Err: err}
	}

	sales = make([]generic.SaleRecord, 0, len(raw))
	for i, sj := range raw {
		sale, err := f.SaleFromJSON(sj)
		if err == nil {
			err = generic.ValidateSale(sale)
		}
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Reason: err.Error()})
			continue
		}
		sales = append(sales, sale)
	}
	return sales, skipped, nil
}

// SaleFromJSON converts one SaleJSON.
func (f *RecordFactory) SaleFromJSON(sj SaleJSON) (generic.SaleRecord, error) {
	if strings.TrimSpace(sj.ItemName) == "" {
		return generic.SaleRecord{}, missing("item_name")
	}
	if sj.Quantity == nil {
		return generic.SaleRecord{}, missing("quantity")
	}
	if sj.UnitPrice == nil {
		return generic.SaleRecord{}, missing("unit_price")
	}

	ts, err := saleTimestamp(sj)
	if err != nil {
		return generic.SaleRecord{}, err
	}

	return generic.SaleRecord{
		Timestamp:  ts,
		ItemName:   strings.TrimSpace(sj.ItemName),
		Category:   strings.TrimSpace(sj.ItemCategory),
		Quantity:   *sj.Quantity,
		UnitPrice:  *sj.UnitPrice,
		EmployeeID: strings.TrimSpace(sj.EmployeeID),
	}, nil
}

func saleTimestamp(sj SaleJSON) (time.Time, error) {
	if sj.Timestamp != "" {
		ts, err := generic.ParseTimestamp(sj.Timestamp)
		if err != nil {
			return time.Time{}, &generic.ValidationError{Field: "timestamp", Message: err.Error()}
		}
		return ts, nil
	}
	if sj.SaleDate == "" {
		return time.Time{}, missing("sale_date")
	}
	if sj.SaleTime == "" {
		return time.Time{}, missing("sale_time")
	}

	day, err := generic.ParseDate(sj.SaleDate)
	if err != nil {
		return time.Time{}, &generic.ValidationError{Field: "sale_date", Message: err.Error()}
	}
	ts, err := generic.CombineDateClock(day, sj.SaleTime)
	if err != nil {
		return time.Time{}, &generic.ValidationError{Field: "sale_time", Message: err.Error()}
	}
	return ts, nil
}

// RateLookup resolves an employee's default hourly rate.
type RateLookup func(employeeID string) (decimal.Decimal, bool)

// ParseShifts decodes a JSON array of shifts. Shifts without an hourly rate
// take it from rates; when rates is nil or has no entry they are skipped.
func (f *RecordFactory) ParseShifts(data []byte, rates RateLookup) (shifts []generic.ShiftRecord, skipped []Skipped, err error) {
	var raw []ShiftJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, &generic.ValidationError{Field: "body", Message: "failed to parse shifts JSON", Err: err}
	}

	shifts = make([]generic.ShiftRecord, 0, len(raw))
	for i, sj := range raw {
		shift, err := f.ShiftFromJSON(sj, rates)
		if err == nil {
			err = generic.ValidateShift(shift)
		}
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Reason: err.Error()})
			continue
		}
		shifts = append(shifts, shift)
	}
	return shifts, skipped, nil
}

// ShiftFromJSON converts one ShiftJSON.
func (f *RecordFactory) ShiftFromJSON(sj ShiftJSON, rates RateLookup) (generic.ShiftRecord, error) {
	switch {
	case strings.TrimSpace(sj.EmployeeID) == "":
		return generic.ShiftRecord{}, missing("employee_id")
	case sj.ShiftDate == "":
		return generic.ShiftRecord{}, missing("shift_date")
	case sj.StartTime == "":
		return generic.ShiftRecord{}, missing("start_time")
	case sj.EndTime == "":
		return generic.ShiftRecord{}, missing("end_time")
	}

	day, err := generic.ParseDate(sj.ShiftDate)
	if err != nil {
		return generic.ShiftRecord{}, &generic.ValidationError{Field: "shift_date", Message: err.Error()}
	}
	clockIn, err := generic.CombineDateClock(day, sj.StartTime)
	if err != nil {
		return generic.ShiftRecord{}, &generic.ValidationError{Field: "start_time", Message: err.Error()}
	}
	clockOut, err := generic.CombineDateClock(day, sj.EndTime)
	if err != nil {
		return generic.ShiftRecord{}, &generic.ValidationError{Field: "end_time", Message: err.Error()}
	}
	clockOut = roster.ShiftEnd(clockIn, clockOut)

	employeeID := strings.TrimSpace(sj.EmployeeID)
	var rate decimal.Decimal
	switch {
	case sj.HourlyRate != nil:
		rate = *sj.HourlyRate
	case rates != nil:
		r, ok := rates(employeeID)
		if !ok {
			return generic.ShiftRecord{}, &generic.ValidationError{
				Field: "hourly_rate", Message: fmt.Sprintf("no rate given and employee %s is unknown", employeeID),
			}
		}
		rate = r
	default:
		return generic.ShiftRecord{}, missing("hourly_rate")
	}

	breaks := sj.BreakMinutes
	for _, mb := range sj.MealBreaks {
		breaks += mb.Duration
	}

	return generic.ShiftRecord{
		EmployeeID:   employeeID,
		ClockIn:      clockIn,
		ClockOut:     clockOut,
		HourlyRate:   rate,
		BreakMinutes: breaks,
	}, nil
}

// ParseEmployees decodes a JSON array of employees. Active defaults to true.
func (f *RecordFactory) ParseEmployees(data []byte) ([]generic.Employee, error) {
	var raw []EmployeeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &generic.ValidationError{Field: "body", Message: "failed to parse employees JSON", Err: err}
	}

	employees := make([]generic.Employee, 0, len(raw))
	for _, ej := range raw {
		employees = append(employees, EmployeeFromJSON(ej))
	}
	return employees, nil
}

// EmployeeFromJSON converts one EmployeeJSON.
func EmployeeFromJSON(ej EmployeeJSON) generic.Employee {
	active := true
	if ej.Active != nil {
		active = *ej.Active
	}
	return generic.Employee{
		ID:         strings.TrimSpace(ej.ID),
		Name:       strings.TrimSpace(ej.Name),
		Position:   strings.TrimSpace(ej.Position),
		HourlyRate: ej.HourlyRate,
		Active:     active,
	}
}

// =============================================================================
// IMPORT
// =============================================================================

// ImportSales parses data and inserts the valid sales in one batch.
func (f *RecordFactory) ImportSales(ctx context.Context, store generic.RecordStore, data []byte) (ImportResult, error) {
	sales, skipped, err := f.ParseSales(data)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Skipped: skipped, IDs: []string{}}
	if len(sales) == 0 {
		return result, nil
	}
	ids, err := store.InsertSales(ctx, sales)
	if err != nil {
		return ImportResult{}, err
	}
	result.IDs = ids
	result.Imported = len(ids)
	return result, nil
}

// ImportShifts parses data and inserts the valid shifts in one batch. Missing
// rates are looked up in the employee store.
func (f *RecordFactory) ImportShifts(ctx context.Context, store generic.Store, data []byte) (ImportResult, error) {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	rates := make(map[string]decimal.Decimal, len(employees))
	for _, e := range employees {
		rates[e.ID] = e.HourlyRate
	}
	lookup := func(id string) (decimal.Decimal, bool) {
		r, ok := rates[id]
		return r, ok
	}

	shifts, skipped, err := f.ParseShifts(data, lookup)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Skipped: skipped, IDs: []string{}}
	if len(shifts) == 0 {
		return result, nil
	}
	ids, err := store.InsertShifts(ctx, shifts)
	if err != nil {
		return ImportResult{}, err
	}
	result.IDs = ids
	result.Imported = len(ids)
	return result, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func missing(field string) error {
	return &generic.ValidationError{Field: field, Message: "required field missing"}
}
