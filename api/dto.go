/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines JSON structures for HTTP API communication. DTOs decouple
  the API contract from internal domain types. Money and hours travel
  as fixed-point strings so clients never see float rounding.

REQUEST BODIES:
  Create requests reuse the import schema from factory/records.go, so a
  record posted to /api/sales has the same shape as one line of a sales
  import file.

SEE ALSO:
  - handlers.go: Uses these DTOs
  - factory/records.go: SaleJSON, ShiftJSON, EmployeeJSON
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/restaurant-engine/factory"
	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/roster"
)

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CreatedResponse carries the id of a new record.
type CreatedResponse struct {
	ID string `json:"id"`
}

// PurgeResponse reports how many records a purge removed.
type PurgeResponse struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Deleted int64  `json:"deleted"`
}

// CreateSaleRequest is the request to record a sale.
type CreateSaleRequest = factory.SaleJSON

// CreateShiftRequest is the request to record a shift.
type CreateShiftRequest = factory.ShiftJSON

// CreateEmployeeRequest is the request to create or update an employee.
type CreateEmployeeRequest = factory.EmployeeJSON

// SaleDTO represents a sale in API responses.
type SaleDTO struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	ItemName   string `json:"item_name"`
	Category   string `json:"item_category,omitempty"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	LineTotal  string `json:"line_total"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// ShiftDTO represents a shift in API responses.
type ShiftDTO struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	ClockIn      string `json:"clock_in"`
	ClockOut     string `json:"clock_out"`
	HourlyRate   string `json:"hourly_rate"`
	BreakMinutes int    `json:"break_minutes,omitempty"`
	Hours        string `json:"hours"`
}

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         string `json:"employee_id"`
	Name       string `json:"name"`
	Position   string `json:"position,omitempty"`
	HourlyRate string `json:"hourly_rate"`
	Active     bool   `json:"active"`
}

// EmployeeLaborDTO is one employee's labor over a period.
type EmployeeLaborDTO struct {
	EmployeeID    string `json:"employee_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Shifts        int    `json:"shifts"`
	TotalHours    string `json:"total_hours"`
	OvertimeHours string `json:"overtime_hours"`
	TotalCost     string `json:"total_cost"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Days        int    `json:"days"`
}

// LoadScenarioRequest is the request to load a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
	// EndDate defaults to today.
	EndDate string `json:"end_date,omitempty"`
}

// LoadScenarioResponse reports what a scenario load wrote.
type LoadScenarioResponse struct {
	Scenario  string `json:"scenario"`
	From      string `json:"from"`
	To        string `json:"to"`
	Employees int    `json:"employees"`
	Sales     int    `json:"sales"`
	Shifts    int    `json:"shifts"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func fixed(d decimal.Decimal) string { return d.StringFixed(2) }

func toSaleDTO(s generic.SaleRecord) SaleDTO {
	return SaleDTO{
		ID:         s.ID,
		Timestamp:  formatTime(s.Timestamp),
		ItemName:   s.ItemName,
		Category:   s.Category,
		Quantity:   s.Quantity,
		UnitPrice:  fixed(s.UnitPrice),
		LineTotal:  fixed(generic.Money(s.LineTotal())),
		EmployeeID: s.EmployeeID,
	}
}

func toShiftDTO(s generic.ShiftRecord) ShiftDTO {
	return ShiftDTO{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		ClockIn:      formatTime(s.ClockIn),
		ClockOut:     formatTime(s.ClockOut),
		HourlyRate:   fixed(s.HourlyRate),
		BreakMinutes: s.BreakMinutes,
		Hours:        fixed(roster.WorkedHours(s.ClockIn, s.ClockOut, s.BreakMinutes)),
	}
}

func toEmployeeDTO(e generic.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		HourlyRate: fixed(e.HourlyRate),
		Active:     e.Active,
	}
}

func toEmployeeLaborDTO(period generic.Period, id string, l roster.EmployeeLabor) EmployeeLaborDTO {
	return EmployeeLaborDTO{
		EmployeeID:    id,
		From:          period.Start.Format(generic.DateLayout),
		To:            period.End.Format(generic.DateLayout),
		Shifts:        l.Shifts,
		TotalHours:    fixed(l.TotalHours.Round(2)),
		OvertimeHours: fixed(l.OvertimeHours.Round(2)),
		TotalCost:     fixed(generic.Money(l.TotalCost)),
	}
}
