package roster

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/restaurant-engine/generic"
)

// ShiftEnd returns clockOut, moved to the next day when it is earlier than
// clockIn. Shifts never span more than one midnight.
func ShiftEnd(clockIn, clockOut time.Time) time.Time {
	if clockOut.Before(clockIn) {
		return clockOut.AddDate(0, 0, 1)
	}
	return clockOut
}

// WorkedHours returns the paid hours between two wall-clock times, rounded to
// two decimals. A clock-out earlier than clock-in is taken to be on the next
// day. Breaks are unpaid; the result is never negative.
func WorkedHours(clockIn, clockOut time.Time, breakMinutes int) decimal.Decimal {
	shift := generic.ShiftRecord{ClockIn: clockIn, ClockOut: ShiftEnd(clockIn, clockOut), BreakMinutes: breakMinutes}
	return shift.Hours().Round(2)
}

// PositionTotal is the labor for one job position, at base rates.
type PositionTotal struct {
	Position string          `json:"position"`
	Shifts   int             `json:"shifts"`
	Hours    decimal.Decimal `json:"hours"`
	Cost     decimal.Decimal `json:"cost"`
}

// UnassignedPosition groups shifts of employees missing from the roster.
const UnassignedPosition = "Unassigned"

// ByPosition groups shifts by the position of their employee, sorted by
// position name. Cost here is hours x rate with no overtime premium.
func ByPosition(shifts []generic.ShiftRecord, employees []generic.Employee) []PositionTotal {
	positions := make(map[string]string, len(employees))
	for _, e := range employees {
		positions[e.ID] = e.Position
	}

	groups := make(map[string]PositionTotal)
	for _, shift := range shifts {
		name := positions[shift.EmployeeID]
		if name == "" {
			name = UnassignedPosition
		}
		hours := shift.Hours()

		group := groups[name]
		group.Position = name
		group.Shifts++
		group.Hours = group.Hours.Add(hours)
		group.Cost = group.Cost.Add(hours.Mul(shift.HourlyRate))
		groups[name] = group
	}

	result := make([]PositionTotal, 0, len(groups))
	for _, g := range groups {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result
}
