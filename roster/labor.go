/*
labor.go - Roster aggregation: worked hours, overtime and labor cost

PURPOSE:
  Turns the shifts returned by a store query into per-employee labor totals
  for a report period.

HOURS:
  hours(shift) = (clock_out - clock_in - unpaid break) in fractional hours

OVERTIME:
  Each employee's shifts are walked in clock-in order with a running total.
  Hours past OvertimeThresholdHours (default 40) within the aggregation period
  are reported as overtime and billed at hourly_rate x OvertimeMultiplier.
  With the default multiplier of 1.0 overtime is flagged but not billed at a
  premium, so cost is exactly sum(hours x rate).

  A shift that crosses the threshold is split: the part before it is regular,
  the rest is overtime, each at that shift's own rate.

EXAMPLE:
  Five 9h shifts at 20.00, multiplier 1.5:
    total 45h, overtime 5h, cost = 40 x 20 + 5 x 30 = 950.00

SEE ALSO:
  - bucket.go: Daily/weekly buckets using the same cost walk
  - config/config.go: overtime_multiplier, overtime_threshold_hours
*/
package roster

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/restaurant-engine/generic"
)

var (
	// DefaultOvertimeMultiplier applies no premium.
	DefaultOvertimeMultiplier = decimal.NewFromInt(1)

	// DefaultOvertimeThresholdHours is the per-period threshold.
	DefaultOvertimeThresholdHours = decimal.NewFromInt(40)
)

// Aggregator computes labor summaries. The zero value uses the defaults.
type Aggregator struct {
	OvertimeMultiplier     decimal.Decimal
	OvertimeThresholdHours decimal.Decimal
}

// NewAggregator returns an Aggregator with explicit defaults.
func NewAggregator() Aggregator {
	return Aggregator{
		OvertimeMultiplier:     DefaultOvertimeMultiplier,
		OvertimeThresholdHours: DefaultOvertimeThresholdHours,
	}
}

func (a Aggregator) multiplier() decimal.Decimal {
	if a.OvertimeMultiplier.IsZero() {
		return DefaultOvertimeMultiplier
	}
	return a.OvertimeMultiplier
}

func (a Aggregator) threshold() decimal.Decimal {
	if a.OvertimeThresholdHours.IsZero() {
		return DefaultOvertimeThresholdHours
	}
	return a.OvertimeThresholdHours
}

// =============================================================================
// SUMMARY TYPES
// =============================================================================

// EmployeeLabor is the labor aggregate for one employee.
type EmployeeLabor struct {
	EmployeeID    string          `json:"employee_id"`
	Shifts        int             `json:"shifts"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// HasOvertime reports whether any hours were past the threshold.
func (e EmployeeLabor) HasOvertime() bool { return e.OvertimeHours.IsPositive() }

// LaborSummary is the roster side of a report.
type LaborSummary struct {
	Period     generic.Period
	ByEmployee map[string]EmployeeLabor
	GrandCost  decimal.Decimal
	TotalHours decimal.Decimal
	Shifts     int
}

// Employees returns the per-employee totals sorted by employee id.
func (s LaborSummary) Employees() []EmployeeLabor {
	result := make([]EmployeeLabor, 0, len(s.ByEmployee))
	for _, e := range s.ByEmployee {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result
}

// AverageHoursPerShift is zero when there are no shifts.
func (s LaborSummary) AverageHoursPerShift() decimal.Decimal {
	if s.Shifts == 0 {
		return decimal.Zero
	}
	return s.TotalHours.Div(decimal.NewFromInt(int64(s.Shifts))).Round(2)
}

// =============================================================================
// AGGREGATION
// =============================================================================

// shiftCost is one shift after the overtime walk. Time stays in
// time.Duration so threshold comparisons are exact; cost is kept as
// rate x nanoseconds until a total is converted.
type shiftCost struct {
	shift    generic.ShiftRecord
	worked   time.Duration
	overtime time.Duration
	costNs   decimal.Decimal
}

// tally accumulates shift costs and converts to hours once.
type tally struct {
	shifts   int
	worked   time.Duration
	overtime time.Duration
	costNs   decimal.Decimal
}

func (t *tally) add(sc shiftCost) {
	t.shifts++
	t.worked += sc.worked
	t.overtime += sc.overtime
	t.costNs = t.costNs.Add(sc.costNs)
}

func (t tally) hours() decimal.Decimal { return generic.DurationHours(t.worked) }
func (t tally) overtimeHours() decimal.Decimal { return generic.DurationHours(t.overtime) }
func (t tally) cost() decimal.Decimal { return t.costNs.Div(nanosPerHour) }

var nanosPerHour = decimal.NewFromInt(int64(time.Hour))

// Summarize aggregates shifts for period.
func (a Aggregator) Summarize(period generic.Period, shifts []generic.ShiftRecord) LaborSummary {
	tallies := make(map[string]*tally)
	var grand tally
	for _, sc := range a.walk(shifts) {
		t, ok := tallies[sc.shift.EmployeeID]
		if !ok {
			t = &tally{}
			tallies[sc.shift.EmployeeID] = t
		}
		t.add(sc)
		grand.add(sc)
	}

	summary := LaborSummary{
		Period:     period,
		ByEmployee: make(map[string]EmployeeLabor, len(tallies)),
		GrandCost:  grand.cost(),
		TotalHours: grand.hours(),
		Shifts:     grand.shifts,
	}
	for id, t := range tallies {
		summary.ByEmployee[id] = EmployeeLabor{
			EmployeeID:    id,
			Shifts:        t.shifts,
			TotalHours:    t.hours(),
			OvertimeHours: t.overtimeHours(),
			TotalCost:     t.cost(),
		}
	}
	return summary
}

// walk costs every shift, splitting time at the overtime threshold per
// employee. Output is ordered by employee id, then clock-in, then shift id.
func (a Aggregator) walk(shifts []generic.ShiftRecord) []shiftCost {
	ordered := append([]generic.ShiftRecord(nil), shifts...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].EmployeeID != ordered[j].EmployeeID {
			return ordered[i].EmployeeID < ordered[j].EmployeeID
		}
		if !ordered[i].ClockIn.Equal(ordered[j].ClockIn) {
			return ordered[i].ClockIn.Before(ordered[j].ClockIn)
		}
		return ordered[i].ID < ordered[j].ID
	})

	threshold := time.Duration(a.threshold().Mul(nanosPerHour).IntPart())
	multiplier := a.multiplier()

	result := make([]shiftCost, 0, len(ordered))
	var running time.Duration
	for i, shift := range ordered {
		if i == 0 || ordered[i-1].EmployeeID != shift.EmployeeID {
			running = 0
		}

		worked := shift.Duration()
		remaining := threshold - running
		if remaining < 0 {
			remaining = 0
		}
		regular := min(worked, remaining)
		overtime := worked - regular
		running += worked

		costNs := decimal.NewFromInt(int64(regular)).Mul(shift.HourlyRate).
			Add(decimal.NewFromInt(int64(overtime)).Mul(shift.HourlyRate).Mul(multiplier))

		result = append(result, shiftCost{shift: shift, worked: worked, overtime: overtime, costNs: costNs})
	}
	return result
}
