package roster_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/restaurant-engine/generic"
	"github.com/warp/restaurant-engine/roster"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func shift(emp string, in time.Time, d time.Duration, rate string) generic.ShiftRecord {
	return generic.ShiftRecord{EmployeeID: emp, ClockIn: in, ClockOut: in.Add(d), HourlyRate: dec(rate)}
}

func TestSummarize_SingleShift(t *testing.T) {
	// GIVEN a 09:00-17:30 shift at 15.00
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := shift("EMP001", in, 8*time.Hour+30*time.Minute, "15.00")

	// WHEN summarized with the defaults
	got := roster.NewAggregator().Summarize(generic.SingleDay(in), []generic.ShiftRecord{s})

	// THEN 8.5h cost 127.50, no overtime
	emp := got.ByEmployee["EMP001"]
	assert.True(t, emp.TotalHours.Equal(dec("8.5")))
	assert.True(t, emp.TotalCost.Equal(dec("127.50")))
	assert.False(t, emp.HasOvertime())
	assert.True(t, got.GrandCost.Equal(dec("127.5")))
}

func TestSummarize_OvertimeWithMultiplier(t *testing.T) {
	// GIVEN five 9h shifts at 20.00 in one week
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	var shifts []generic.ShiftRecord
	for i := 4; i >= 0; i-- {
		shifts = append(shifts, shift("EMP002", start.AddDate(0, 0, i), 9*time.Hour, "20"))
	}

	// WHEN aggregated with a 1.5 multiplier
	agg := roster.Aggregator{OvertimeMultiplier: dec("1.5"), OvertimeThresholdHours: dec("40")}
	got := agg.Summarize(generic.LastNDays(7, generic.Date(2025, 3, 16)), shifts)

	// THEN 5h overtime and 40 x 20 + 5 x 30 = 950
	emp := got.ByEmployee["EMP002"]
	assert.True(t, emp.TotalHours.Equal(dec("45")))
	assert.True(t, emp.OvertimeHours.Equal(dec("5")))
	assert.True(t, emp.TotalCost.Equal(dec("950")), emp.TotalCost.String())
	assert.Equal(t, 5, emp.Shifts)
}

func TestSummarize_ExactlyAtThresholdIsNotOvertime(t *testing.T) {
	// GIVEN four 8h40m shifts and one 5h20m shift, exactly 40h in total
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	var shifts []generic.ShiftRecord
	for i := 0; i < 4; i++ {
		shifts = append(shifts, shift("EMP004", start.AddDate(0, 0, i), 8*time.Hour+40*time.Minute, "20"))
	}
	shifts = append(shifts, shift("EMP004", start.AddDate(0, 0, 4), 5*time.Hour+20*time.Minute, "20"))

	// WHEN aggregated with a 1.5 multiplier
	agg := roster.Aggregator{OvertimeMultiplier: dec("1.5")}
	got := agg.Summarize(generic.LastNDays(7, generic.Date(2025, 3, 16)), shifts)

	// THEN 40h exactly, no overtime, 40 x 20
	emp := got.ByEmployee["EMP004"]
	assert.True(t, emp.TotalHours.Equal(dec("40")), emp.TotalHours.String())
	assert.True(t, emp.OvertimeHours.IsZero(), emp.OvertimeHours.String())
	assert.False(t, emp.HasOvertime())
	assert.True(t, emp.TotalCost.Equal(dec("800")), emp.TotalCost.String())
	assert.True(t, got.AverageHoursPerShift().Equal(dec("8")))

	// One more minute is overtime at the premium
	shifts = append(shifts, shift("EMP004", start.AddDate(0, 0, 5), time.Minute, "20"))
	emp = agg.Summarize(generic.LastNDays(7, generic.Date(2025, 3, 16)), shifts).ByEmployee["EMP004"]
	assert.True(t, emp.HasOvertime())
	assert.True(t, emp.TotalCost.Equal(dec("800.5")), emp.TotalCost.String())
}

func TestSummarize_DefaultMultiplierFlagsButDoesNotPremium(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	var shifts []generic.ShiftRecord
	for i := 0; i < 5; i++ {
		shifts = append(shifts, shift("EMP002", start.AddDate(0, 0, i), 9*time.Hour, "20"))
	}

	var agg roster.Aggregator // zero value falls back to defaults
	emp := agg.Summarize(generic.LastNDays(7, generic.Date(2025, 3, 16)), shifts).ByEmployee["EMP002"]

	assert.True(t, emp.OvertimeHours.Equal(dec("5")))
	assert.True(t, emp.TotalCost.Equal(dec("900")))
}

func TestSummarize_OvertimeIsPerEmployee(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	shifts := []generic.ShiftRecord{
		shift("EMP001", start, 30*time.Hour, "10"),
		shift("EMP002", start, 30*time.Hour, "10"),
	}

	got := roster.NewAggregator().Summarize(generic.SingleDay(start), shifts)

	require.Len(t, got.Employees(), 2)
	for _, emp := range got.Employees() {
		assert.False(t, emp.HasOvertime(), emp.EmployeeID)
	}
	assert.True(t, got.TotalHours.Equal(dec("60")))
	assert.True(t, got.AverageHoursPerShift().Equal(dec("30")))
}

func TestSummarize_Empty(t *testing.T) {
	got := roster.NewAggregator().Summarize(generic.SingleDay(generic.Date(2025, 3, 10)), nil)

	assert.Empty(t, got.ByEmployee)
	assert.True(t, got.GrandCost.IsZero())
	assert.True(t, got.AverageHoursPerShift().IsZero())
}

func TestBuckets_CostsAddUpToGrandCost(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	var shifts []generic.ShiftRecord
	for i := 0; i < 5; i++ {
		shifts = append(shifts, shift("EMP002", start.AddDate(0, 0, i), 9*time.Hour, "20"))
	}
	agg := roster.Aggregator{OvertimeMultiplier: dec("1.5")}

	buckets := agg.Buckets(shifts, generic.PeriodDaily)
	require.Len(t, buckets, 5)

	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Cost)
	}
	assert.True(t, total.Equal(dec("950")))
	// The last day carries the 5h that crossed the threshold.
	assert.True(t, buckets[4].OvertimeHours.Equal(dec("5")))

	weekly := agg.Buckets(shifts, generic.PeriodWeekly)
	require.Len(t, weekly, 1)
	assert.Equal(t, generic.Date(2025, 3, 10), weekly[0].Start)
}

func TestWorkedHours(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in, out  time.Duration
		breakMin int
		want     string
	}{
		{"regular", 9 * time.Hour, 17*time.Hour + 30*time.Minute, 0, "8.5"},
		{"with break", 9 * time.Hour, 17*time.Hour + 30*time.Minute, 30, "8"},
		{"crosses midnight", 22 * time.Hour, 2 * time.Hour, 0, "4"},
		{"break longer than shift", 9 * time.Hour, 10 * time.Hour, 90, "0"},
		{"rounded", 9 * time.Hour, 9*time.Hour + 20*time.Minute, 0, "0.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roster.WorkedHours(base.Add(tt.in), base.Add(tt.out), tt.breakMin)
			assert.True(t, got.Equal(dec(tt.want)), got.String())
		})
	}
}

func TestShiftEnd(t *testing.T) {
	in := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC), roster.ShiftEnd(in, in.Add(-16*time.Hour)))
	assert.Equal(t, in.Add(4*time.Hour), roster.ShiftEnd(in, in.Add(4*time.Hour)))
	assert.Equal(t, in, roster.ShiftEnd(in, in))
}

func TestByPosition(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	employees := []generic.Employee{
		{ID: "EMP001", Name: "Alice Johnson", Position: "Manager"},
		{ID: "EMP003", Name: "Carol Davis", Position: "Server"},
	}
	shifts := []generic.ShiftRecord{
		shift("EMP001", in, 8*time.Hour, "28.50"),
		shift("EMP003", in, 4*time.Hour, "22.50"),
		shift("EMP999", in, 2*time.Hour, "10"),
	}

	got := roster.ByPosition(shifts, employees)
	require.Len(t, got, 3)
	assert.Equal(t, "Manager", got[0].Position)
	assert.True(t, got[0].Cost.Equal(dec("228")))
	assert.Equal(t, "Server", got[1].Position)
	assert.Equal(t, roster.UnassignedPosition, got[2].Position)
}
