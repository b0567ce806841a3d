package roster

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/restaurant-engine/generic"
)

// Bucket is the labor for one day or one ISO week, keyed on clock-in.
type Bucket struct {
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	Shifts        int             `json:"shifts"`
	Hours         decimal.Decimal `json:"hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Cost          decimal.Decimal `json:"cost"`
}

// Buckets splits shifts into daily or weekly buckets sorted by start date.
// Overtime is evaluated over the whole input, then attributed to the bucket
// of the shift where it occurred, so bucket costs add up to GrandCost.
func (a Aggregator) Buckets(shifts []generic.ShiftRecord, pt generic.PeriodType) []Bucket {
	byStart := make(map[time.Time]*tally)
	for _, sc := range a.walk(shifts) {
		start := pt.BucketStart(sc.shift.ClockIn)
		t, ok := byStart[start]
		if !ok {
			t = &tally{}
			byStart[start] = t
		}
		t.add(sc)
	}

	result := make([]Bucket, 0, len(byStart))
	for start, t := range byStart {
		result = append(result, Bucket{
			Start:         start,
			End:           pt.BucketEnd(start),
			Shifts:        t.shifts,
			Hours:         t.hours(),
			OvertimeHours: t.overtimeHours(),
			Cost:          t.cost(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})
	return result
}
