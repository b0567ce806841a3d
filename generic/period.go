package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - Closed date range that scopes every query and report
// =============================================================================

// Period is the closed range [Start, End] of calendar days.
// A period with Start == End covers exactly one day.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod normalizes both bounds to calendar days and validates Start <= End.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: DateOf(start), End: DateOf(end)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// MustPeriod is NewPeriod for literals in tests and presets.
func MustPeriod(start, end time.Time) Period {
	p, err := NewPeriod(start, end)
	if err != nil {
		panic(err)
	}
	return p
}

// SingleDay returns the period covering only day.
func SingleDay(day time.Time) Period {
	d := DateOf(day)
	return Period{Start: d, End: d}
}

// LastNDays returns the n days ending on (and including) ref.
func LastNDays(n int, ref time.Time) Period {
	if n < 1 {
		n = 1
	}
	end := DateOf(ref)
	return Period{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

// Validate returns a ValidationError when the bounds are reversed or unset.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return &ValidationError{Field: "period", Message: "start and end are required", Err: ErrInvalidPeriod}
	}
	if DateOf(p.Start).After(DateOf(p.End)) {
		return &ValidationError{
			Field:   "period",
			Message: fmt.Sprintf("start %s is after end %s", p.Start.Format(DateLayout), p.End.Format(DateLayout)),
			Err:     ErrInvalidPeriod,
		}
	}
	return nil
}

// Bounds returns the half-open instant range [from, until) covered by the period.
func (p Period) Bounds() (from, until time.Time) {
	return DateOf(p.Start), DateOf(p.End).AddDate(0, 0, 1)
}

// Contains returns true if t falls on a day within [Start, End].
func (p Period) Contains(t time.Time) bool {
	from, until := p.Bounds()
	t = t.UTC()
	return !t.Before(from) && t.Before(until)
}

// Days returns every calendar day in the period.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := DateOf(p.Start); !d.After(DateOf(p.End)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Len is the number of days in the period.
func (p Period) Len() int { return DaysBetween(p.Start, p.End) + 1 }

// Equal compares bounds at day granularity.
func (p Period) Equal(other Period) bool {
	return DateOf(p.Start).Equal(DateOf(other.Start)) && DateOf(p.End).Equal(DateOf(other.End))
}

func (p Period) String() string {
	return "[" + p.Start.Format(DateLayout) + ", " + p.End.Format(DateLayout) + "]"
}

// =============================================================================
// PERIOD TYPE - Bucket granularity and default report window
// =============================================================================

type PeriodType string

const (
	PeriodDaily  PeriodType = "daily"
	PeriodWeekly PeriodType = "weekly"
)

// Valid reports whether pt is a known period type.
func (pt PeriodType) Valid() bool { return pt == PeriodDaily || pt == PeriodWeekly }

// DefaultPeriod returns the report window used when no explicit period is
// given: the reference day for daily, the seven days ending on it for weekly.
func (pt PeriodType) DefaultPeriod(ref time.Time) Period {
	if pt == PeriodWeekly {
		return LastNDays(7, ref)
	}
	return SingleDay(ref)
}

// BucketStart returns the first day of the bucket containing t.
func (pt PeriodType) BucketStart(t time.Time) time.Time {
	if pt == PeriodWeekly {
		return StartOfWeek(t)
	}
	return DateOf(t)
}

// BucketEnd returns the last day of the bucket starting at start.
func (pt PeriodType) BucketEnd(start time.Time) time.Time {
	if pt == PeriodWeekly {
		return start.AddDate(0, 0, 6)
	}
	return start
}
