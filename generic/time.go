package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE HELPERS - Everything is normalized to UTC calendar days
// =============================================================================

const DateLayout = "2006-01-02"

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current UTC calendar day.
func Today() time.Time { return DateOf(time.Now()) }

// StartOfWeek returns the Monday of the ISO week containing t.
func StartOfWeek(t time.Time) time.Time {
	d := DateOf(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// DaysBetween counts whole days from -> to.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

// =============================================================================
// PARSING - Lenient input formats accepted by the CLI and importer
// =============================================================================

var dateLayouts = []string{DateLayout, "02/01/2006", "01/02/2006", "20060102"}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

var clockLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM"}

// ParseDate accepts ISO, day-first, month-first and compact dates, in that order.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %q", s)
}

// ParseTimestamp parses a date-time. Values without a zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %q", s)
}

// CombineDateClock joins a calendar day with a wall-clock time such as
// "09:00" or "2:30 PM".
func CombineDateClock(day time.Time, clock string) (time.Time, error) {
	for _, layout := range clockLayouts {
		if c, err := time.Parse(layout, clock); err == nil {
			d := DateOf(day)
			return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time: %q", clock)
}
