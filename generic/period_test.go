package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/restaurant-engine/generic"
)

// =============================================================================
// PERIOD TESTS
// =============================================================================

func TestNewPeriod_ReversedBounds_ValidationError(t *testing.T) {
	_, err := generic.NewPeriod(generic.Date(2025, 3, 10), generic.Date(2025, 3, 9))

	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrValidation))
	assert.True(t, errors.Is(err, generic.ErrInvalidPeriod))
	assert.True(t, generic.IsClientError(err))
}

func TestPeriod_Contains_EndDayIsInclusive(t *testing.T) {
	p := generic.MustPeriod(generic.Date(2025, 3, 10), generic.Date(2025, 3, 11))

	assert.True(t, p.Contains(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2025, 3, 11, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC)))
}

func TestPeriod_SingleDay(t *testing.T) {
	p := generic.SingleDay(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))

	assert.NoError(t, p.Validate())
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, "[2025-03-10, 2025-03-10]", p.String())
}

func TestLastNDays(t *testing.T) {
	p := generic.LastNDays(7, generic.Date(2025, 3, 10))

	assert.Equal(t, generic.Date(2025, 3, 4), p.Start)
	assert.Equal(t, generic.Date(2025, 3, 10), p.End)
	assert.Len(t, p.Days(), 7)
}

func TestPeriodType_DefaultPeriod(t *testing.T) {
	ref := generic.Date(2025, 3, 10)

	assert.True(t, generic.PeriodDaily.DefaultPeriod(ref).Equal(generic.SingleDay(ref)))
	assert.Equal(t, 7, generic.PeriodWeekly.DefaultPeriod(ref).Len())
	assert.False(t, generic.PeriodType("monthly").Valid())
}

func TestStartOfWeek_Monday(t *testing.T) {
	// 2025-03-16 is a Sunday; its ISO week starts Monday 2025-03-10.
	assert.Equal(t, generic.Date(2025, 3, 10), generic.StartOfWeek(generic.Date(2025, 3, 16)))
	assert.Equal(t, generic.Date(2025, 3, 10), generic.StartOfWeek(generic.Date(2025, 3, 10)))
	assert.Equal(t, generic.Date(2025, 3, 17), generic.PeriodWeekly.BucketStart(generic.Date(2025, 3, 17)))
}

// =============================================================================
// PARSING TESTS
// =============================================================================

func TestParseDate_Formats(t *testing.T) {
	want := generic.Date(2024, 1, 15)
	for _, in := range []string{"2024-01-15", "15/01/2024", "01/15/2024", "20240115"} {
		got, err := generic.ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := generic.ParseDate("yesterday")
	assert.Error(t, err)
}

func TestCombineDateClock(t *testing.T) {
	day := generic.Date(2024, 1, 15)

	got, err := generic.CombineDateClock(day, "2:30 PM")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), got)

	got, err = generic.CombineDateClock(day, "14:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), got)
}

func TestParseTimestamp_NoZoneIsUTC(t *testing.T) {
	got, err := generic.ParseTimestamp("2024-01-15 09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), got)
}
