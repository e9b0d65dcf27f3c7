package timeframe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestDayAndMonthKey(t *testing.T) {
	ts := date(2026, time.March, 4)
	assert.Equal(t, "2026-03-04", DayKey(ts))
	assert.Equal(t, "2026-03", MonthKey(ts))
}

func TestISOWeekday(t *testing.T) {
	tests := []struct {
		day  time.Time
		want int
	}{
		{date(2024, time.January, 1), 1}, // Monday
		{date(2024, time.January, 3), 3}, // Wednesday
		{date(2024, time.January, 7), 7}, // Sunday
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ISOWeekday(tc.day), tc.day.Format(time.DateOnly))
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		// 2024-01-01 is a Monday.
		{"jan1 monday", date(2024, time.January, 1), "2024-W01"},
		{"sunday same week", date(2024, time.January, 7), "2024-W01"},
		{"next monday", date(2024, time.January, 8), "2024-W02"},
		// 2023-01-01 is a Sunday, so Monday Jan 2 already starts week 2.
		{"jan1 sunday", date(2023, time.January, 1), "2023-W01"},
		{"jan2 monday", date(2023, time.January, 2), "2023-W02"},
		// 2026-01-01 is a Thursday.
		{"thursday start", date(2026, time.January, 4), "2026-W01"},
		{"thursday start week 2", date(2026, time.January, 5), "2026-W02"},
		{"year end", date(2026, time.December, 31), "2026-W53"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekKey(tc.day))
		})
	}
}

func TestWeekKey_StableWithinDay(t *testing.T) {
	morning := time.Date(2024, time.January, 7, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, time.January, 7, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, WeekKey(morning), WeekKey(night))
}

func TestResolver(t *testing.T) {
	r := NewResolver(FixedClock(date(2024, time.January, 10)))
	assert.Equal(t, "2024-01-10", r.TodayKey())
	assert.Equal(t, "2024-W02", r.WeekKey())
	assert.Equal(t, "2024-01", r.MonthKey())
	assert.Equal(t, "2024-W01", r.PreviousWeekKey())
	assert.Equal(t, 3, r.Weekday())
}

func TestResolver_PreviousWeekCrossesYear(t *testing.T) {
	r := NewResolver(FixedClock(date(2024, time.January, 3)))
	assert.Equal(t, "2023-W53", r.PreviousWeekKey())
}

func TestNewResolver_DefaultsToSystemClock(t *testing.T) {
	r := NewResolver(nil)
	_, ok := r.Clock.(SystemClock)
	assert.True(t, ok)
}
