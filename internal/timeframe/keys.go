package timeframe

import (
	"fmt"
	"time"
)

// DayKey formats t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ISOWeekday returns the weekday number with Monday=1 through Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekKey formats t as YYYY-Www. Week 1 is the week containing January 1 and
// weeks start on Monday:
//
//	week = ceil((daysSinceJan1 + isoWeekday(Jan1)) / 7)
//
// Days are counted as whole calendar days so the key never changes within a day.
func WeekKey(t time.Time) string {
	year := t.Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() - 1
	week := (days + ISOWeekday(jan1) + 6) / 7
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Resolver derives frame keys from an injected clock.
type Resolver struct {
	Clock Clock
}

// NewResolver returns a Resolver using clock, or the system clock when nil.
func NewResolver(clock Clock) *Resolver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Resolver{Clock: clock}
}

// Now returns the current instant from the underlying clock.
func (r *Resolver) Now() time.Time {
	return r.Clock.Now()
}

// TodayKey returns the day key for now.
func (r *Resolver) TodayKey() string {
	return DayKey(r.Now())
}

// WeekKey returns the week key for now.
func (r *Resolver) WeekKey() string {
	return WeekKey(r.Now())
}

// MonthKey returns the month key for now.
func (r *Resolver) MonthKey() string {
	return MonthKey(r.Now())
}

// PreviousWeekKey returns the week key for the same instant seven days ago.
func (r *Resolver) PreviousWeekKey() string {
	return WeekKey(r.Now().AddDate(0, 0, -7))
}

// Weekday returns today's ISO weekday number.
func (r *Resolver) Weekday() int {
	return ISOWeekday(r.Now())
}
