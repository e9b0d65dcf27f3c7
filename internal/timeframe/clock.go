// Package timeframe derives the day, week and month identifiers that key every
// score frame and task pack.
package timeframe

import "time"

// Clock provides the current instant. Keys are derived in the location of the
// returned time, so a clock returning local time yields local-time keys.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in the local time zone.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
