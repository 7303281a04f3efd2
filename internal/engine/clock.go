package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The UI uses it to decide which month to open on and which cell is "today".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the local calendar date of the clock's current instant.
func Today(c Clock) (year, month, day int) {
	y, m, d := c.Now().Date()
	return y, int(m), d
}
