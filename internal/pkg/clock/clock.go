// Package clock provides an injectable time source so that domain and
// application code never reads the wall clock directly. Production code uses
// System; tests pin time with Fixed.
package clock

import "time"

// Clock supplies the current time to code that needs it.
type Clock interface {
	Now() time.Time
}

// System is the production Clock backed by time.Now.
type System struct{}

// NewSystem creates a Clock backed by the system wall clock.
func NewSystem() System {
	return System{}
}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	instant time.Time
}

// NewFixed creates a Clock that always reports the given instant.
func NewFixed(instant time.Time) Fixed {
	return Fixed{instant: instant}
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time {
	return f.instant
}
