// Package schedule holds the due-date math for recurring reminders. All
// functions are pure: the current instant is always an explicit parameter,
// never read from a global clock.
package schedule

import "time"

// Clock supplies the current instant. Production code uses SystemClock;
// tests substitute a fixed or stepping implementation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.Instant
}

// SteppingClock returns its instant and advances by Step on every call.
// Useful for tests that need distinct consecutive instants.
type SteppingClock struct {
	Instant time.Time
	Step    time.Duration
}

// Now returns the current instant and advances the clock.
func (c *SteppingClock) Now() time.Time {
	now := c.Instant
	c.Instant = c.Instant.Add(c.Step)
	return now
}
