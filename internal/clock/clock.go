// Package clock provides an abstraction over real (wall-clock) time.
// The virtual simulation clock measures real elapsed time through this
// interface so tests can substitute a Fake and drive time by hand.
package clock

import "time"

// Clock is an interface for real-time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a Ticker that delivers ticks every d.
	// d must be positive.
	NewTicker(d time.Duration) Ticker
}

// Ticker abstracts time.Ticker so fake clocks can provide controllable ticks.
type Ticker interface {
	// C returns the channel on which ticks are delivered.
	C() <-chan time.Time

	// Stop turns off the ticker. Stop does not close C.
	Stop()
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NewTicker creates a real Ticker via time.NewTicker.
func (RealClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{inner: time.NewTicker(d)}
}

// realTicker wraps time.Ticker to satisfy the Ticker interface.
type realTicker struct {
	inner *time.Ticker
}

func (t *realTicker) C() <-chan time.Time { return t.inner.C }
func (t *realTicker) Stop()               { t.inner.Stop() }

// Ensure RealClock implements Clock.
var _ Clock = RealClock{}
