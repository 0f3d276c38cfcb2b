// Package simclock implements the virtual clock that drives course playback.
//
// The clock counts whole simulated seconds. Real time reported by its
// Scheduler is scaled by the speed multiplier and accumulated; whole seconds
// are flushed into the elapsed counter and the remainder is carried to the
// next tick. Because the accumulator measures real deltas instead of counting
// ticks, scheduling jitter never gains or loses simulated time.
//
// Every operation is total: invalid speeds are ignored, boundary steps are
// clamped, and calls on a disposed clock do nothing.
package simclock

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/timelapse/internal/clock"
	"github.com/mrz1836/timelapse/internal/constants"
)

// State is a point-in-time copy of the clock's externally visible fields.
type State struct {
	Elapsed  int64
	Running  bool
	Speed    Speed
	Stopped  bool
	Disposed bool
}

// Clock is the virtual simulation clock. It is safe for concurrent use; the
// scheduler's goroutine and the host's event loop may call into it at once.
//
// Notifications are delivered outside the clock's lock, so a notify function
// may call back into the clock. Consumers that need the authoritative value
// should read Elapsed rather than relying on notification order across
// goroutines.
type Clock struct {
	mu sync.Mutex

	elapsed      int64
	lastReported int64
	accumulated  time.Duration
	speed        Speed

	running  bool
	stopped  bool
	disposed bool

	// generation identifies the current scheduler run. Ticks carrying an
	// older generation belong to a cancelled run and are dropped.
	generation uint64

	scheduler Scheduler
	notify    func(int64)
	logger    zerolog.Logger
}

// Option configures a Clock.
type Option func(*Clock)

// WithSeed sets the initial elapsed value. The seed is only used at
// construction; Reset always returns to zero.
func WithSeed(seconds int64) Option {
	return func(c *Clock) {
		if seconds < 0 {
			seconds = 0
		}
		c.elapsed = seconds
		c.lastReported = seconds
	}
}

// WithSpeed sets the initial multiplier. Unsupported values keep the default.
func WithSpeed(s Speed) Option {
	return func(c *Clock) {
		if s.Valid() {
			c.speed = s
		}
	}
}

// WithScheduler sets the recurring time source.
func WithScheduler(s Scheduler) Option {
	return func(c *Clock) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithNotify sets the function invoked with each new elapsed value. The call
// happens after the clock's lock is released, so when a tick races a host call
// such as Reset the delivered value may already be stale. Read Elapsed for the
// current value.
func WithNotify(fn func(seconds int64)) Option {
	return func(c *Clock) {
		c.notify = fn
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Clock) {
		c.logger = logger.With().Str("component", "simclock").Logger()
	}
}

// New creates a paused clock. Without WithScheduler it ticks from the real
// system clock at constants.DefaultTickInterval.
func New(opts ...Option) *Clock {
	c := &Clock{
		speed:  Speed1x,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scheduler == nil {
		c.scheduler = NewTickerScheduler(clock.RealClock{}, constants.DefaultTickInterval)
	}
	return c
}

// Elapsed returns the current simulated seconds.
func (c *Clock) Elapsed() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Running reports whether the clock is advancing.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Speed returns the current multiplier.
func (c *Clock) Speed() Speed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Stopped reports whether the external stop signal is asserted.
func (c *Clock) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// Snapshot returns a consistent copy of the clock's state.
func (c *Clock) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Elapsed:  c.elapsed,
		Running:  c.running,
		Speed:    c.speed,
		Stopped:  c.stopped,
		Disposed: c.disposed,
	}
}

// Start begins advancing. It does nothing while running, while the stop
// signal is asserted, or after Dispose.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked()
}

// Pause stops advancing and discards any unflushed sub-second progress.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked("pause")
}

// Toggle pauses a running clock and starts a paused one. A clock held by the
// stop signal cannot be restarted this way.
func (c *Clock) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.pauseLocked("toggle")
		return
	}
	c.startLocked()
}

// Reset sets elapsed to zero, ignoring any construction seed. The running
// flag is left as it was.
func (c *Clock) Reset() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.accumulated = 0
	if c.stopped {
		c.scheduler.Cancel()
	}
	value, changed := c.flushLocked(0)
	c.logger.Debug().Int64("elapsed", value).Msg("clock reset")
	c.mu.Unlock()

	c.emit(value, changed)
}

// SetSpeed changes the multiplier. Unsupported values are ignored.
func (c *Clock) SetSpeed(s Speed) {
	if !s.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setSpeedLocked(s)
}

// IncreaseSpeed steps to the next faster multiplier, stopping at the fastest.
func (c *Clock) IncreaseSpeed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setSpeedLocked(c.speed.next())
}

// DecreaseSpeed steps to the next slower multiplier, stopping at the slowest.
func (c *Clock) DecreaseSpeed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setSpeedLocked(c.speed.prev())
}

// SetStopped asserts or releases the external stop signal. Asserting it while
// running pauses the clock once; elapsed is kept.
func (c *Clock) SetStopped(stopped bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || c.stopped == stopped {
		return
	}
	c.stopped = stopped
	if stopped {
		c.pauseLocked("stop signal")
	}
}

// Dispose cancels the scheduler for good. Later calls, and ticks already in
// flight, have no effect.
func (c *Clock) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.disposed = true
	c.running = false
	c.accumulated = 0
	c.generation++
	c.scheduler.Cancel()
	c.logger.Debug().Int64("elapsed", c.elapsed).Msg("clock disposed")
}

func (c *Clock) startLocked() {
	if c.disposed || c.running || c.stopped {
		return
	}
	c.running = true
	c.accumulated = 0
	c.generation++
	gen := c.generation
	c.scheduler.Start(func(delta time.Duration) {
		c.advance(gen, delta)
	})
	c.logger.Debug().
		Int64("elapsed", c.elapsed).
		Stringer("speed", c.speed).
		Msg("clock started")
}

func (c *Clock) pauseLocked(reason string) {
	if !c.running {
		return
	}
	c.running = false
	c.accumulated = 0
	c.scheduler.Cancel()
	c.logger.Debug().
		Int64("elapsed", c.elapsed).
		Str("reason", reason).
		Msg("clock paused")
}

func (c *Clock) setSpeedLocked(s Speed) {
	if c.disposed || s == c.speed {
		return
	}
	c.speed = s
	c.logger.Debug().Stringer("speed", s).Msg("clock speed changed")
}

// advance is the scheduler callback for run gen.
func (c *Clock) advance(gen uint64, delta time.Duration) {
	c.mu.Lock()
	if c.disposed || !c.running || c.stopped || gen != c.generation || delta <= 0 {
		c.mu.Unlock()
		return
	}

	c.accumulated += delta * time.Duration(c.speed)

	var (
		value   int64
		changed bool
	)
	if c.accumulated >= time.Second {
		whole := c.accumulated / time.Second
		c.accumulated -= whole * time.Second
		value, changed = c.flushLocked(c.elapsed + int64(whole))
	}
	c.mu.Unlock()

	c.emit(value, changed)
}

// flushLocked stores next as the elapsed value and reports whether it differs
// from the last value handed to the notify function.
func (c *Clock) flushLocked(next int64) (int64, bool) {
	c.elapsed = next
	if next == c.lastReported {
		return next, false
	}
	c.lastReported = next
	return next, true
}

func (c *Clock) emit(value int64, changed bool) {
	if !changed || c.notify == nil {
		return
	}
	c.notify(value)
}
