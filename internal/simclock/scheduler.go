package simclock

import (
	"sync"
	"time"

	"github.com/mrz1836/timelapse/internal/clock"
)

// Scheduler is the recurring time source owned by a Clock.
//
// Start begins a run that invokes fn with the real time elapsed since the
// previous invocation; the first invocation measures from the moment Start
// was called. Starting again replaces the previous run. Cancel ends the
// current run and is safe to call when nothing is running.
//
// A callback may still be in flight when Cancel returns. The Clock guards
// against such stale invocations itself.
type Scheduler interface {
	Start(fn func(delta time.Duration))
	Cancel()
}

// TickerScheduler drives a Clock from a periodic ticker. Each run owns one
// goroutine. Cancel never waits for that goroutine, so it is safe to call
// from inside a notification handler.
type TickerScheduler struct {
	clock     clock.Clock
	interval  time.Duration
	fixedStep bool

	mu     sync.Mutex
	ticker clock.Ticker
	stop   chan struct{}
}

// NewTickerScheduler creates a scheduler that ticks every interval and reports
// the measured real time between ticks.
func NewTickerScheduler(c clock.Clock, interval time.Duration) *TickerScheduler {
	return &TickerScheduler{clock: c, interval: interval}
}

// NewFixedStepScheduler creates a scheduler that reports exactly interval on
// every tick, whatever real time actually passed. Late or dropped ticks lose
// simulated time, so this is only a low-fidelity fallback.
func NewFixedStepScheduler(c clock.Clock, interval time.Duration) *TickerScheduler {
	return &TickerScheduler{clock: c, interval: interval, fixedStep: true}
}

// Start begins a new run, cancelling any previous one.
func (s *TickerScheduler) Start(fn func(delta time.Duration)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()

	ticker := s.clock.NewTicker(s.interval)
	stop := make(chan struct{})
	s.ticker = ticker
	s.stop = stop

	go s.run(ticker, stop, s.clock.Now(), fn)
}

// Cancel stops the current run, if any.
func (s *TickerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *TickerScheduler) cancelLocked() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.ticker = nil
	s.stop = nil
}

func (s *TickerScheduler) run(ticker clock.Ticker, stop <-chan struct{}, last time.Time, fn func(time.Duration)) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			// Measure on receipt: ticks dropped by a slow reader are
			// folded into the next delta instead of being lost.
			now := s.clock.Now()
			delta := now.Sub(last)
			last = now
			if s.fixedStep {
				delta = s.interval
			}
			fn(delta)
		}
	}
}

// ManualScheduler is a Scheduler driven by explicit Fire calls. Tests use it to
// feed exact real-time deltas, and the headless simulate command uses it to
// play a course without waiting on wall-clock time.
type ManualScheduler struct {
	mu     sync.Mutex
	fn     func(time.Duration)
	last   func(time.Duration)
	active bool
	starts int
}

// NewManualScheduler creates an idle ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Start records fn as the current run's callback.
func (m *ManualScheduler) Start(fn func(delta time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	m.last = fn
	m.active = true
	m.starts++
}

// Cancel ends the current run.
func (m *ManualScheduler) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = nil
	m.active = false
}

// Fire delivers delta to the current run. It reports false when no run is active.
func (m *ManualScheduler) Fire(delta time.Duration) bool {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(delta)
	return true
}

// FireStale delivers delta to the most recent run's callback even if that run
// was cancelled, reproducing a scheduled tick that races teardown.
func (m *ManualScheduler) FireStale(delta time.Duration) bool {
	m.mu.Lock()
	fn := m.last
	m.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(delta)
	return true
}

// Active reports whether a run is in progress.
func (m *ManualScheduler) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Starts returns how many runs have been started.
func (m *ManualScheduler) Starts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts
}

var (
	_ Scheduler = (*TickerScheduler)(nil)
	_ Scheduler = (*ManualScheduler)(nil)
)
