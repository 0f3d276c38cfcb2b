package simclock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/timelapse/internal/clock"
)

// recorder collects notification values.
type recorder struct {
	mu     sync.Mutex
	values []int64
}

func (r *recorder) notify(v int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) got() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, len(r.values))
	copy(out, r.values)
	return out
}

// recordingScheduler keeps every callback it was started with so tests can
// replay ticks from cancelled runs.
type recordingScheduler struct {
	runs    []func(time.Duration)
	cancels int
}

func (s *recordingScheduler) Start(fn func(time.Duration)) { s.runs = append(s.runs, fn) }
func (s *recordingScheduler) Cancel()                      { s.cancels++ }

func newManualClock(t *testing.T, opts ...Option) (*Clock, *ManualScheduler, *recorder) {
	t.Helper()
	sched := NewManualScheduler()
	rec := &recorder{}
	all := append([]Option{WithScheduler(sched), WithNotify(rec.notify)}, opts...)
	return New(all...), sched, rec
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c, _, _ := newManualClock(t)

	state := c.Snapshot()
	assert.Equal(t, int64(0), state.Elapsed)
	assert.False(t, state.Running)
	assert.Equal(t, Speed1x, state.Speed)
	assert.False(t, state.Stopped)
	assert.False(t, state.Disposed)
}

func TestNew_NegativeSeedClampsToZero(t *testing.T) {
	t.Parallel()

	c, _, _ := newManualClock(t, WithSeed(-5))

	assert.Equal(t, int64(0), c.Elapsed())
}

func TestNew_InvalidInitialSpeedKeepsDefault(t *testing.T) {
	t.Parallel()

	c, _, _ := newManualClock(t, WithSpeed(Speed(7)))

	assert.Equal(t, Speed1x, c.Speed())
}

func TestNew_WithoutSchedulerUsesRealTicker(t *testing.T) {
	t.Parallel()

	c := New()
	defer c.Dispose()

	_, ok := c.scheduler.(*TickerScheduler)
	assert.True(t, ok)
}

func TestTick_FlushesWholeSecondsOnce(t *testing.T) {
	t.Parallel()

	c, sched, rec := newManualClock(t, WithSpeed(Speed60x))
	c.Start()

	for i := 0; i < 3; i++ {
		require.True(t, sched.Fire(10*time.Millisecond))
	}

	assert.Equal(t, int64(1), c.Elapsed())
	assert.Equal(t, []int64{1}, rec.got())
}

func TestTick_CarriesRemainder(t *testing.T) {
	t.Parallel()

	c, sched, rec := newManualClock(t)
	c.Start()

	for i := 0; i < 5; i++ {
		sched.Fire(400 * time.Millisecond)
	}

	assert.Equal(t, int64(2), c.Elapsed())
	assert.Equal(t, []int64{1, 2}, rec.got())
}

func TestTick_HighMultiplierFlushesSeveralSeconds(t *testing.T) {
	t.Parallel()

	c, sched, rec := newManualClock(t, WithSpeed(Speed120x))
	c.Start()

	sched.Fire(100 * time.Millisecond)

	assert.Equal(t, int64(12), c.Elapsed())
	assert.Equal(t, []int64{12}, rec.got(), "a multi-second flush notifies once")
}

func TestTick_NonPositiveDeltaIgnored(t *testing.T) {
	t.Parallel()

	c, sched, rec := newManualClock(t)
	c.Start()

	sched.Fire(-time.Second)
	sched.Fire(0)

	assert.Equal(t, int64(0), c.Elapsed())
	assert.Empty(t, rec.got())
}

func TestTick_SubSecondDeltasNeverLoseTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		speed Speed
		delta time.Duration
		ticks int
		want  int64
	}{
		{"1x 16ms frames", Speed1x, 16 * time.Millisecond, 250, 4},
		{"10x 33ms frames", Speed10x, 33 * time.Millisecond, 100, 33},
		{"30x 7ms frames", Speed30x, 7 * time.Millisecond, 1000, 210},
		{"120x 1ms frames", Speed120x, time.Millisecond, 999, 119},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, sched, rec := newManualClock(t, WithSpeed(tt.speed))
			c.Start()
			for i := 0; i < tt.ticks; i++ {
				sched.Fire(tt.delta)
			}

			assert.Equal(t, tt.want, c.Elapsed())
			values := rec.got()
			for i := 1; i < len(values); i++ {
				assert.Greater(t, values[i], values[i-1], "notifications strictly increase")
			}
		})
	}
}

func TestReset_IgnoresSeed(t *testing.T) {
	t.Parallel()

	c, sched, rec := newManualClock(t, WithSeed(10))
	assert.Equal(t, int64(10), c.Elapsed())

	c.Start()
	sched.Fire(time.Second)
	require.Equal(t, int64(11), c.Elapsed())

	c.Reset()

	assert.Equal(t, int64(0), c.Elapsed())
	assert.True(t, c.Running(), "reset leaves the running flag alone")
	assert.Equal(t, []int64{11, 0}, rec.got())
}

func TestReset_SeededClockNotifiesZero(t *testing.T) {
	t.Parallel()

	c, _, rec := newManualClock(t, WithSeed(10))

	c.Reset()

	assert.Equal(t, []int64{0}, rec.got())
}

func TestReset_AlreadyZeroNeverNotifies(t *testing.T) {
	t.Parallel()

	c, _, rec := newManualClock(t)

	c.Reset()
	c.Reset()

	assert.Equal(t, int64(0), c.Elapsed())
	assert.Empty(t, rec.got())
}

func TestReset_DiscardsFraction(t *testing.T) {
	t.Parallel()

	c, sched, _ := newManualClock(t)
	c.Start()
	sched.Fire(1500 * time.Millisecond)
	require.Equal(t, int64(1), c.Elapsed())

	c.Reset()
	sched.Fire(700 * time.Millisecond)

	assert.Equal(t, int64(0), c.Elapsed(), "the carried 500ms is dropped by reset")
}

func TestPause_DiscardsFractionAndCancelsScheduler(t *testing.T) {
	t.Parallel()

	c, sched, rec := newManualClock(t)
	c.Start()
	sched.Fire(900 * time.Millisecond)

	c.Pause()
	assert.False(t, c.Running())
	assert.False(t, sched.Active())
	assert.False(t, sched.Fire(time.Second), "no run after pause")

	c.Start()
	sched.Fire(200 * time.Millisecond)

	assert.Equal(t, int64(0), c.Elapsed(), "resume accumulates from zero")
	assert.Empty(t, rec.got())
}

func TestPause_WhenPausedIsNoop(t *testing.T) {
	t.Parallel()

	sched := &recordingScheduler{}
	c := New(WithScheduler(sched))

	c.Pause()

	assert.Equal(t, 0, sched.cancels)
}

func TestStart_Idempotent(t *testing.T) {
	t.Parallel()

	c, sched, _ := newManualClock(t)

	c.Start()
	c.Start()

	assert.Equal(t, 1, sched.Starts())
}

func TestToggle(t *testing.T) {
	t.Parallel()

	c, sched, _ := newManualClock(t)

	c.Toggle()
	assert.True(t, c.Running())
	assert.True(t, sched.Active())

	c.Toggle()
	assert.False(t, c.Running())
	assert.False(t, sched.Active())
}

func TestSetSpeed(t *testing.T) {
	t.Parallel()

	c, _, _ := newManualClock(t)

	c.SetSpeed(Speed30x)
	assert.Equal(t, Speed30x, c.Speed())

	c.SetSpeed(Speed(45))
	assert.Equal(t, Speed30x, c.Speed(), "unsupported speeds are ignored")

	c.SetSpeed(0)
	assert.Equal(t, Speed30x, c.Speed())
}

func TestIncreaseDecreaseSpeed_Clamped(t *testing.T) {
	t.Parallel()

	c, _, _ := newManualClock(t)

	c.DecreaseSpeed()
	assert.Equal(t, Speed1x, c.Speed(), "decrease at 1x is a no-op")

	want := []Speed{Speed10x, Speed30x, Speed60x, Speed120x, Speed120x}
	for _, w := range want {
		c.IncreaseSpeed()
		assert.Equal(t, w, c.Speed())
	}

	for _, w := range []Speed{Speed60x, Speed30x, Speed10x, Speed1x, Speed1x} {
		c.DecreaseSpeed()
		assert.Equal(t, w, c.Speed())
	}
}

func TestSpeedChangeWhileRunningAppliesToNextTick(t *testing.T) {
	t.Parallel()

	c, sched, _ := newManualClock(t)
	c.Start()

	sched.Fire(500 * time.Millisecond)
	c.SetSpeed(Speed10x)
	sched.Fire(500 * time.Millisecond)

	assert.Equal(t, int64(5), c.Elapsed(), "500ms at 1x plus 5s at 10x")
}

func TestSetStopped_PausesOnce(t *testing.T) {
	t.Parallel()

	sched := &recordingScheduler{}
	c := New(WithScheduler(sched))
	c.Start()

	c.SetStopped(true)
	assert.False(t, c.Running())
	assert.True(t, c.Stopped())
	assert.Equal(t, 1, sched.cancels)

	c.SetStopped(true)
	assert.Equal(t, 1, sched.cancels, "asserting twice is idempotent")
}

func TestSetStopped_BlocksToggleAndStart(t *testing.T) {
	t.Parallel()

	c, sched, _ := newManualClock(t)
	c.Start()
	sched.Fire(3 * time.Second)

	c.SetStopped(true)

	c.Toggle()
	assert.False(t, c.Running(), "a stopped clock cannot be toggled back on")
	c.Start()
	assert.False(t, c.Running())
	assert.Equal(t, int64(3), c.Elapsed(), "stopping keeps elapsed")

	c.SetStopped(false)
	c.Toggle()
	assert.True(t, c.Running())
}

func TestSetStopped_WhilePausedKeepsPaused(t *testing.T) {
	t.Parallel()

	c, _, _ := newManualClock(t)

	c.SetStopped(true)

	assert.False(t, c.Running())
	assert.True(t, c.Stopped())
}

func TestSetStopped_TickDuringStopIgnored(t *testing.T) {
	t.Parallel()

	c, sched, rec := newManualClock(t)
	c.Start()
	c.SetStopped(true)

	sched.FireStale(5 * time.Second)

	assert.Equal(t, int64(0), c.Elapsed())
	assert.Empty(t, rec.got())
}

func TestDispose_StaleTickIsNoop(t *testing.T) {
	t.Parallel()

	c, sched, rec := newManualClock(t)
	c.Start()
	sched.Fire(1 * time.Second)

	c.Dispose()
	assert.False(t, sched.Active())

	require.True(t, sched.FireStale(10*time.Second), "the stale callback is still invoked")

	assert.Equal(t, int64(1), c.Elapsed())
	assert.Equal(t, []int64{1}, rec.got())
}

func TestDispose_LaterCallsAreNoops(t *testing.T) {
	t.Parallel()

	c, sched, rec := newManualClock(t, WithSeed(4))
	c.Dispose()
	c.Dispose()

	c.Start()
	c.Toggle()
	c.Reset()
	c.SetSpeed(Speed60x)
	c.IncreaseSpeed()
	c.SetStopped(true)

	state := c.Snapshot()
	assert.True(t, state.Disposed)
	assert.False(t, state.Running)
	assert.False(t, state.Stopped)
	assert.Equal(t, int64(4), state.Elapsed)
	assert.Equal(t, Speed1x, state.Speed)
	assert.Equal(t, 0, sched.Starts())
	assert.Empty(t, rec.got())
}

func TestStaleRunTicksAreDropped(t *testing.T) {
	t.Parallel()

	sched := &recordingScheduler{}
	c := New(WithScheduler(sched))

	c.Start()
	c.Pause()
	c.Start()
	require.Len(t, sched.runs, 2)

	sched.runs[0](5 * time.Second)
	assert.Equal(t, int64(0), c.Elapsed(), "ticks from the first run are stale")

	sched.runs[1](2 * time.Second)
	assert.Equal(t, int64(2), c.Elapsed())
}

func TestNotifyMayReenterClock(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	var (
		c    *Clock
		seen []int64
	)
	c = New(WithScheduler(sched), WithNotify(func(v int64) {
		seen = append(seen, c.Elapsed())
		if v >= 2 {
			c.SetStopped(true)
		}
	}))
	c.Start()

	sched.Fire(time.Second)
	sched.Fire(time.Second)
	sched.Fire(time.Second)

	assert.Equal(t, []int64{1, 2}, seen)
	assert.False(t, c.Running())
}

func TestNotifyValueMayTrailElapsed(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()
	var (
		c         *Clock
		delivered []int64
	)
	c = New(WithScheduler(sched), WithNotify(func(v int64) {
		if v == 1 {
			c.Reset()
		}
		delivered = append(delivered, v)
	}))
	c.Start()

	sched.Fire(time.Second)

	assert.Equal(t, []int64{0, 1}, delivered, "the flush of 1 lands after the reset it raced")
	assert.Equal(t, int64(0), c.Elapsed())
	assert.True(t, c.Running())
}

func TestTickerScheduler_DrivesClock(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := NewTickerScheduler(fake, 10*time.Millisecond)
	rec := &recorder{}
	c := New(WithScheduler(sched), WithSpeed(Speed60x), WithNotify(rec.notify))

	c.Start()
	require.Equal(t, 1, fake.Tickers())

	fake.Advance(30 * time.Millisecond)

	require.Eventually(t, func() bool { return c.Elapsed() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []int64{1}, rec.got())

	c.Pause()
	assert.Equal(t, 0, fake.Tickers(), "pause cancels the ticker")

	c.Start()
	c.Dispose()
	assert.Equal(t, 0, fake.Tickers(), "dispose cancels the ticker")
}

func TestFixedStepScheduler_ReportsNominalInterval(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := NewFixedStepScheduler(fake, 10*time.Millisecond)
	c := New(WithScheduler(sched), WithSpeed(Speed120x))

	c.Start()
	defer c.Dispose()
	fake.Advance(10 * time.Millisecond)

	require.Eventually(t, func() bool { return c.Elapsed() == 1 }, time.Second, time.Millisecond)
}

func TestManualScheduler_FireWithoutRun(t *testing.T) {
	t.Parallel()

	sched := NewManualScheduler()

	assert.False(t, sched.Fire(time.Second))
	assert.False(t, sched.FireStale(time.Second))
}
