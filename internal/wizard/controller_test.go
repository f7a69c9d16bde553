package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/lovewizard/internal/greeting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock records scheduled calls and fires them on demand.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Scheduled returns how many timers were ever created.
func (c *fakeClock) Scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Fire runs every timer that is neither stopped nor fired.
func (c *fakeClock) Fire() {
	c.mu.Lock()
	timers := append([]*fakeTimer(nil), c.timers...)
	c.mu.Unlock()

	for _, t := range timers {
		t.mu.Lock()
		run := !t.stopped && !t.fired
		t.fired = true
		t.mu.Unlock()
		if run {
			t.fn()
		}
	}
}

// last returns the most recently scheduled timer.
func (c *fakeClock) last() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[len(c.timers)-1]
}

type fakeModel struct {
	text  string
	err   error
	calls atomic.Int32
	block chan struct{}
}

func (f *fakeModel) Complete(ctx context.Context, _ string) (string, error) {
	f.calls.Inc()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func newTestController(opts Options) (*Controller, *fakeClock) {
	clock := &fakeClock{}
	opts.Clock = clock
	return New(opts), clock
}

// goTo advances a fresh controller n steps.
func goTo(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Advance()
	}
}

func tapN(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.RecordTap()
	}
}

func TestController_InitialState(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(Options{})
	assert.Equal(t, State{Step: StepWelcome}, c.State())
	assert.Equal(t, DefaultTapThreshold, c.TapThreshold())
	assert.Equal(t, StepTease3, c.TeaseStep())
}

func TestController_AdvanceRetreatIdempotence(t *testing.T) {
	t.Parallel()

	for i, step := range Steps() {
		c, _ := newTestController(Options{})
		goTo(c, i)
		require.Equal(t, step, c.Step())

		c.Advance()
		c.Retreat()
		if step == Last() {
			// Advance was a no-op, Retreat moved back.
			prev, _ := step.Prev()
			assert.Equal(t, prev, c.Step(), "from %s", step)
		} else {
			assert.Equal(t, step, c.Step(), "from %s", step)
		}
	}
}

func TestController_RetreatAtInitialIsNoOp(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(Options{})
	c.SetMessage("hello")
	before := c.State()
	c.Retreat()
	assert.Equal(t, before, c.State())
}

func TestController_AdvanceAtTerminalIsNoOp(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(Options{})
	goTo(c, Len()-1)
	c.SetMessage("forever")
	before := c.State()
	require.Equal(t, StepFinal, before.Step)

	c.Advance()
	assert.Equal(t, before, c.State())
}

func TestController_RetreatToWelcomeResetsTaps(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(Options{})
	c.Advance()
	tapN(c, 3)
	require.Equal(t, 3, c.State().TapCount)

	c.Retreat()
	assert.Equal(t, State{Step: StepWelcome}, c.State())
}

func TestController_SixTapsDoNotUnlock(t *testing.T) {
	t.Parallel()

	c, clock := newTestController(Options{})
	goTo(c, 3)
	require.Equal(t, StepTease3, c.Step())

	tapN(c, 6)
	assert.Equal(t, StepTease3, c.Step())
	assert.Equal(t, 6, c.State().TapCount)
	assert.False(t, c.AutoAdvancePending())
	assert.Equal(t, 0, clock.Scheduled())
}

func TestController_SeventhTapAutoAdvancesOnce(t *testing.T) {
	t.Parallel()

	c, clock := newTestController(Options{})
	goTo(c, 3)
	tapN(c, 7)

	// Nothing moves until the delay elapses.
	assert.Equal(t, StepTease3, c.Step())
	assert.Equal(t, 7, c.State().TapCount)
	require.True(t, c.AutoAdvancePending())
	assert.Equal(t, DefaultAutoAdvanceDelay, clock.last().delay)

	clock.Fire()
	assert.Equal(t, State{Step: StepTease4, TapCount: 0}, c.State())
	assert.False(t, c.AutoAdvancePending())

	// An eighth tap right after lands on the next step and does nothing.
	c.RecordTap()
	clock.Fire()
	assert.Equal(t, StepTease4, c.Step())
	assert.Equal(t, 1, c.State().TapCount)
	assert.Equal(t, 1, clock.Scheduled())
}

func TestController_TapsWhilePendingScheduleOnce(t *testing.T) {
	t.Parallel()

	c, clock := newTestController(Options{})
	goTo(c, 3)
	tapN(c, 10)

	assert.Equal(t, 1, clock.Scheduled())
	assert.Equal(t, 10, c.State().TapCount)

	clock.Fire()
	clock.Fire()
	assert.Equal(t, StepTease4, c.Step())
	assert.Equal(t, 0, c.State().TapCount)
}

func TestController_RetreatCancelsPendingAutoAdvance(t *testing.T) {
	t.Parallel()

	c, clock := newTestController(Options{})
	goTo(c, 3)
	tapN(c, 7)
	timer := clock.last()

	c.Retreat()
	assert.False(t, c.AutoAdvancePending())
	assert.True(t, timer.stopped)

	clock.Fire()
	assert.Equal(t, StepTease2, c.Step())

	// A callback that lost the race with Stop is discarded as well.
	timer.fn()
	assert.Equal(t, StepTease2, c.Step())
}

func TestController_RestartCancelsPendingAutoAdvance(t *testing.T) {
	t.Parallel()

	c, clock := newTestController(Options{})
	goTo(c, 3)
	tapN(c, 7)
	timer := clock.last()

	c.Restart()
	timer.fn()
	clock.Fire()

	assert.Equal(t, State{Step: StepWelcome}, c.State())
}

func TestController_ManualAdvanceCancelsPendingAutoAdvance(t *testing.T) {
	t.Parallel()

	c, clock := newTestController(Options{})
	goTo(c, 3)
	tapN(c, 7)

	c.Advance()
	clock.Fire()
	assert.Equal(t, StepTease4, c.Step())
}

func TestController_ReturningToTeaseStepWithTapsReschedules(t *testing.T) {
	t.Parallel()

	c, clock := newTestController(Options{})
	goTo(c, 3)
	tapN(c, 7)
	c.Retreat()
	require.Equal(t, 1, clock.Scheduled())

	c.Advance()
	require.Equal(t, StepTease3, c.Step())
	assert.True(t, c.AutoAdvancePending())
	assert.Equal(t, 2, clock.Scheduled())

	clock.Fire()
	assert.Equal(t, State{Step: StepTease4}, c.State())
}

func TestController_TapsElsewhereAccumulate(t *testing.T) {
	t.Parallel()

	c, clock := newTestController(Options{})
	c.Advance()
	tapN(c, 9)
	assert.Equal(t, StepTease1, c.Step())
	assert.Equal(t, 0, clock.Scheduled())

	// Arriving at the tease step with the threshold met unlocks it.
	c.Advance()
	c.Advance()
	require.Equal(t, StepTease3, c.Step())
	assert.True(t, c.AutoAdvancePending())

	clock.Fire()
	assert.Equal(t, StepTease4, c.Step())
}

func TestController_CustomThresholdAndDelay(t *testing.T) {
	t.Parallel()

	c, clock := newTestController(Options{TapThreshold: 2, AutoAdvanceDelay: time.Second, TeaseStep: StepTease1})
	c.Advance()
	tapN(c, 2)
	require.True(t, c.AutoAdvancePending())
	assert.Equal(t, time.Second, clock.last().delay)

	clock.Fire()
	assert.Equal(t, StepTease2, c.Step())
}

func TestController_InvalidOptionsFallBackToDefaults(t *testing.T) {
	t.Parallel()

	for _, opts := range []Options{
		{TapThreshold: -3, AutoAdvanceDelay: -time.Second, TeaseStep: Step(99)},
		{},
	} {
		c, clock := newTestController(opts)
		assert.Equal(t, DefaultTapThreshold, c.TapThreshold())
		assert.Equal(t, StepTease3, c.TeaseStep())

		goTo(c, 3)
		tapN(c, DefaultTapThreshold)
		require.Equal(t, 1, clock.Scheduled())
		assert.Equal(t, DefaultAutoAdvanceDelay, clock.last().delay)
		assert.Equal(t, StepTease3, c.Step())
	}
}

func TestController_CanAdvanceFromGenerator(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(Options{})
	tests := []struct {
		message string
		want    bool
	}{
		{"", false},
		{"   ", false},
		{"\n\t ", false},
		{"x", true},
		{"  I love you  ", true},
	}
	for _, tt := range tests {
		c.SetMessage(tt.message)
		assert.Equal(t, tt.want, c.CanAdvanceFromGenerator(), "message %q", tt.message)
		assert.Equal(t, tt.message, c.State().Message, "SetMessage stores verbatim")
	}
}

func TestController_RequestGeneratedMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		model *fakeModel
		want  string
	}{
		{"success", &fakeModel{text: "Be mine ✨"}, "Be mine ✨"},
		{"empty output", &fakeModel{text: ""}, greeting.EmptyFallback},
		{"failure", &fakeModel{err: errors.New("network down")}, greeting.FailureFallback("Sam", "Alex")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := newTestController(Options{
				PartnerName: "Sam",
				AuthorName:  "Alex",
				Source:      greeting.NewAdapter(tt.model),
			})
			goTo(c, 6)
			require.Equal(t, StepGenerator, c.Step())

			s := c.RequestGeneratedMessage(context.Background())
			assert.Equal(t, tt.want, s.Message)
			assert.NotEmpty(t, s.Message)
			assert.Equal(t, StepFinal, s.Step)
			assert.False(t, s.Loading)
			assert.Equal(t, int32(1), tt.model.calls.Load())
		})
	}
}

type staticSource string

func (s staticSource) Generate(context.Context, string, string) string {
	return string(s)
}

func TestController_RequestGeneratedMessageWithoutText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source MessageSource
	}{
		{"no source", nil},
		{"blank source", staticSource(" \n ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := newTestController(Options{Source: tt.source})
			goTo(c, 6)
			c.SetMessage("draft")

			s := c.RequestGeneratedMessage(context.Background())
			assert.Equal(t, State{Step: StepGenerator, Message: "draft"}, s)

			c.SetMessage("")
			s = c.RequestGeneratedMessage(context.Background())
			assert.Equal(t, State{Step: StepGenerator}, s)
			assert.False(t, c.CanAdvanceFromGenerator())
		})
	}
}

func TestController_LoadingWhilePending(t *testing.T) {
	t.Parallel()

	model := &fakeModel{text: "hi", block: make(chan struct{})}
	c, _ := newTestController(Options{Source: greeting.NewAdapter(model)})
	goTo(c, 6)

	done := make(chan State)
	go func() {
		done <- c.RequestGeneratedMessage(context.Background())
	}()

	require.Eventually(t, func() bool { return c.State().Loading }, time.Second, 5*time.Millisecond)

	// Other intents are still accepted while loading.
	c.SetMessage("typed meanwhile")
	assert.Equal(t, StepGenerator, c.Step())

	close(model.block)
	s := <-done
	assert.False(t, s.Loading)
	assert.Equal(t, "hi", s.Message)
	assert.Equal(t, StepFinal, s.Step)
}

func TestController_RestartDiscardsInFlightGeneration(t *testing.T) {
	t.Parallel()

	model := &fakeModel{text: "late", block: make(chan struct{})}
	c, _ := newTestController(Options{Source: greeting.NewAdapter(model)})
	goTo(c, 6)

	done := make(chan State)
	go func() {
		done <- c.RequestGeneratedMessage(context.Background())
	}()
	require.Eventually(t, func() bool { return c.State().Loading }, time.Second, 5*time.Millisecond)

	c.Restart()
	close(model.block)
	s := <-done

	assert.Equal(t, State{Step: StepWelcome}, s)
}

func TestController_RestartFromAnyState(t *testing.T) {
	t.Parallel()

	for i := range Steps() {
		c, _ := newTestController(Options{})
		goTo(c, i)
		c.RecordTap()
		c.SetMessage("something")

		c.Restart()
		assert.Equal(t, State{Step: StepWelcome, TapCount: 0, Message: ""}, c.State())
	}
}

func TestController_OnChange(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var seen []State
	c, clock := newTestController(Options{
		TapThreshold: 1,
		OnChange: func(s State) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, s)
		},
	})
	goTo(c, 3)
	c.RecordTap()
	clock.Fire()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, State{Step: StepTease4}, seen[len(seen)-1])
}

// TestController_EndToEnd runs the tap unlock on the real clock.
func TestController_EndToEnd(t *testing.T) {
	c := New(Options{AutoAdvanceDelay: 20 * time.Millisecond})
	assert.Equal(t, State{Step: StepWelcome}, c.State())

	c.Advance()
	assert.Equal(t, State{Step: StepTease1}, c.State())

	c.Advance()
	c.Advance()
	require.Equal(t, StepTease3, c.Step())

	tapN(c, 7)
	require.Eventually(t, func() bool {
		return c.Step() == StepTease4
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, c.State().TapCount)

	// The unlock fired exactly once.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StepTease4, c.Step())
}

// TestController_DefaultDelayOnRealClock checks that a zero-value
// controller waits before unlocking.
func TestController_DefaultDelayOnRealClock(t *testing.T) {
	c := New(Options{})
	goTo(c, 3)
	start := time.Now()
	tapN(c, DefaultTapThreshold)

	time.Sleep(DefaultAutoAdvanceDelay / 3)
	step, pending := c.Step(), c.AutoAdvancePending()
	if time.Since(start) < DefaultAutoAdvanceDelay {
		assert.Equal(t, StepTease3, step)
		assert.True(t, pending)
	}

	require.Eventually(t, func() bool {
		return c.Step() == StepTease4
	}, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), DefaultAutoAdvanceDelay)
	assert.Equal(t, 0, c.State().TapCount)
}

func TestController_RealTimerCanceledByRetreat(t *testing.T) {
	c := New(Options{AutoAdvanceDelay: 20 * time.Millisecond})
	goTo(c, 3)
	tapN(c, 7)
	c.Retreat()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StepTease2, c.Step())
}
