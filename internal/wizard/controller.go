package wizard

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/lovewizard/internal/logger"
)

const (
	// DefaultTapThreshold is the number of taps that unlocks the tease step.
	DefaultTapThreshold = 7
	// DefaultAutoAdvanceDelay leaves time for the last tap to be acknowledged.
	DefaultAutoAdvanceDelay = 300 * time.Millisecond
	// DefaultTeaseStep is the power-up screen where taps unlock progress.
	DefaultTeaseStep = StepTease3
)

// MessageSource produces a greeting for two names. Implementations must not
// fail: they return a fallback text instead of an error.
type MessageSource interface {
	Generate(ctx context.Context, partnerName, authorName string) string
}

// State is a read-only snapshot of the wizard.
type State struct {
	Step     Step
	TapCount int
	Message  string
	Loading  bool
}

// Options configures a Controller. Zero or negative values select the
// defaults; the auto-advance always waits at least DefaultAutoAdvanceDelay
// unless a positive delay is given.
type Options struct {
	TapThreshold     int
	AutoAdvanceDelay time.Duration
	TeaseStep        Step

	PartnerName string
	AuthorName  string
	Source      MessageSource

	// Clock defaults to RealClock.
	Clock Clock

	// OnChange is called after every mutation, outside the controller lock.
	// Auto-advance and generation call it from their own goroutines.
	OnChange func(State)
}

// Controller owns the wizard state. All operations are total: boundary
// moves are no-ops and no operation can leave the state invalid. It is safe
// for concurrent use.
type Controller struct {
	mu sync.Mutex

	step     Step
	taps     int
	message  string
	inflight int

	// pending is the scheduled auto-advance, nil when none. pendingID
	// identifies it so a callback that lost a race with Stop is discarded.
	pending   Timer
	pendingID uint64
	nextID    uint64

	// epoch increments on Restart; generation results from an older epoch
	// are dropped.
	epoch uint64

	opts Options
}

// New creates a controller at the first step.
func New(opts Options) *Controller {
	if opts.TapThreshold <= 0 {
		opts.TapThreshold = DefaultTapThreshold
	}
	if opts.AutoAdvanceDelay <= 0 {
		opts.AutoAdvanceDelay = DefaultAutoAdvanceDelay
	}
	if !opts.TeaseStep.Valid() || opts.TeaseStep == StepWelcome {
		opts.TeaseStep = DefaultTeaseStep
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	return &Controller{
		step: First(),
		opts: opts,
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// TapThreshold returns the configured number of taps that unlocks the tease step.
func (c *Controller) TapThreshold() int {
	return c.opts.TapThreshold
}

// TeaseStep returns the step where taps unlock progress.
func (c *Controller) TeaseStep() Step {
	return c.opts.TeaseStep
}

// AutoAdvancePending reports whether an auto-advance is scheduled.
func (c *Controller) AutoAdvancePending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Advance moves to the next step. No-op at the terminal step.
func (c *Controller) Advance() {
	c.mutate(func() {
		c.advanceLocked()
	})
}

// Retreat moves to the previous step. No-op at the initial step.
func (c *Controller) Retreat() {
	c.mutate(func() {
		prev, ok := c.step.Prev()
		if !ok {
			return
		}
		c.moveLocked(prev)
		if prev == First() {
			c.taps = 0
		}
	})
}

// RecordTap counts one tap. Only taps on the tease step can unlock progress.
func (c *Controller) RecordTap() {
	c.mutate(func() {
		c.taps++
	})
}

// SetMessage replaces the message verbatim.
func (c *Controller) SetMessage(text string) {
	c.mutate(func() {
		c.message = text
	})
}

// CanAdvanceFromGenerator reports whether the message has non-blank content.
func (c *Controller) CanAdvanceFromGenerator() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.TrimSpace(c.message) != ""
}

// Restart returns to the initial state and cancels any pending auto-advance.
func (c *Controller) Restart() {
	c.mutate(func() {
		c.moveLocked(First())
		c.taps = 0
		c.message = ""
		c.epoch++
	})
}

// RequestGeneratedMessage asks the message source for a greeting, stores it
// and advances one step. It blocks for the duration of the call; Loading is
// true meanwhile. Overlapping requests are not rejected. Without a source, or
// when the source yields blank text, only Loading changes.
func (c *Controller) RequestGeneratedMessage(ctx context.Context) State {
	var epoch uint64
	c.mutate(func() {
		c.inflight++
		epoch = c.epoch
	})

	text := c.generate(ctx)

	c.mutate(func() {
		c.inflight--
		if epoch != c.epoch {
			logger.Debug("Discarding generated message from before restart")
			return
		}
		if strings.TrimSpace(text) == "" {
			logger.Warn("No generated message available, staying on %s", c.step)
			return
		}
		c.message = text
		c.advanceLocked()
	})
	return c.State()
}

func (c *Controller) generate(ctx context.Context) string {
	if c.opts.Source == nil {
		logger.Warn("No message source configured")
		return ""
	}
	return c.opts.Source.Generate(ctx, c.opts.PartnerName, c.opts.AuthorName)
}

// mutate runs fn under the lock, re-evaluates the auto-advance rule and
// notifies the listener.
func (c *Controller) mutate(fn func()) {
	c.mu.Lock()
	fn()
	c.evaluateLocked()
	s := c.snapshotLocked()
	c.mu.Unlock()

	if c.opts.OnChange != nil {
		c.opts.OnChange(s)
	}
}

func (c *Controller) advanceLocked() {
	next, ok := c.step.Next()
	if !ok {
		return
	}
	c.moveLocked(next)
}

// moveLocked changes the current step. Any step change cancels the pending
// auto-advance so it cannot fire against a stale step.
func (c *Controller) moveLocked(to Step) {
	c.cancelPendingLocked()
	c.step = to
}

func (c *Controller) cancelPendingLocked() {
	if c.pending == nil {
		return
	}
	c.pending.Stop()
	c.pending = nil
	c.pendingID = 0
}

// evaluateLocked schedules the auto-advance when the tap threshold is met on
// the tease step. At most one is pending at a time.
func (c *Controller) evaluateLocked() {
	if c.pending != nil {
		return
	}
	if c.step != c.opts.TeaseStep || c.taps < c.opts.TapThreshold {
		return
	}
	c.nextID++
	id := c.nextID
	c.pendingID = id
	c.pending = c.opts.Clock.AfterFunc(c.opts.AutoAdvanceDelay, func() {
		c.fireAutoAdvance(id)
	})
	logger.Debug("Auto-advance scheduled after %d taps", c.taps)
}

func (c *Controller) fireAutoAdvance(id uint64) {
	c.mu.Lock()
	stale := c.pending == nil || c.pendingID != id
	c.mu.Unlock()
	if stale {
		return
	}

	c.mutate(func() {
		if c.pending == nil || c.pendingID != id {
			return
		}
		c.pending = nil
		c.pendingID = 0
		if c.step != c.opts.TeaseStep {
			return
		}
		c.advanceLocked()
		c.taps = 0
	})
}

func (c *Controller) snapshotLocked() State {
	return State{
		Step:     c.step,
		TapCount: c.taps,
		Message:  c.message,
		Loading:  c.inflight > 0,
	}
}
