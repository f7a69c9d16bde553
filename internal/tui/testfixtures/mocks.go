// Package testfixtures provides mock implementations and test utilities for TUI testing.
//
// This file contains mock implementations for the App's dependencies:
//   - MockPlayer: records music playback requests
//   - ManualClock: a wizard.Clock whose timers fire only when told to
//
// All mocks are thread-safe and provide verification methods for assertions in tests.
//
// Example usage:
//
//	func TestMyComponent(t *testing.T) {
//	    player := testfixtures.NewMockPlayer()
//	    clock := testfixtures.NewManualClock()
//
//	    // Use mocks in your test...
//	    clock.FireAll()
//	    require.Equal(t, 1, player.PlayCalls())
//	}
package testfixtures

import (
	"sync"
	"time"

	"github.com/mark3labs/lovewizard/internal/wizard"
)

// MockPlayer is a mock implementation of the TUI's music player.
type MockPlayer struct {
	mu sync.RWMutex

	playCalls int
	stopCalls int
	muted     bool
}

// NewMockPlayer creates a new MockPlayer.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play records a play request.
func (m *MockPlayer) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
}

// Stop records a stop request.
func (m *MockPlayer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
}

// ToggleMute flips the muted flag and returns the new value.
func (m *MockPlayer) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	return m.muted
}

// Muted returns the muted flag.
func (m *MockPlayer) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// PlayCalls returns how many times Play was called.
func (m *MockPlayer) PlayCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.playCalls
}

// StopCalls returns how many times Stop was called.
func (m *MockPlayer) StopCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stopCalls
}

// ManualClock is a wizard.Clock whose timers fire only on FireAll.
type ManualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManualClock creates a new ManualClock.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// AfterFunc records f; it runs on the next FireAll unless stopped.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) wizard.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// FireAll runs every pending timer synchronously and returns how many ran.
func (c *ManualClock) FireAll() int {
	c.mu.Lock()
	timers := append([]*manualTimer(nil), c.timers...)
	c.mu.Unlock()

	ran := 0
	for _, t := range timers {
		t.mu.Lock()
		run := !t.stopped && !t.fired
		t.fired = true
		t.mu.Unlock()
		if run {
			t.fn()
			ran++
		}
	}
	return ran
}

// Pending returns the number of timers that have neither fired nor stopped.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

// LastDelay returns the delay of the most recent timer, or 0.
func (c *ManualClock) LastDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.timers) == 0 {
		return 0
	}
	return c.timers[len(c.timers)-1].delay
}
