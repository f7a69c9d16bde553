// Package audio plays the background track with an external command.
package audio

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/lovewizard/internal/logger"
)

// URLPlaceholder is replaced by the quoted track URL in the command. When the
// command has no placeholder the URL is appended.
const URLPlaceholder = "{{url}}"

// Runner runs command until it exits or ctx is canceled.
type Runner func(ctx context.Context, command string) error

// ShellRunner runs command via sh -c.
func ShellRunner(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.WaitDelay = time.Second
	return cmd.Run()
}

// Player loops one track in the background. Playback starts once, the first
// time Play is called, and survives step changes until Stop. A muted player
// remembers that playback was requested and resumes on unmute.
type Player struct {
	mu sync.Mutex

	command string
	run     Runner

	requested bool
	muted     bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// Option configures a Player.
type Option func(*Player)

// WithRunner replaces ShellRunner.
func WithRunner(r Runner) Option {
	return func(p *Player) {
		p.run = r
	}
}

// WithMuted starts the player muted.
func WithMuted(muted bool) Option {
	return func(p *Player) {
		p.muted = muted
	}
}

// NewPlayer creates a player for url. An empty command or url disables playback.
func NewPlayer(command, url string, opts ...Option) *Player {
	p := &Player{
		command: expandCommand(command, url),
		run:     ShellRunner,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Enabled reports whether the player has something to play.
func (p *Player) Enabled() bool {
	return p.command != ""
}

// Play starts playback if it is not already running. Repeated calls are no-ops.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requested = true
	p.startLocked()
}

// Stop halts playback and forgets the request; the next Play starts over.
func (p *Player) Stop() {
	p.mu.Lock()
	p.requested = false
	done := p.stopLocked()
	p.mu.Unlock()
	wait(done)
}

// SetMuted silences or resumes playback.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	if !muted {
		p.startLocked()
		p.mu.Unlock()
		return
	}
	done := p.stopLocked()
	p.mu.Unlock()
	wait(done)
}

// ToggleMute flips the mute state and returns the new value.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	muted := !p.muted
	p.mu.Unlock()
	p.SetMuted(muted)
	return muted
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Playing reports whether the command is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done != nil
}

func (p *Player) startLocked() {
	if !p.Enabled() || !p.requested || p.muted || p.done != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	logger.Debug("Starting music: %s", p.command)
	go func() {
		defer close(done)
		err := p.run(ctx, p.command)
		if err != nil && !errors.Is(ctx.Err(), context.Canceled) {
			// Playback is decorative; the wizard keeps going without it.
			logger.Warn("Music command failed: %v", err)
		}

		p.mu.Lock()
		if p.done == done {
			p.cancel = nil
			p.done = nil
		}
		p.mu.Unlock()
		cancel()
	}()
}

// stopLocked cancels the running command and returns a channel that closes
// once it has exited.
func (p *Player) stopLocked() chan struct{} {
	if p.done == nil {
		return nil
	}
	done := p.done
	p.cancel()
	p.cancel = nil
	p.done = nil
	logger.Debug("Music stopped")
	return done
}

func wait(done chan struct{}) {
	if done != nil {
		<-done
	}
}

// expandCommand substitutes the quoted url into command.
func expandCommand(command, url string) string {
	command = strings.TrimSpace(command)
	if command == "" || url == "" {
		return ""
	}
	quoted := shellQuote(url)
	if strings.Contains(command, URLPlaceholder) {
		return strings.ReplaceAll(command, URLPlaceholder, quoted)
	}
	return command + " " + quoted
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
