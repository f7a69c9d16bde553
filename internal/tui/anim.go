package tui

import (
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/lovewizard/internal/tui/theme"
)

// Spinner wraps bubbles spinner with convenience methods
type Spinner struct {
	model spinner.Model
}

// NewSpinner creates a new spinner with the given style
func NewSpinner(style spinner.Spinner) Spinner {
	t := theme.Current()
	s := spinner.New(
		spinner.WithSpinner(style),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))),
	)
	return Spinner{model: s}
}

// NewDefaultSpinner creates a spinner with the Points style
func NewDefaultSpinner() Spinner {
	return NewSpinner(spinner.Points)
}

// Update handles spinner tick messages
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// View renders the current spinner frame
func (s *Spinner) View() string {
	return s.model.View()
}

// Tick returns the tick command to start animation
func (s *Spinner) Tick() tea.Cmd {
	return s.model.Tick
}

// Pulse is a short fade in/out used to acknowledge a tap on the heart.
type Pulse struct {
	active   bool
	frame    int
	maxFrame int
	interval time.Duration
}

// PulseMsg is sent on each pulse tick
type PulseMsg struct{}

// NewPulse creates a new pulse animation
func NewPulse() Pulse {
	return Pulse{
		maxFrame: 3,
		interval: 60 * time.Millisecond,
	}
}

// Start begins the pulse animation. Restarting an active pulse resets it
// without scheduling a second tick chain.
func (p *Pulse) Start() tea.Cmd {
	wasActive := p.active
	p.active = true
	p.frame = 0
	if wasActive {
		return nil
	}
	return p.tick()
}

// Stop ends the pulse animation
func (p *Pulse) Stop() {
	p.active = false
	p.frame = 0
}

// Update handles pulse tick messages
func (p *Pulse) Update(msg tea.Msg) tea.Cmd {
	if !p.active {
		return nil
	}

	if _, ok := msg.(PulseMsg); ok {
		p.frame++
		if p.frame >= p.maxFrame*2 {
			// Completed full pulse cycle (fade in + fade out)
			p.Stop()
			return nil
		}
		return p.tick()
	}
	return nil
}

func (p *Pulse) tick() tea.Cmd {
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return PulseMsg{}
	})
}

// Intensity returns the current pulse intensity (0.0 to 1.0)
func (p *Pulse) Intensity() float64 {
	if !p.active {
		return 0.0
	}

	// Fade in for first half, fade out for second half
	if p.frame < p.maxFrame {
		return float64(p.frame+1) / float64(p.maxFrame)
	}
	return float64(p.maxFrame*2-p.frame) / float64(p.maxFrame)
}

// IsActive returns whether the pulse is currently animating
func (p *Pulse) IsActive() bool {
	return p.active
}

// PulseStyle applies the pulse to base.
func PulseStyle(base lipgloss.Style, intensity float64) lipgloss.Style {
	if intensity <= 0 {
		return base
	}

	t := theme.Current()
	if intensity > 0.5 {
		return base.Foreground(lipgloss.Color(t.FgBright)).Bold(true)
	}
	return base.Foreground(lipgloss.Color(t.Primary))
}
