package tui

import (
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/lovewizard/internal/tui/theme"
)

const (
	// HeartCount is the number of hearts floating behind the content.
	HeartCount = 25
	// HeartInterval is the animation frame interval.
	HeartInterval = 150 * time.Millisecond
)

var heartGlyphs = []string{"♥", "♡", "❥", "♥"}

// HeartsTickMsg advances the floating hearts by one frame.
type HeartsTickMsg struct{}

type heart struct {
	x     float64 // 0..1 of the width
	y     float64 // 0..1 of the height, 0 is the top
	speed float64 // fraction of the height per frame
	glyph string
	color string
}

// Hearts drifts hearts from the bottom of the screen to the top.
type Hearts struct {
	hearts []heart
	rng    *rand.Rand
	active bool
}

// NewHearts creates HeartCount hearts scattered over the screen. The seed
// makes the layout reproducible.
func NewHearts(seed uint64) *Hearts {
	t := theme.Current()
	h := &Hearts{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	h.hearts = make([]heart, HeartCount)
	for i := range h.hearts {
		h.hearts[i] = heart{
			x:     h.rng.Float64(),
			y:     h.rng.Float64(),
			speed: 0.01 + h.rng.Float64()*0.03,
			glyph: heartGlyphs[i%len(heartGlyphs)],
			color: theme.InterpolateColor(t.HeartFrom, t.HeartTo, float64(i)/float64(HeartCount-1)),
		}
	}
	return h
}

// Start begins the animation.
func (h *Hearts) Start() tea.Cmd {
	if h.active {
		return nil
	}
	h.active = true
	return h.tick()
}

// Stop freezes the hearts.
func (h *Hearts) Stop() {
	h.active = false
}

// Update advances one frame on HeartsTickMsg.
func (h *Hearts) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(HeartsTickMsg); !ok || !h.active {
		return nil
	}
	h.step()
	return h.tick()
}

func (h *Hearts) step() {
	for i := range h.hearts {
		hr := &h.hearts[i]
		hr.y -= hr.speed
		if hr.y < 0 {
			hr.y = 1
			hr.x = h.rng.Float64()
		}
	}
}

func (h *Hearts) tick() tea.Cmd {
	return tea.Tick(HeartInterval, func(time.Time) tea.Msg {
		return HeartsTickMsg{}
	})
}

// Draw paints the hearts into area. Call it before drawing the content so
// the content covers them.
func (h *Hearts) Draw(scr uv.Screen, area uv.Rectangle) {
	if area.Dx() <= 0 || area.Dy() <= 0 {
		return
	}
	for _, hr := range h.hearts {
		x := area.Min.X + int(hr.x*float64(area.Dx()-1))
		y := area.Min.Y + int(hr.y*float64(area.Dy()-1))
		cell := uv.Rectangle{
			Min: uv.Position{X: x, Y: y},
			Max: uv.Position{X: x + 1, Y: y + 1},
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hr.color))
		uv.NewStyledString(style.Render(hr.glyph)).Draw(scr, cell)
	}
}
