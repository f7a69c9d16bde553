package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/lovewizard/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Primary action
)

// Button is a single labeled action.
type Button struct {
	Label string
	State ButtonState
}

// RenderButtons renders buttons side by side, centered in width.
func RenderButtons(width int, buttons ...Button) string {
	if len(buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(buttons))
	for _, btn := range buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rendered, ""))
}

// PrimaryButton is the focused call to action for a screen.
func PrimaryButton(label string, enabled bool) Button {
	if !enabled {
		return Button{Label: label, State: ButtonDisabled}
	}
	return Button{Label: label, State: ButtonFocused}
}
