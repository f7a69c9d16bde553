package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Emoji    lipgloss.Style
	Caption  lipgloss.Style
	Polaroid lipgloss.Style
	Card     lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	DotOn  lipgloss.Style
	DotOff lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	Toast lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	button := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Tertiary)).
			Italic(true),
		Body: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		Emoji: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)),
		Caption: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Italic(true),
		Polaroid: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(t.FgBright)).
			Padding(1, 2).
			Foreground(lipgloss.Color(t.FgBase)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Primary)).
			Padding(1, 3),

		ButtonNormal: button.
			Foreground(lipgloss.Color(t.FgBright)).
			Background(lipgloss.Color(t.Secondary)),
		ButtonDisabled: button.
			Foreground(lipgloss.Color(t.FgMuted)).
			Background(lipgloss.Color(t.BgSurface)),
		ButtonFocused: button.
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Primary)).
			Bold(true),

		DotOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)),
		DotOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),

		HintKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		HintDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),

		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Tertiary)).
			Padding(0, 1).
			Bold(true),
	}
}
