package tui

import (
	"github.com/mark3labs/lovewizard/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyEnter = "enter"
	KeySpace = "space"
	KeyEsc   = "esc"
	KeyBack  = "←/b"
	KeyNext  = "→/n"
	KeyCtrlC = "ctrl+c"
	KeyCtrlG = "ctrl+g"
	KeyCtrlE = "ctrl+e"
	KeyCtrlS = "ctrl+s"
	KeyCtrlT = "ctrl+t"
	KeyM     = "m"
	KeyQ     = "q"
	KeyR     = "r"
	KeyS     = "s"
)

// RenderHint renders a single key-description pair.
// Example: RenderHint("enter", "next") -> "enter next"
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Pairs are separated by " . ".
// Example: RenderHintBar("enter", "next", "esc", "back")
// Returns: "enter next . esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var result string

	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += " " + s.HintSeparator.Render(".") + " "
		}
		result += RenderHint(pairs[i], pairs[i+1])
	}

	return result
}

// HintWelcome returns hints for the welcome screen.
func HintWelcome() string {
	return RenderHintBar(KeyEnter, "start", KeyM, "mute", KeyQ, "quit")
}

// HintTease returns hints for the linear tease screens.
func HintTease() string {
	return RenderHintBar(KeyEnter, "next", KeyBack, "back", KeyM, "mute", KeyQ, "quit")
}

// HintTap returns hints for the tap-to-unlock screen.
func HintTap() string {
	return RenderHintBar(KeySpace, "tap", KeyBack, "back", KeyM, "mute", KeyQ, "quit")
}

// HintGenerator returns hints for the message composer.
func HintGenerator() string {
	return RenderHintBar(KeyCtrlS, "unlock", KeyCtrlG, "wizard", KeyCtrlE, "editor", KeyEsc, "back", KeyCtrlT, "mute")
}

// HintFinal returns hints for the final card.
func HintFinal() string {
	return RenderHintBar(KeyR, "replay", KeyS, "save card", KeyM, "mute", KeyQ, "quit")
}
