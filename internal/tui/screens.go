package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/lovewizard/internal/card"
	"github.com/mark3labs/lovewizard/internal/tui/theme"
	"github.com/mark3labs/lovewizard/internal/wizard"
)

// maxContentWidth bounds the text column on wide terminals.
const maxContentWidth = 72

// renderScreen returns the content for the current step.
func (a *App) renderScreen(width int) string {
	if width > maxContentWidth {
		width = maxContentWidth
	}

	switch a.state.Step {
	case wizard.StepWelcome:
		return a.renderWelcome(width)
	case wizard.StepTease1:
		return a.renderTease1(width)
	case wizard.StepTease2:
		return a.renderTease2(width)
	case wizard.StepTease3:
		return a.renderPowerUp(width)
	case wizard.StepTease4:
		return a.renderCoffee(width)
	case wizard.StepTease5:
		return a.renderSelfie(width)
	case wizard.StepGenerator:
		return a.renderGenerator(width)
	case wizard.StepFinal:
		return a.renderFinal(width)
	}
	return ""
}

// screen stacks the common parts of a step: an emoji, a title, a line of
// copy and whatever extra blocks the step needs.
func screen(width int, emoji, title, body string, blocks ...string) string {
	s := theme.Current().S()

	parts := make([]string, 0, 4+len(blocks))
	if emoji != "" {
		parts = append(parts, s.Emoji.Render(emoji), "")
	}
	parts = append(parts, s.Title.Render(title))
	if body != "" {
		parts = append(parts, "", s.Body.Width(width).Align(lipgloss.Center).Render(body))
	}
	for _, b := range blocks {
		parts = append(parts, "", b)
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (a *App) renderWelcome(width int) string {
	return screen(width, "🪄 ✨",
		fmt.Sprintf("Hi, %s!", a.partner()),
		fmt.Sprintf("Your %s has summoned the Love Wizard.\nAre you ready for some magic?", a.author()),
		RenderButtons(width, PrimaryButton("I'm Ready! ❤️", true)),
	)
}

func (a *App) renderTease1(width int) string {
	return screen(width, "💘",
		"Wait... are you REALLY ready?",
		"The wizard says your heart needs to be 100% full of love before we proceed.",
		RenderButtons(width, PrimaryButton("It's 1000% full! Next!", true)),
	)
}

func (a *App) renderTease2(width int) string {
	return screen(width, "",
		"First, a quick hug!",
		fmt.Sprintf("%s is waiting for a virtual squeeze. Tap the hug button to send one!", a.author()),
		RenderButtons(width, PrimaryButton("🫂 SEND BIG HUG", true)),
	)
}

func (a *App) renderPowerUp(width int) string {
	s := theme.Current().S()
	threshold := a.ctrl.TapThreshold()

	heart := PulseStyle(s.Emoji, a.pulse.Intensity()).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Current().Primary)).
		Render("❤️")

	return screen(width, "",
		"Power up the magic!",
		fmt.Sprintf("Tap this heart %d times to unlock our story...", threshold),
		heart,
		tapDots(a.state.TapCount, threshold),
	)
}

// tapDots shows one dot per required tap, filled for taps so far.
func tapDots(taps, threshold int) string {
	s := theme.Current().S()
	dots := make([]string, threshold)
	for i := range dots {
		if i < taps {
			dots[i] = s.DotOn.Render("●")
		} else {
			dots[i] = s.DotOff.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

func (a *App) renderCoffee(width int) string {
	return screen(width, "",
		"Remember our coffee dates?",
		"The way you look when you're enjoying your drink is my favorite view.",
		polaroid("☕", a.opts.Photos.Coffee, "Jungle Base Moments"),
		RenderButtons(width, PrimaryButton("I remember! Next!", true)),
	)
}

func (a *App) renderSelfie(width int) string {
	return screen(width, "",
		"And my favorite selfie...",
		fmt.Sprintf("Look at those smiles. This is why I love you so much, %s.", a.partner()),
		polaroid("📸", a.opts.Photos.Selfie, "Us Always ✨"),
		RenderButtons(width, PrimaryButton("The Final Reveal...", true)),
	)
}

// polaroid frames a photo reference with its caption. Terminals cannot show
// the image itself, so the frame names the file.
func polaroid(icon, path, caption string) string {
	s := theme.Current().S()
	inner := icon
	if path != "" {
		inner = icon + "  " + filepath.Base(path)
	}
	frame := s.Polaroid.Render(inner)
	return lipgloss.JoinVertical(lipgloss.Center, frame, s.Caption.Render(caption))
}

func (a *App) renderGenerator(width int) string {
	s := theme.Current().S()

	assist := s.HintDesc.Render("✨ Or let the Wizard help write it (" + KeyCtrlG + ")")
	if a.loading() {
		assist = a.spinner.View() + " " + s.Subtitle.Render("Consulting the wizard...")
	}

	return screen(width, "💌",
		"Your Heart's Message",
		s.Subtitle.Render(fmt.Sprintf("\"To my %s, from your %s...\"", a.partner(), a.author())),
		a.composer.View(),
		assist,
		RenderButtons(width,
			Button{Label: "Back", State: ButtonNormal},
			PrimaryButton("UNLOCK MY HEART", a.ctrl.CanAdvanceFromGenerator()),
		),
	)
}

func (a *App) renderFinal(width int) string {
	s := theme.Current().S()
	c := a.card()

	collage := lipgloss.JoinHorizontal(lipgloss.Top,
		polaroid("🌎", "", c.Photos[0].Caption),
		"  ",
		polaroid("📸", "", c.Photos[1].Caption),
		"  ",
		polaroid("☕", "", c.Photos[2].Caption),
	)

	// The collage already shows the photos.
	c.Photos = nil
	body := s.Card.Width(width).Render(renderMarkdown(c.Markdown(), width-8))

	return lipgloss.JoinVertical(lipgloss.Center,
		collage,
		"",
		body,
		"",
		RenderButtons(width, Button{Label: "Replay Our Love Story ✨", State: ButtonNormal}),
	)
}

// card builds the greeting card from the current state.
func (a *App) card() card.Card {
	return card.Card{
		PartnerName: a.partner(),
		AuthorName:  a.author(),
		Message:     a.state.Message,
		Photos:      card.DefaultPhotos(a.opts.Photos.Selfie, a.opts.Photos.Camera, a.opts.Photos.Coffee),
		CreatedAt:   a.now(),
	}
}

// progressDots renders one dot per step, filled up to the current one.
func progressDots(step wizard.Step) string {
	s := theme.Current().S()
	idx, err := wizard.IndexOf(step)
	if err != nil {
		return ""
	}

	dots := make([]string, wizard.Len())
	for i := range dots {
		if i <= idx {
			dots[i] = s.DotOn.Render("●")
		} else {
			dots[i] = s.DotOff.Render("·")
		}
	}
	return strings.Join(dots, " ")
}

// hintsFor returns the hint bar for step.
func (a *App) hintsFor(step wizard.Step) string {
	switch {
	case step == wizard.StepWelcome:
		return HintWelcome()
	case step == a.ctrl.TeaseStep():
		return HintTap()
	case step == wizard.StepGenerator:
		return HintGenerator()
	case step == wizard.StepFinal:
		return HintFinal()
	}
	return HintTease()
}
