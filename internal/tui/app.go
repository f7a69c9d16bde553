// Package tui is the Bubble Tea front end of the wizard.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/lovewizard/internal/config"
	"github.com/mark3labs/lovewizard/internal/logger"
	"github.com/mark3labs/lovewizard/internal/tui/theme"
	"github.com/mark3labs/lovewizard/internal/wizard"
)

// Player is the background music the app drives.
type Player interface {
	Play()
	Stop()
	ToggleMute() bool
	Muted() bool
}

type noopPlayer struct{}

func (noopPlayer) Play()            {}
func (noopPlayer) Stop()            {}
func (noopPlayer) ToggleMute() bool { return false }
func (noopPlayer) Muted() bool      { return false }

// Options configures the App.
type Options struct {
	// Wizard configures the controller. OnChange is owned by the App.
	Wizard wizard.Options

	Player  Player
	Photos  config.Photos
	CardDir string

	// HeartSeed fixes the floating hearts layout.
	HeartSeed uint64
	// Now stamps the saved card; defaults to time.Now.
	Now func() time.Time
}

// App is the main Bubbletea model that manages the TUI application.
type App struct {
	ctx  context.Context
	opts Options

	ctrl    *wizard.Controller
	state   wizard.State
	changes chan struct{}

	// View components
	composer textarea.Model
	spinner  Spinner
	pulse    Pulse
	hearts   *Hearts
	toast    *Toast

	generating bool // a generation command was dispatched and has not returned
	width      int
	height     int
	quitting   bool
}

// NewApp creates the wizard UI and its controller.
func NewApp(ctx context.Context, opts Options) *App {
	if opts.Player == nil {
		opts.Player = noopPlayer{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	a := &App{
		ctx:     ctx,
		opts:    opts,
		changes: make(chan struct{}, 1),
		spinner: NewDefaultSpinner(),
		pulse:   NewPulse(),
		hearts:  NewHearts(opts.HeartSeed),
		toast:   NewToast(),
		width:   80,
		height:  24,
	}

	wopts := opts.Wizard
	wopts.OnChange = a.notify
	a.ctrl = wizard.New(wopts)
	a.state = a.ctrl.State()
	a.composer = newComposer(a.author())

	return a
}

func newComposer(author string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Paste your main message here, " + author + "..."
	ta.ShowLineNumbers = false
	ta.Prompt = "" // No prompt character
	ta.CharLimit = 2000
	ta.SetWidth(56)
	ta.SetHeight(6)

	styles := textarea.DefaultDarkStyles()
	styles.Cursor.Color = lipgloss.Color(theme.Current().Primary)
	ta.SetStyles(styles)
	return ta
}

// Controller exposes the wizard controller.
func (a *App) Controller() *wizard.Controller {
	return a.ctrl
}

// notify is the controller's change callback. It may run on timer and
// command goroutines, so it only signals; Update pulls the snapshot.
func (a *App) notify(wizard.State) {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// Init initializes the application and returns any initial commands.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.waitForChange(),
		a.hearts.Start(),
	)
}

// Update handles incoming messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.composer.SetWidth(min(56, max(20, msg.Width-12)))
		return a, nil

	case StateChangedMsg:
		return a, tea.Batch(a.sync(), a.waitForChange())

	case GeneratedMsg:
		a.generating = false
		return a, a.sync()

	case MessageEditedMsg:
		a.ctrl.SetMessage(msg.Content)
		return a, tea.Batch(a.sync(), a.hearts.Start())

	case EditorFailedMsg:
		logger.Warn("Editor failed: %v", msg.Err)
		return a, tea.Batch(a.toast.Show("Could not open editor"), a.hearts.Start())

	case CardSavedMsg:
		if msg.Err != nil {
			logger.Error("Failed to save card: %v", msg.Err)
			return a, a.toast.Show("Could not save card")
		}
		logger.Info("Card saved to %s", msg.Path)
		return a, a.toast.Show("Card saved to " + msg.Path)

	case HeartsTickMsg:
		return a, a.hearts.Update(msg)

	case PulseMsg:
		return a, a.pulse.Update(msg)

	case ToastDismissMsg:
		return a, a.toast.Update(msg)

	case spinner.TickMsg:
		if !a.loading() {
			return a, nil
		}
		return a, a.spinner.Update(msg)
	}

	// Cursor blink and other textarea messages
	if a.state.Step == wizard.StepGenerator {
		var cmd tea.Cmd
		a.composer, cmd = a.composer.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a.quit()
	}

	if a.state.Step == wizard.StepGenerator {
		return a.handleComposerKey(msg)
	}

	switch key {
	case "q":
		return a.quit()
	case "m":
		return a, a.toggleMute()
	case "left", "b", "esc":
		a.ctrl.Retreat()
		return a, a.sync()
	}

	switch a.state.Step {
	case a.ctrl.TeaseStep():
		if key == "space" || key == "enter" {
			return a, a.tap()
		}
		return a, nil

	case wizard.StepFinal:
		switch key {
		case "r":
			return a, a.restart()
		case "s":
			return a, a.saveCard()
		}
		return a, nil
	}

	switch key {
	case "enter", "right", "n":
		return a, a.advance()
	}
	return a, nil
}

// handleComposerKey routes keys while the message composer has focus.
// Printable keys belong to the composer.
func (a *App) handleComposerKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.ctrl.Retreat()
		return a, a.sync()
	case "ctrl+s", "ctrl+n":
		if !a.ctrl.CanAdvanceFromGenerator() {
			return a, nil
		}
		return a, a.advance()
	case "ctrl+g":
		return a, a.generate()
	case "ctrl+e":
		// The editor owns the terminal until it exits.
		a.hearts.Stop()
		return a, openEditor(a.state.Message)
	case "ctrl+t":
		return a, a.toggleMute()
	}

	var cmd tea.Cmd
	a.composer, cmd = a.composer.Update(msg)
	if v := a.composer.Value(); v != a.state.Message {
		a.ctrl.SetMessage(v)
		a.state = a.ctrl.State()
	}
	return a, cmd
}

// quit stops the music before the program exits. Stopping waits for the
// player process, so it runs as a command.
func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.hearts.Stop()
	player := a.opts.Player
	return a, func() tea.Msg {
		player.Stop()
		return tea.QuitMsg{}
	}
}

// advance moves forward and starts the music on first use.
func (a *App) advance() tea.Cmd {
	a.opts.Player.Play()
	a.ctrl.Advance()
	return a.sync()
}

func (a *App) tap() tea.Cmd {
	a.opts.Player.Play()
	a.ctrl.RecordTap()
	return tea.Batch(a.pulse.Start(), a.sync())
}

func (a *App) restart() tea.Cmd {
	a.ctrl.Restart()
	a.pulse.Stop()
	return tea.Batch(a.stopMusic(), a.sync())
}

// stopMusic stops the player off the update loop.
func (a *App) stopMusic() tea.Cmd {
	player := a.opts.Player
	return func() tea.Msg {
		player.Stop()
		return nil
	}
}

func (a *App) toggleMute() tea.Cmd {
	if a.opts.Player.ToggleMute() {
		return a.toast.Show("Music muted")
	}
	return a.toast.Show("Music on ♪")
}

// generate asks the controller for a generated message in a command
// goroutine. Ignored while a request is in flight.
func (a *App) generate() tea.Cmd {
	if a.loading() {
		return nil
	}
	a.generating = true

	ctx := a.ctx
	ctrl := a.ctrl
	return tea.Batch(
		func() tea.Msg {
			ctrl.RequestGeneratedMessage(ctx)
			return GeneratedMsg{}
		},
		a.spinner.Tick(),
	)
}

func (a *App) saveCard() tea.Cmd {
	c := a.card()
	dir := a.opts.CardDir
	return func() tea.Msg {
		path, err := c.Save(dir)
		return CardSavedMsg{Path: path, Err: err}
	}
}

func (a *App) loading() bool {
	return a.generating || a.state.Loading
}

// sync pulls the controller snapshot and aligns the composer with it.
func (a *App) sync() tea.Cmd {
	a.state = a.ctrl.State()

	if a.composer.Value() != a.state.Message {
		a.composer.SetValue(a.state.Message)
	}

	if a.state.Step != wizard.StepGenerator {
		a.composer.Blur()
		return nil
	}
	if !a.composer.Focused() {
		return a.composer.Focus()
	}
	return nil
}

// waitForChange converts controller notifications into messages.
// This command recursively calls itself to continuously receive changes.
func (a *App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.changes:
			return StateChangedMsg{}
		case <-a.ctx.Done():
			return nil
		}
	}
}

func (a *App) partner() string {
	return a.opts.Wizard.PartnerName
}

func (a *App) author() string {
	return a.opts.Wizard.AuthorName
}

func (a *App) now() time.Time {
	return a.opts.Now()
}

// View renders the application.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true // Full-screen mode

	if a.quitting {
		// Return minimal view when quitting - exit alt screen for proper terminal restoration
		view.AltScreen = false
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	a.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgBase)
	return view
}

// Draw renders all components to the screen buffer.
func (a *App) Draw(scr uv.Screen, area uv.Rectangle) {
	a.hearts.Draw(scr, area)

	// Progress dots on top, hidden on the final card
	if a.state.Step != wizard.StepFinal {
		dots := lipgloss.PlaceHorizontal(area.Dx(), lipgloss.Center, progressDots(a.state.Step))
		DrawText(scr, uv.Rectangle{
			Min: area.Min,
			Max: uv.Position{X: area.Max.X, Y: area.Min.Y + 1},
		}, dots)
	}

	// Music indicator top-right
	indicator := "♪"
	if a.opts.Player.Muted() {
		indicator = "♪ muted"
	}
	indicator = theme.Current().S().HintDesc.Render(indicator)
	iw := lipgloss.Width(indicator)
	DrawText(scr, uv.Rectangle{
		Min: uv.Position{X: area.Max.X - iw - 1, Y: area.Min.Y},
		Max: uv.Position{X: area.Max.X - 1, Y: area.Min.Y + 1},
	}, indicator)

	// Content between the dots and the hint bar
	content := uv.Rectangle{
		Min: uv.Position{X: area.Min.X, Y: area.Min.Y + 2},
		Max: uv.Position{X: area.Max.X, Y: area.Max.Y - 2},
	}
	if content.Dy() > 0 {
		DrawCentered(scr, content, a.renderScreen(area.Dx()-4))
	}

	hints := lipgloss.PlaceHorizontal(area.Dx(), lipgloss.Center, a.hintsFor(a.state.Step))
	DrawText(scr, rowAt(area, 0), hints)

	if t := a.toast.View(area.Dx()); t != "" {
		tw := lipgloss.Width(t)
		row := rowAt(area, 1)
		row.Min.X = max(area.Min.X, area.Max.X-tw-1)
		DrawText(scr, row, t)
	}
}
