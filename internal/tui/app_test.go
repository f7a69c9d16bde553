package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/lovewizard/internal/tui/testfixtures"
	"github.com/mark3labs/lovewizard/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	text string
}

func (s stubSource) Generate(context.Context, string, string) string {
	return s.text
}

type testApp struct {
	*App
	player *testfixtures.MockPlayer
	clock  *testfixtures.ManualClock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	player := testfixtures.NewMockPlayer()
	clock := testfixtures.NewManualClock()
	app := NewApp(ctx, Options{
		Wizard: wizard.Options{
			PartnerName: testfixtures.FixedPartner,
			AuthorName:  testfixtures.FixedAuthor,
			Source:      stubSource{text: testfixtures.FixedMessage},
			Clock:       clock,
		},
		Player:    player,
		Photos:    testfixtures.FixedPhotos(),
		CardDir:   t.TempDir(),
		HeartSeed: testfixtures.FixedSeed,
		Now:       testfixtures.FixedNow,
	})
	app.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})
	return &testApp{App: app, player: player, clock: clock}
}

func keyEnter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func keyEsc() tea.KeyPressMsg   { return tea.KeyPressMsg{Code: tea.KeyEscape} }
func keySpace() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "} }
func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}
func keyCtrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func (a *testApp) press(msgs ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = a.Update(m)
	}
	return cmd
}

func (a *testApp) typeText(s string) {
	for _, r := range s {
		a.press(keyRune(r))
	}
}

// goTo advances from Welcome with enter presses.
func (a *testApp) goTo(t *testing.T, step wizard.Step) {
	t.Helper()
	for a.state.Step != step {
		if a.state.Step == a.ctrl.TeaseStep() {
			a.ctrl.Advance()
			a.sync()
			continue
		}
		if a.state.Step == wizard.StepGenerator {
			t.Fatalf("cannot pass the generator without a message")
		}
		a.press(keyEnter())
	}
}

// run executes cmd and any commands it batches, returning the messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func (a *testApp) render() string {
	return testfixtures.Render(a.Draw)
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, wizard.StepWelcome, app.state.Step)
	assert.NotNil(t, app.Controller())
	assert.NotNil(t, app.Init())

	out := app.render()
	assert.Contains(t, out, "Hi, Sam!")
	assert.Contains(t, out, "Your Alex has summoned the Love Wizard.")
	assert.Contains(t, out, "I'm Ready!")
}

func TestNewApp_NilPlayer(t *testing.T) {
	app := NewApp(context.Background(), Options{})
	app.Update(keyEnter())
	assert.Equal(t, wizard.StepTease1, app.state.Step)
	assert.NotPanics(t, func() { app.Update(keyRune('m')) })
}

func TestApp_AdvanceAndRetreat(t *testing.T) {
	app := newTestApp(t)

	app.press(keyEnter())
	assert.Equal(t, wizard.StepTease1, app.state.Step)
	assert.Equal(t, 1, app.player.PlayCalls(), "music starts on first advance")

	app.press(keyRune('n'))
	assert.Equal(t, wizard.StepTease2, app.state.Step)

	app.press(keyRune('b'))
	assert.Equal(t, wizard.StepTease1, app.state.Step)

	app.press(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, wizard.StepTease2, app.state.Step)

	app.press(tea.KeyPressMsg{Code: tea.KeyLeft}, keyEsc())
	assert.Equal(t, wizard.StepWelcome, app.state.Step)

	// Retreat at the first step is a no-op.
	app.press(keyEsc())
	assert.Equal(t, wizard.StepWelcome, app.state.Step)
}

func TestApp_ScreensShowCopy(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		step wizard.Step
		want []string
	}{
		{wizard.StepTease1, []string{"Wait... are you REALLY ready?"}},
		{wizard.StepTease2, []string{"First, a quick hug!", "Alex is waiting for a virtual squeeze."}},
		{wizard.StepTease3, []string{"Power up the magic!", "Tap this heart 7 times"}},
		{wizard.StepTease4, []string{"Remember our coffee dates?", "coffee.png", "Jungle Base Moments"}},
		{wizard.StepTease5, []string{"And my favorite selfie...", "selfie.png", "Us Always"}},
		{wizard.StepGenerator, []string{"Your Heart's Message", "UNLOCK MY HEART"}},
	}
	for _, tt := range tests {
		app.goTo(t, tt.step)
		out := app.render()
		for _, want := range tt.want {
			assert.Contains(t, out, want, "step %s", tt.step)
		}
	}
}

func TestApp_TapUnlock(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepTease3)

	// n and right do not skip the power-up screen.
	app.press(keyRune('n'), tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, wizard.StepTease3, app.state.Step)

	for i := 0; i < 6; i++ {
		app.press(keySpace())
	}
	assert.Equal(t, 6, app.state.TapCount)
	assert.Equal(t, 0, app.clock.Pending())

	app.press(keyEnter())
	assert.Equal(t, 7, app.state.TapCount)
	assert.True(t, app.pulse.IsActive())
	require.Equal(t, 1, app.clock.Pending())
	assert.Equal(t, wizard.DefaultAutoAdvanceDelay, app.clock.LastDelay())
	assert.Equal(t, wizard.StepTease3, app.state.Step, "advance waits for the delay")

	// The controller reports timer-driven changes through waitForChange.
	app.clock.FireAll()
	msg := app.waitForChange()()
	require.IsType(t, StateChangedMsg{}, msg)
	app.Update(msg)

	assert.Equal(t, wizard.StepTease4, app.state.Step)
	assert.Equal(t, 0, app.state.TapCount)
}

func TestApp_TapUnlockWaitsForDefaultDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := NewApp(ctx, Options{})
	for i := 0; i < 3; i++ {
		app.Update(keyEnter())
	}
	require.Equal(t, wizard.StepTease3, app.state.Step)

	start := time.Now()
	for i := 0; i < wizard.DefaultTapThreshold; i++ {
		app.Update(keySpace())
	}
	step := app.Controller().Step()
	if time.Since(start) < wizard.DefaultAutoAdvanceDelay {
		assert.Equal(t, wizard.StepTease3, step, "unlock waits for the delay")
	}

	require.Eventually(t, func() bool {
		return app.Controller().Step() == wizard.StepTease4
	}, testfixtures.DefaultWaitDuration, testfixtures.DefaultCheckInterval)
	assert.GreaterOrEqual(t, time.Since(start), wizard.DefaultAutoAdvanceDelay)
}

func TestApp_RetreatCancelsUnlock(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepTease3)
	for i := 0; i < 7; i++ {
		app.press(keySpace())
	}
	require.Equal(t, 1, app.clock.Pending())

	app.press(keyRune('b'))
	assert.Equal(t, 0, app.clock.Pending())
	app.clock.FireAll()
	assert.Equal(t, wizard.StepTease2, app.ctrl.Step())
}

func TestApp_ComposerBlocksEmptyMessage(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepGenerator)
	require.True(t, app.composer.Focused())

	app.press(keyCtrl('s'))
	assert.Equal(t, wizard.StepGenerator, app.state.Step)

	app.typeText("   ")
	app.press(keyCtrl('n'))
	assert.Equal(t, wizard.StepGenerator, app.state.Step, "whitespace does not unlock")

	// Letters that are bindings elsewhere are typed here.
	app.typeText("bnqmrs")
	assert.Equal(t, "   bnqmrs", app.ctrl.State().Message)
	assert.Equal(t, wizard.StepGenerator, app.state.Step)
	assert.False(t, app.quitting)

	app.press(keyCtrl('s'))
	assert.Equal(t, wizard.StepFinal, app.state.Step)
	assert.False(t, app.composer.Focused())
}

func TestApp_ComposerEscRetreats(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepGenerator)
	app.typeText("hi")

	app.press(keyEsc())
	assert.Equal(t, wizard.StepTease5, app.state.Step)
	assert.Equal(t, "hi", app.state.Message, "message survives back navigation")
}

func TestApp_Generate(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepGenerator)

	cmd := app.press(keyCtrl('g'))
	require.NotNil(t, cmd)
	assert.True(t, app.loading())
	assert.Contains(t, app.render(), "Consulting the wizard...")

	// A second request while loading is ignored.
	assert.Nil(t, app.press(keyCtrl('g')))

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.NotEmpty(t, batch)
	msg := batch[0]()
	require.IsType(t, GeneratedMsg{}, msg)

	app.Update(msg)
	assert.False(t, app.loading())
	assert.Equal(t, wizard.StepFinal, app.state.Step)
	assert.Equal(t, testfixtures.FixedMessage, app.state.Message)
}

func TestApp_Final(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepGenerator)
	app.typeText("Be mine")
	app.press(keyCtrl('s'))
	require.Equal(t, wizard.StepFinal, app.state.Step)

	out := app.render()
	assert.Contains(t, out, "Happy Valentine")
	assert.Contains(t, out, "Be mine")
	assert.Contains(t, out, "Forever yours, Alex")
	assert.Contains(t, out, "My World")
	assert.Contains(t, out, "Replay Our Love Story")
	assert.NotContains(t, out, "●", "progress dots are hidden on the final card")

	// enter does nothing on the last step
	app.press(keyEnter())
	assert.Equal(t, wizard.StepFinal, app.state.Step)
}

func TestApp_SaveCard(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepGenerator)
	app.typeText("Be mine")
	app.press(keyCtrl('s'))

	cmd := app.press(keyRune('s'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(CardSavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, filepath.Join(app.opts.CardDir, "valentine-for-sam.md"), msg.Path)

	data, err := os.ReadFile(msg.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "> Be mine")
	assert.Contains(t, string(data), "February 14, 2026")

	app.Update(msg)
	assert.True(t, strings.HasPrefix(app.toast.Message(), "Card saved to "))
}

func TestApp_SaveCardFailureShowsToast(t *testing.T) {
	app := newTestApp(t)
	app.Update(CardSavedMsg{Err: errors.New("disk full")})
	assert.Equal(t, "Could not save card", app.toast.Message())
}

func TestApp_Restart(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepGenerator)
	app.typeText("Be mine")
	app.press(keyCtrl('s'))

	cmd := app.press(keyRune('r'))
	assert.Equal(t, wizard.State{Step: wizard.StepWelcome}, app.state)
	assert.Equal(t, "", app.composer.Value())
	assert.Equal(t, 0, app.player.StopCalls(), "the player is stopped by a command")

	run(cmd)
	assert.Equal(t, 1, app.player.StopCalls(), "restart stops the music")
}

func TestApp_Mute(t *testing.T) {
	app := newTestApp(t)

	cmd := app.press(keyRune('m'))
	assert.NotNil(t, cmd)
	assert.True(t, app.player.Muted())
	assert.Equal(t, "Music muted", app.toast.Message())
	assert.Contains(t, app.render(), "♪ muted")

	app.goTo(t, wizard.StepGenerator)
	app.press(keyCtrl('t'))
	assert.False(t, app.player.Muted())
	assert.Equal(t, "", app.ctrl.State().Message, "ctrl+t is not typed into the composer")
}

func TestApp_Quit(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{keyRune('q'), keyCtrl('c')} {
		app := newTestApp(t)
		cmd := app.press(key)
		require.NotNil(t, cmd)
		assert.True(t, app.quitting)
		assert.Equal(t, 0, app.player.StopCalls(), "the player is stopped by a command")
		assert.Nil(t, app.hearts.Update(HeartsTickMsg{}), "hearts stop on quit")

		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, 1, app.player.StopCalls())
		assert.False(t, app.View().AltScreen)
	}
}

func TestApp_GenerateWithoutSourceKeepsMessage(t *testing.T) {
	app := NewApp(context.Background(), Options{})
	for i := 0; i < 6; i++ {
		if app.state.Step == app.Controller().TeaseStep() {
			app.Controller().Advance()
			app.sync()
			continue
		}
		app.Update(keyEnter())
	}
	require.Equal(t, wizard.StepGenerator, app.state.Step)

	batch, ok := app.generate()().(tea.BatchMsg)
	require.True(t, ok)
	app.Update(batch[0]())
	assert.Equal(t, wizard.StepGenerator, app.state.Step)
	assert.Equal(t, "", app.state.Message)
	assert.False(t, app.loading())
}

func TestApp_EditorResult(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepGenerator)

	app.Update(MessageEditedMsg{Content: "from the editor"})
	assert.Equal(t, "from the editor", app.state.Message)
	assert.Equal(t, "from the editor", app.composer.Value())

	app.Update(EditorFailedMsg{Err: errors.New("no editor")})
	assert.Equal(t, "Could not open editor", app.toast.Message())
}

func TestApp_ProgressDots(t *testing.T) {
	out := progressDots(wizard.StepTease2)
	assert.Equal(t, 3, strings.Count(out, "●"))
	assert.Equal(t, 5, strings.Count(out, "·"))
	assert.Equal(t, "", progressDots(wizard.Step(99)))
}

func TestApp_TapDots(t *testing.T) {
	out := tapDots(3, 7)
	assert.Equal(t, 3, strings.Count(out, "●"))
	assert.Equal(t, 4, strings.Count(out, "○"))

	// Extra taps never overflow the row.
	out = tapDots(9, 7)
	assert.Equal(t, 7, strings.Count(out, "●"))
}

func TestApp_WaitForChangeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	app := NewApp(ctx, Options{})
	cancel()
	assert.Nil(t, app.waitForChange()())
}

func TestApp_GoldenWelcome(t *testing.T) {
	app := newTestApp(t)
	testfixtures.CompareRendered(t, testfixtures.GoldenPath("welcome.golden"), app.Draw)
}

func TestApp_GoldenFinal(t *testing.T) {
	app := newTestApp(t)
	app.goTo(t, wizard.StepGenerator)
	app.typeText("Be mine")
	app.press(keyCtrl('s'))
	require.Equal(t, wizard.StepFinal, app.state.Step)

	testfixtures.CompareRendered(t, testfixtures.GoldenPath("final.golden"), app.Draw)
}
