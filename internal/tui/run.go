package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// Run shows the wizard until the user quits or ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := NewApp(ctx, opts)
	p := tea.NewProgram(app, tea.WithContext(ctx))

	// Ensure the music stops regardless of how Run exits
	defer app.opts.Player.Stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}
