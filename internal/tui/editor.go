package tui

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/lovewizard/internal/logger"
)

// openEditor edits message in $EDITOR and reports the result as a
// MessageEditedMsg.
func openEditor(message string) tea.Cmd {
	tmpfile, err := os.CreateTemp("", "lovewizard-message-*.md")
	if err != nil {
		return editorFailed(fmt.Errorf("failed to create temp file: %w", err))
	}
	path := tmpfile.Name()

	if _, err := tmpfile.WriteString(message); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(path)
		return editorFailed(fmt.Errorf("failed to write temp file: %w", err))
	}
	if err := tmpfile.Close(); err != nil {
		_ = os.Remove(path)
		return editorFailed(fmt.Errorf("failed to close temp file: %w", err))
	}

	cmd, err := editor.Command("lovewizard", path)
	if err != nil {
		_ = os.Remove(path)
		return editorFailed(fmt.Errorf("failed to build editor command: %w", err))
	}

	logger.Debug("Opening editor on %s", path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			return EditorFailedMsg{Err: fmt.Errorf("editor exited: %w", err)}
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return EditorFailedMsg{Err: fmt.Errorf("failed to read edited message: %w", err)}
		}
		return MessageEditedMsg{Content: strings.TrimRight(string(content), "\n")}
	})
}

func editorFailed(err error) tea.Cmd {
	return func() tea.Msg {
		return EditorFailedMsg{Err: err}
	}
}
