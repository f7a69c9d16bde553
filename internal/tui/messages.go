package tui

// StateChangedMsg is sent when the controller reports a change that did not
// originate from a key press (auto-advance, generation).
type StateChangedMsg struct{}

// GeneratedMsg is sent when a generation request completes.
type GeneratedMsg struct{}

// MessageEditedMsg is sent when the external editor returns with new content.
type MessageEditedMsg struct {
	Content string
}

// EditorFailedMsg is sent when the external editor could not be run.
type EditorFailedMsg struct {
	Err error
}

// CardSavedMsg is sent after the card was written.
type CardSavedMsg struct {
	Path string
	Err  error
}
