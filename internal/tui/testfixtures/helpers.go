package testfixtures

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
)

// Initialize test environment
func init() {
	// Set Ascii profile to disable color output for consistent golden files across CI/platforms
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// Conservative timeout for Eventually checks (CI compatibility)
const (
	DefaultWaitDuration  = 2 * time.Second
	DefaultCheckInterval = 10 * time.Millisecond
)

// Flag for updating golden files (shared across all tests)
var UpdateGolden = flag.Bool("update", false, "update golden files")

// Render draws into a canonical-size screen buffer and returns the text.
//
//	out := testfixtures.Render(app.Draw)
func Render(draw func(scr uv.Screen, area uv.Rectangle)) string {
	canvas := uv.NewScreenBuffer(TestTermWidth, TestTermHeight)
	draw(canvas, canvas.Bounds())
	return canvas.Render()
}

// GoldenPath builds a path to a golden file in the testdata directory.
// Example: GoldenPath("welcome.golden") -> "testdata/welcome.golden"
func GoldenPath(filename string) string {
	return filepath.Join("testdata", filename)
}

// CompareGolden compares actual output with the golden file.
// Use -update to regenerate golden files. A missing golden file is written
// from the current output so a new screen only needs one run to record it.
func CompareGolden(t *testing.T, goldenPath, actual string) {
	t.Helper()

	expected, err := os.ReadFile(goldenPath)
	if *UpdateGolden || os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
			t.Fatalf("failed to create testdata directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(actual), 0644); err != nil {
			t.Fatalf("failed to write golden file %s: %v", goldenPath, err)
		}
		t.Logf("Wrote golden file: %s", goldenPath)
		return
	}
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", goldenPath, err)
	}

	if actual != string(expected) {
		t.Errorf("output does not match golden file %s\n\nExpected:\n%s\n\nActual:\n%s",
			goldenPath, string(expected), actual)
	}
}

// CompareRendered renders draw at the canonical size and compares the
// result with the golden file.
func CompareRendered(t *testing.T, goldenPath string, draw func(scr uv.Screen, area uv.Rectangle)) {
	t.Helper()
	CompareGolden(t, goldenPath, Render(draw))
}
