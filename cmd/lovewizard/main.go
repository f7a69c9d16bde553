package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/lovewizard/internal/logger"
	"github.com/mark3labs/lovewizard/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█   █▀█ █ █ █▀▀ █ █ █ █ ▀█ ▄▀█ █▀█ █▀▄"
	logoText2 = "█▄▄ █▄█ ▀▄▀ ██▄ ▀▄▀▄▀ █ █▄ █▀█ █▀▄ █▄▀"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lovewizard",
	Short: "A Valentine's greeting wizard for your terminal",
	RunE:  runPlay,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewRose()
	line1 := theme.ApplyGradient(logoText1, t.HeartFrom, t.HeartTo)
	line2 := theme.ApplyGradient(logoText2, t.HeartFrom, t.HeartTo)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

lovewizard walks your partner through a short sequence of screens: a welcome,
a few playful teases, a tap-to-unlock heart, two photo reveals and a message
composer. The message can be written by hand or by Gemini. The last screen
shows the finished card, which can be saved as Markdown.`

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(setupCmd)
}
