package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/lovewizard/internal/logger"
	"github.com/spf13/cobra"
)

// generateTimeout bounds a headless generation request.
const generateTimeout = 60 * time.Second

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a generated love message",
	Long: `Ask Gemini for a love message and print it without starting the wizard.

When the request fails or returns nothing, the same fallback message the
wizard would use is printed instead.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&playFlags.partner, "partner", "", "Name of the person receiving the greeting")
	generateCmd.Flags().StringVar(&playFlags.author, "author", "", "Name to sign the greeting with")
	generateCmd.Flags().StringVarP(&playFlags.model, "model", "m", "", "Gemini model used to write the message")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), generateTimeout)
	defer cancel()

	logger.Debug("Generating message with %s", cfg.Model)
	msg := newMessageSource(cfg).Generate(ctx, cfg.PartnerName, cfg.AuthorName)
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
