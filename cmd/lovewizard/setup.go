package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/lovewizard/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
	partner string
	author  string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create lovewizard configuration file",
	Long: `Create a lovewizard configuration file with sensible defaults.

By default, creates a global config at ~/.config/lovewizard/lovewizard.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVar(&setupFlags.partner, "partner", "", "Name of the person receiving the greeting")
	setupCmd.Flags().StringVar(&setupFlags.author, "author", "", "Name to sign the greeting with")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Default()
	if setupFlags.partner != "" {
		cfg.PartnerName = setupFlags.partner
	}
	if setupFlags.author != "" {
		cfg.AuthorName = setupFlags.author
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(out, "Set GEMINI_API_KEY (or api_key) to let the wizard write messages.")
	fmt.Fprintln(out, "Run 'lovewizard' to get started.")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
