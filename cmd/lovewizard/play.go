package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/lovewizard/internal/audio"
	"github.com/mark3labs/lovewizard/internal/config"
	"github.com/mark3labs/lovewizard/internal/greeting"
	"github.com/mark3labs/lovewizard/internal/logger"
	"github.com/mark3labs/lovewizard/internal/tui"
	"github.com/mark3labs/lovewizard/internal/wizard"
	"github.com/spf13/cobra"
)

var playFlags struct {
	partner string
	author  string
	model   string
	noMusic bool
	cardDir string
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the greeting wizard",
	Long: `Run the greeting wizard in full-screen mode.

This is also what running lovewizard without a subcommand does.`,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the wizard flags; the root command shares them.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playFlags.partner, "partner", "", "Name of the person receiving the greeting")
	cmd.Flags().StringVar(&playFlags.author, "author", "", "Name to sign the greeting with")
	cmd.Flags().StringVarP(&playFlags.model, "model", "m", "", "Gemini model used to write the message")
	cmd.Flags().BoolVar(&playFlags.noMusic, "no-music", false, "Do not play background music")
	cmd.Flags().StringVar(&playFlags.cardDir, "card-dir", "", "Directory the final card is saved to")
}

// loadConfig loads configuration, applies flags and configures logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("partner") {
		cfg.PartnerName = playFlags.partner
	}
	if flags.Changed("author") {
		cfg.AuthorName = playFlags.author
	}
	if flags.Changed("model") {
		cfg.Model = playFlags.model
	}
	if flags.Changed("no-music") {
		cfg.Music = !playFlags.noMusic
	}
	if flags.Changed("card-dir") {
		cfg.CardDir = playFlags.cardDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	if !config.Exists() {
		logger.Info("No config file found, using defaults. Run 'lovewizard setup' to create one.")
	}
	return cfg, nil
}

func newMessageSource(cfg *config.Config) *greeting.Adapter {
	model := greeting.NewGeminiModel(cfg.APIKey, cfg.Model)
	logger.Debug("Greeting model: %s", model.Name())
	return greeting.NewAdapter(model)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	player := audio.NewPlayer(cfg.MusicCommand, cfg.MusicURL, audio.WithMuted(!cfg.Music))
	if !player.Enabled() {
		logger.Debug("No music command configured")
	}

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting wizard for %s", cfg.PartnerName)
	return tui.Run(ctx, tui.Options{
		Wizard: wizard.Options{
			TapThreshold:     cfg.TapThreshold,
			AutoAdvanceDelay: cfg.AutoAdvanceDelay(),
			PartnerName:      cfg.PartnerName,
			AuthorName:       cfg.AuthorName,
			Source:           newMessageSource(cfg),
		},
		Player:    player,
		Photos:    cfg.Photos,
		CardDir:   cfg.CardDir,
		HeartSeed: uint64(time.Now().UnixNano()),
	})
}
