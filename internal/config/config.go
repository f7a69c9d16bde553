// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Photos names the image files shown on the photo reveal screens.
type Photos struct {
	Selfie string `mapstructure:"selfie" yaml:"selfie" json:"selfie"`
	Camera string `mapstructure:"camera" yaml:"camera" json:"camera"`
	Coffee string `mapstructure:"coffee" yaml:"coffee" json:"coffee"`
}

// Config holds all configuration values for lovewizard.
type Config struct {
	PartnerName        string `mapstructure:"partner_name" yaml:"partner_name" json:"partner_name"`
	AuthorName         string `mapstructure:"author_name" yaml:"author_name" json:"author_name"`
	Model              string `mapstructure:"model" yaml:"model" json:"model"`
	APIKey             string `mapstructure:"api_key" yaml:"api_key,omitempty" json:"-"`
	TapThreshold       int    `mapstructure:"tap_threshold" yaml:"tap_threshold" json:"tap_threshold"`
	AutoAdvanceDelayMS int    `mapstructure:"auto_advance_delay_ms" yaml:"auto_advance_delay_ms" json:"auto_advance_delay_ms"`
	Music              bool   `mapstructure:"music" yaml:"music" json:"music"`
	MusicURL           string `mapstructure:"music_url" yaml:"music_url" json:"music_url"`
	MusicCommand       string `mapstructure:"music_command" yaml:"music_command" json:"music_command"`
	Photos             Photos `mapstructure:"photos" yaml:"photos" json:"photos"`
	CardDir            string `mapstructure:"card_dir" yaml:"card_dir" json:"card_dir"`
	LogLevel           string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogFile            string `mapstructure:"log_file" yaml:"log_file" json:"log_file"`
}

// Defaults
const (
	DefaultPartnerName  = "bebie raerae"
	DefaultAuthorName   = "tabachuy dada"
	DefaultModel        = "gemini-3-flash-preview"
	DefaultMusicURL     = "https://files.catbox.moe/vpt03t.mp3"
	DefaultMusicCommand = "mpv --no-video --loop=inf --really-quiet"
)

// AutoAdvanceDelay returns the auto-advance delay as a duration.
func (c *Config) AutoAdvanceDelay() time.Duration {
	return time.Duration(c.AutoAdvanceDelayMS) * time.Millisecond
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		PartnerName:        DefaultPartnerName,
		AuthorName:         DefaultAuthorName,
		Model:              DefaultModel,
		TapThreshold:       7,
		AutoAdvanceDelayMS: 300,
		Music:              true,
		MusicURL:           DefaultMusicURL,
		MusicCommand:       DefaultMusicCommand,
		Photos: Photos{
			Selfie: "input_file_0.png",
			Camera: "input_file_1.png",
			Coffee: "input_file_2.png",
		},
		CardDir:  ".",
		LogLevel: "info",
		LogFile:  "",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
// (CLI flags are applied by the caller.)
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("lovewizard")

	d := Default()
	v.SetDefault("partner_name", d.PartnerName)
	v.SetDefault("author_name", d.AuthorName)
	v.SetDefault("model", d.Model)
	v.SetDefault("api_key", "")
	v.SetDefault("tap_threshold", d.TapThreshold)
	v.SetDefault("auto_advance_delay_ms", d.AutoAdvanceDelayMS)
	v.SetDefault("music", d.Music)
	v.SetDefault("music_url", d.MusicURL)
	v.SetDefault("music_command", d.MusicCommand)
	v.SetDefault("photos.selfie", d.Photos.Selfie)
	v.SetDefault("photos.camera", d.Photos.Camera)
	v.SetDefault("photos.coffee", d.Photos.Coffee)
	v.SetDefault("card_dir", d.CardDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)

	// Setup ENV binding with LOVEWIZARD_ prefix
	v.SetEnvPrefix("LOVEWIZARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool/int parsing
	bindings := map[string][]string{
		"partner_name":          {"LOVEWIZARD_PARTNER_NAME"},
		"author_name":           {"LOVEWIZARD_AUTHOR_NAME"},
		"model":                 {"LOVEWIZARD_MODEL"},
		"api_key":               {"LOVEWIZARD_API_KEY", "GEMINI_API_KEY"},
		"tap_threshold":         {"LOVEWIZARD_TAP_THRESHOLD"},
		"auto_advance_delay_ms": {"LOVEWIZARD_AUTO_ADVANCE_DELAY_MS"},
		"music":                 {"LOVEWIZARD_MUSIC"},
		"music_url":             {"LOVEWIZARD_MUSIC_URL"},
		"music_command":         {"LOVEWIZARD_MUSIC_COMMAND"},
		"card_dir":              {"LOVEWIZARD_CARD_DIR"},
		"log_level":             {"LOVEWIZARD_LOG_LEVEL"},
		"log_file":              {"LOVEWIZARD_LOG_FILE"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/lovewizard/lovewizard.yml or $XDG_CONFIG_HOME/lovewizard/lovewizard.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lovewizard", "lovewizard.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lovewizard", "lovewizard.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "lovewizard.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
