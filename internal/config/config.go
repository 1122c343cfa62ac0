package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mresendiz/racha/internal/constants"
	"github.com/mresendiz/racha/internal/progress"
)

// Config holds the top-level racha configuration.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Slots     SlotsConfig     `toml:"slots"`
	Reminders RemindersConfig `toml:"reminders"`
	Debug     bool            `toml:"debug"`
}

type StorageConfig struct {
	// Path overrides the default storage location. The extension picks
	// the backend: .db for SQLite, anything else for JSON.
	Path string `toml:"path"`
}

// SlotsConfig tunes the habit slot limits and the streak threshold that
// unlocks the extra slots.
type SlotsConfig struct {
	Base            int `toml:"base"`
	Extra           int `toml:"extra"`
	UnlockThreshold int `toml:"unlock_threshold"`
}

type RemindersConfig struct {
	// Enabled controls whether the watcher sends desktop notifications.
	// Missing from config means enabled (opt-out model).
	Enabled *bool `toml:"enabled,omitempty"`

	// PollSeconds is the watcher's check interval.
	PollSeconds int `toml:"poll_seconds"`
}

// NotificationsEnabled treats a missing flag as true.
func (r RemindersConfig) NotificationsEnabled() bool {
	if r.Enabled == nil {
		return true
	}
	return *r.Enabled
}

// Limits converts the slot settings into engine limits.
func (c *Config) Limits() progress.Limits {
	return progress.Limits{
		BaseSlots:       c.Slots.Base,
		ExtraSlots:      c.Slots.Extra,
		UnlockThreshold: c.Slots.UnlockThreshold,
	}
}

// DefaultPath returns the config file location, respecting
// XDG_CONFIG_HOME.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return filepath.Join(configDir, constants.AppName, "config.toml")
}

// Load reads the config file at DefaultPath, returning defaults if it
// does not exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads a config file, filling unset sections with defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.clamp()
	return cfg, nil
}

// Save writes the config to its default location.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Slots: SlotsConfig{
			Base:            constants.BaseHabitSlots,
			Extra:           constants.ExtraHabitSlots,
			UnlockThreshold: constants.StreakUnlockThreshold,
		},
		Reminders: RemindersConfig{
			PollSeconds: constants.ReminderPollSeconds,
		},
	}
}

// clamp keeps hand-edited values inside sane bounds.
func (c *Config) clamp() {
	if c.Slots.Base < 1 {
		c.Slots.Base = constants.BaseHabitSlots
	}
	if c.Slots.Extra < 0 {
		c.Slots.Extra = constants.ExtraHabitSlots
	}
	if c.Slots.UnlockThreshold < 1 {
		c.Slots.UnlockThreshold = constants.StreakUnlockThreshold
	}
	if c.Reminders.PollSeconds < 1 {
		c.Reminders.PollSeconds = constants.ReminderPollSeconds
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
