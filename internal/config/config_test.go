package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mresendiz/racha/internal/constants"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Slots.Base != constants.BaseHabitSlots {
		t.Errorf("base slots = %d, want %d", cfg.Slots.Base, constants.BaseHabitSlots)
	}
	if cfg.Reminders.PollSeconds != constants.ReminderPollSeconds {
		t.Errorf("poll seconds = %d, want %d", cfg.Reminders.PollSeconds, constants.ReminderPollSeconds)
	}
	if !cfg.Reminders.NotificationsEnabled() {
		t.Error("notifications should default to enabled")
	}
}

func TestLoadFrom_OverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
debug = true

[slots]
base = 5

[reminders]
enabled = false
poll_seconds = 60
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug should be set")
	}
	if cfg.Slots.Base != 5 {
		t.Errorf("base slots = %d, want 5", cfg.Slots.Base)
	}
	// Unset keys keep their defaults.
	if cfg.Slots.UnlockThreshold != constants.StreakUnlockThreshold {
		t.Errorf("unlock threshold = %d, want default %d", cfg.Slots.UnlockThreshold, constants.StreakUnlockThreshold)
	}
	if cfg.Reminders.NotificationsEnabled() {
		t.Error("notifications should be disabled")
	}
	if cfg.Reminders.PollSeconds != 60 {
		t.Errorf("poll seconds = %d, want 60", cfg.Reminders.PollSeconds)
	}
}

func TestLoadFrom_ClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[slots]
base = 0
unlock_threshold = -3

[reminders]
poll_seconds = 0
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Slots.Base != constants.BaseHabitSlots {
		t.Errorf("base slots = %d, want clamped default", cfg.Slots.Base)
	}
	if cfg.Slots.UnlockThreshold != constants.StreakUnlockThreshold {
		t.Errorf("unlock threshold = %d, want clamped default", cfg.Slots.UnlockThreshold)
	}
	if cfg.Reminders.PollSeconds != constants.ReminderPollSeconds {
		t.Errorf("poll seconds = %d, want clamped default", cfg.Reminders.PollSeconds)
	}
}

func TestLoadFrom_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("slots = ["), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("malformed config should fail to load")
	}
}

func TestLimits(t *testing.T) {
	cfg := Default()
	limits := cfg.Limits()
	if limits.BaseSlots != constants.BaseHabitSlots ||
		limits.ExtraSlots != constants.ExtraHabitSlots ||
		limits.UnlockThreshold != constants.StreakUnlockThreshold {
		t.Errorf("limits = %+v", limits)
	}
}
