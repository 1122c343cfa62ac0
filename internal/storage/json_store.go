package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mresendiz/racha/internal/logger"
	"github.com/mresendiz/racha/internal/models"
)

type jsonEnvelope struct {
	Version int                `json:"version"`
	Habits  json.RawMessage    `json:"habits"`
	Legacy  json.RawMessage    `json:"habits_seed,omitempty"`
	Streak  models.StreakState `json:"streak"`
	Fired   FiredMap           `json:"reminders_fired,omitempty"`
}

type JSONStore struct {
	path   string
	habits []models.Habit
	streak models.StreakState
	fired  FiredMap
	loaded bool
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.habits = []models.Habit{}
	s.streak = models.StreakState{}
	s.fired = make(FiredMap)
	s.loaded = true

	return s.save()
}

// Load reads the store and runs normalization and the one-time legacy
// upgrade. Corrupt data never fails the load: an unreadable collection
// degrades to an empty set and malformed entries are filtered out.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'racha init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	env := &jsonEnvelope{}
	if err := json.Unmarshal(data, env); err != nil {
		logger.Warn("Store file is corrupt, starting from an empty set", "path", s.path, "error", err)
		env = &jsonEnvelope{}
	}

	s.streak = env.Streak
	s.fired = env.Fired
	if s.fired == nil {
		s.fired = make(FiredMap)
	}
	s.loaded = true

	var raw []rawHabit
	dirty := false
	if len(env.Habits) > 0 {
		if err := json.Unmarshal(env.Habits, &raw); err != nil {
			logger.Warn("Habit collection is malformed, dropping it", "error", err)
			raw = nil
			dirty = true
		}
	}

	if len(raw) == 0 && len(env.Legacy) > 0 {
		// One-way upgrade from the pre-interval format.
		var legacy []legacyHabit
		if err := json.Unmarshal(env.Legacy, &legacy); err == nil && len(legacy) > 0 {
			s.habits = upgradeLegacy(legacy)
			logger.Info("Migrated legacy habit records", "count", len(s.habits))
			return s.save()
		}
		dirty = true
	}

	habits, changed := normalizeHabits(raw)
	s.habits = habits
	if changed || dirty {
		return s.save()
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	raw := make([]rawHabit, len(s.habits))
	for i, h := range s.habits {
		raw[i] = rawFromHabit(h)
	}
	habitsJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to serialize habits: %w", err)
	}

	env := jsonEnvelope{
		Version: 1,
		Habits:  habitsJSON,
		Streak:  s.streak,
		Fired:   s.fired,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetHabits() ([]models.Habit, error) {
	if !s.loaded {
		return nil, fmt.Errorf("storage not loaded")
	}
	out := make([]models.Habit, len(s.habits))
	copy(out, s.habits)
	return out, nil
}

func (s *JSONStore) SaveHabits(habits []models.Habit) error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	s.habits = make([]models.Habit, len(habits))
	copy(s.habits, habits)
	return s.save()
}

func (s *JSONStore) GetStreakState() (models.StreakState, error) {
	if !s.loaded {
		return models.StreakState{}, fmt.Errorf("storage not loaded")
	}
	return s.streak, nil
}

func (s *JSONStore) SaveStreakState(state models.StreakState) error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	s.streak = state
	return s.save()
}

func (s *JSONStore) GetFired() (FiredMap, error) {
	if !s.loaded {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.fired, nil
}

func (s *JSONStore) SaveFired(fired FiredMap) error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	s.fired = fired
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines
//     without external synchronization.
//   - Running multiple racha processes sharing the same storage path at
//     the same time is not supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
