package storage

import "github.com/mresendiz/racha/internal/models"

// FiredMap records which reminders already fired, keyed by day with
// "habitID@HH:MM" markers, so a reminder fires at most once per day.
type FiredMap map[string][]string

// Provider is the persistence boundary of the engine. Implementations
// perform whole-set read-modify-write with no locking; callers must
// serialize mutations (single process, one interaction at a time).
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	GetHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error

	// Global streak state
	GetStreakState() (models.StreakState, error)
	SaveStreakState(models.StreakState) error

	// Reminder fired ledger
	GetFired() (FiredMap, error)
	SaveFired(FiredMap) error

	// Utils
	GetConfigPath() string
}
