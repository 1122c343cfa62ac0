package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mresendiz/racha/internal/logger"
	"github.com/mresendiz/racha/internal/models"
)

const schemaVersion = 1

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if database already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'racha init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}
	if version < schemaVersion {
		// Older file: schema statements are idempotent, re-run them.
		if err := s.createSchema(); err != nil {
			return fmt.Errorf("failed to upgrade schema: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			interval TEXT NOT NULL DEFAULT 'daily',
			created_at TEXT NOT NULL,
			reminder_time TEXT NOT NULL DEFAULT '',
			history TEXT NOT NULL DEFAULT '[]',
			current_streak INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			last_completed TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS streak_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			streak INTEGER NOT NULL DEFAULT 0,
			reward_claimed INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS reminders_fired (
			day TEXT NOT NULL,
			marker TEXT NOT NULL,
			PRIMARY KEY (day, marker)
		)`,
		fmt.Sprintf("PRAGMA user_version = %d", schemaVersion),
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetHabits reads and normalizes the habit set. Rows with an empty id
// or name are skipped; an unreadable history column degrades to an
// empty history rather than failing the query.
func (s *SQLiteStore) GetHabits() ([]models.Habit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT id, name, interval, created_at, reminder_time, history,
		current_streak, best_streak, last_completed FROM habits ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var raw []rawHabit
	for rows.Next() {
		var (
			r           rawHabit
			historyJSON string
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Interval, &r.CreatedAt, &r.ReminderTime,
			&historyJSON, &r.CurrentStreak, &r.BestStreak, &r.LastCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		if err := json.Unmarshal([]byte(historyJSON), &r.History); err != nil {
			logger.Warn("Habit history column is malformed, resetting it", "habit", r.ID, "error", err)
			r.History = nil
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}

	habits, _ := normalizeHabits(raw)
	return habits, nil
}

func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habits"); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO habits
		(id, name, interval, created_at, reminder_time, history, current_streak, best_streak, last_completed, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, h := range habits {
		history := h.History
		if history == nil {
			history = []models.Completion{}
		}
		historyJSON, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("failed to serialize history: %w", err)
		}
		if _, err := stmt.Exec(h.ID, h.Name, string(h.Interval), h.CreatedAt.Format(time.RFC3339),
			h.ReminderTime, string(historyJSON), h.CurrentStreak, h.BestStreak, h.LastCompleted, i); err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetStreakState() (models.StreakState, error) {
	if s.db == nil {
		return models.StreakState{}, fmt.Errorf("storage not loaded")
	}

	var (
		state     models.StreakState
		claimed   int
		updatedAt string
	)
	err := s.db.QueryRow("SELECT streak, reward_claimed, updated_at FROM streak_state WHERE id = 1").
		Scan(&state.Streak, &claimed, &updatedAt)
	if err == sql.ErrNoRows {
		return models.StreakState{}, nil
	}
	if err != nil {
		return models.StreakState{}, fmt.Errorf("failed to query streak state: %w", err)
	}

	state.RewardClaimed = claimed != 0
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		state.UpdatedAt = t
	}
	return state, nil
}

func (s *SQLiteStore) SaveStreakState(state models.StreakState) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	claimed := 0
	if state.RewardClaimed {
		claimed = 1
	}
	_, err := s.db.Exec(`INSERT INTO streak_state (id, streak, reward_claimed, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET streak = excluded.streak,
			reward_claimed = excluded.reward_claimed, updated_at = excluded.updated_at`,
		state.Streak, claimed, state.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save streak state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetFired() (FiredMap, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT day, marker FROM reminders_fired")
	if err != nil {
		return nil, fmt.Errorf("failed to query fired reminders: %w", err)
	}
	defer rows.Close()

	fired := make(FiredMap)
	for rows.Next() {
		var day, marker string
		if err := rows.Scan(&day, &marker); err != nil {
			return nil, fmt.Errorf("failed to scan fired reminder: %w", err)
		}
		fired[day] = append(fired[day], marker)
	}
	return fired, rows.Err()
}

func (s *SQLiteStore) SaveFired(fired FiredMap) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM reminders_fired"); err != nil {
		return fmt.Errorf("failed to clear fired reminders: %w", err)
	}
	for day, markers := range fired {
		for _, marker := range markers {
			if _, err := tx.Exec("INSERT OR IGNORE INTO reminders_fired (day, marker) VALUES (?, ?)", day, marker); err != nil {
				return fmt.Errorf("failed to insert fired reminder: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
