package models

import "time"

// Interval is the recurrence cadence of a habit
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// Valid reports whether the interval is one of the known cadences
func (i Interval) Valid() bool {
	switch i {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return true
	}
	return false
}

// Completion records an explicit user action for a single day.
// Absence of a record for a date means "not marked", which is distinct
// from an explicit Completed=false entry.
type Completion struct {
	Date      string `json:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed"`
}

// Habit represents a recurring practice to track
type Habit struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Interval     Interval     `json:"interval"`
	CreatedAt    time.Time    `json:"created_at"`
	ReminderTime string       `json:"reminder_time,omitempty"` // HH:MM format, empty when unset
	History      []Completion `json:"history"`                 // sorted by date, at most one entry per date

	// Derived fields, recomputed on every mutation. BestStreak is
	// monotonic: the stored value never decreases even if a
	// recomputation yields less.
	CurrentStreak int    `json:"current_streak"`
	BestStreak    int    `json:"best_streak"`
	LastCompleted string `json:"last_completed,omitempty"`
}

// CompletedOn reports whether the habit has an explicit completed
// record for the given day key.
func (h Habit) CompletedOn(date string) bool {
	for _, c := range h.History {
		if c.Date == date {
			return c.Completed
		}
	}
	return false
}

// CompletedDates returns the habit's completed day keys in ascending order.
// History is kept sorted by the storage layer, so no re-sort happens here.
func (h Habit) CompletedDates() []string {
	var dates []string
	for _, c := range h.History {
		if c.Completed {
			dates = append(dates, c.Date)
		}
	}
	return dates
}
