package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/models"
)

// rawHabit is the lenient wire shape of a persisted habit. Dates are
// kept as strings so that records written by older app versions (day
// keys, free-form ISO timestamps) survive decoding.
type rawHabit struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Interval      string              `json:"interval"`
	CreatedAt     string              `json:"created_at"`
	ReminderTime  string              `json:"reminder_time"`
	History       []models.Completion `json:"history"`
	CurrentStreak int                 `json:"current_streak"`
	BestStreak    int                 `json:"best_streak"`
	LastCompleted string              `json:"last_completed"`
}

// legacyHabit is the pre-interval storage format: just id, name and
// creation timestamp. Upgraded once at load time.
type legacyHabit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// normalizeHabits turns raw persisted records into validated Habit
// entities. Records missing id, name or creation date are dropped
// silently; a missing or unknown interval defaults to daily; history is
// de-duplicated per date (last record wins) and sorted. The changed
// return reports whether anything was repaired, so the caller can
// re-persist the cleaned set once.
func normalizeHabits(raw []rawHabit) (habits []models.Habit, changed bool) {
	habits = make([]models.Habit, 0, len(raw))

	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if r.ID == "" || name == "" || r.CreatedAt == "" {
			changed = true
			continue
		}
		if name != r.Name {
			changed = true
		}

		interval := models.Interval(r.Interval)
		if !interval.Valid() {
			interval = models.IntervalDaily
			changed = true
		}

		history, repaired := normalizeHistory(r.History)
		changed = changed || repaired

		habits = append(habits, models.Habit{
			ID:            r.ID,
			Name:          name,
			Interval:      interval,
			CreatedAt:     dateutil.ParseKey(r.CreatedAt),
			ReminderTime:  r.ReminderTime,
			History:       history,
			CurrentStreak: r.CurrentStreak,
			BestStreak:    r.BestStreak,
			LastCompleted: r.LastCompleted,
		})
	}

	if len(habits) != len(raw) {
		changed = true
	}
	return habits, changed
}

// normalizeHistory enforces the one-record-per-date invariant and date
// ordering. Records without a date are dropped.
func normalizeHistory(history []models.Completion) ([]models.Completion, bool) {
	byDate := make(map[string]bool, len(history))
	kept := 0
	for _, c := range history {
		if c.Date == "" {
			continue
		}
		if _, seen := byDate[c.Date]; !seen {
			kept++
		}
		byDate[c.Date] = c.Completed
	}

	out := make([]models.Completion, 0, kept)
	for date, completed := range byDate {
		out = append(out, models.Completion{Date: date, Completed: completed})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	changed := len(out) != len(history)
	if !changed {
		for i := range out {
			if out[i] != history[i] {
				changed = true
				break
			}
		}
	}
	return out, changed
}

// upgradeLegacy converts pre-interval records into the current shape:
// interval defaults to daily, history starts empty, streaks at zero.
func upgradeLegacy(legacy []legacyHabit) []models.Habit {
	habits := make([]models.Habit, 0, len(legacy))
	for _, l := range legacy {
		name := strings.TrimSpace(l.Name)
		if l.ID == "" || name == "" || l.CreatedAt == "" {
			continue
		}
		habits = append(habits, models.Habit{
			ID:        l.ID,
			Name:      name,
			Interval:  models.IntervalDaily,
			CreatedAt: dateutil.ParseKey(l.CreatedAt),
			History:   []models.Completion{},
		})
	}
	return habits
}

func rawFromHabit(h models.Habit) rawHabit {
	return rawHabit{
		ID:            h.ID,
		Name:          h.Name,
		Interval:      string(h.Interval),
		CreatedAt:     h.CreatedAt.Format(time.RFC3339),
		ReminderTime:  h.ReminderTime,
		History:       h.History,
		CurrentStreak: h.CurrentStreak,
		BestStreak:    h.BestStreak,
		LastCompleted: h.LastCompleted,
	}
}
