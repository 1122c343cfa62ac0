package streak

import (
	"sort"
	"time"

	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/models"
	"github.com/mresendiz/racha/internal/recurrence"
)

// Current computes a habit's active streak: the number of consecutive
// due dates satisfied, walking backward from today. The most recent due
// occurrence gets a grace pass when it is not yet completed ("due today,
// not done yet" does not zero out an intact streak), but any uncompleted
// occurrence inside the run breaks it.
func Current(h models.Habit, today time.Time) int {
	rule := recurrence.ForHabit(h)

	cur, ok := rule.MostRecentDueDate(today)
	if !ok {
		return 0
	}
	if !h.CompletedOn(dateutil.Format(cur)) {
		// In-progress occurrence; start counting from the prior one.
		cur, ok = rule.PreviousDueDate(cur)
	}

	count := 0
	for ok && h.CompletedOn(dateutil.Format(cur)) {
		count++
		cur, ok = rule.PreviousDueDate(cur)
	}
	return count
}

// Best computes the longest run of consecutive due-date completions in
// the habit's history. The caller is responsible for flooring the
// persisted value at its previous record; this stays a pure recompute.
func Best(h models.Habit) int {
	dates := h.CompletedDates()
	if len(dates) == 0 {
		return 0
	}
	sort.Strings(dates)

	rule := recurrence.ForHabit(h)
	best, run := 1, 1
	for i := 1; i < len(dates); i++ {
		prev, cur := dates[i-1], dates[i]
		if prev == cur {
			// Duplicate dates should not occur; treat as a no-op.
			continue
		}
		if dateutil.Format(rule.NextDueDate(dateutil.ParseKey(prev))) == cur {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// LastCompleted returns the most recent completed day key, or "" when
// the habit has no completions. Day keys are zero-padded, so
// lexicographic order is chronological order.
func LastCompleted(h models.Habit) string {
	last := ""
	for _, c := range h.History {
		if c.Completed && c.Date > last {
			last = c.Date
		}
	}
	return last
}
