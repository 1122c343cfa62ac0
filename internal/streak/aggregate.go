package streak

import (
	"time"

	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/models"
	"github.com/mresendiz/racha/internal/recurrence"
)

// DayStatus is one entry of the rolling streak history view.
type DayStatus struct {
	Date      string
	Completed bool
}

// DayCompleted reports whether every habit due on the given date was
// completed that date. A date with zero due habits is not completed;
// otherwise days with nothing scheduled would extend streaks for free.
func DayCompleted(habits []models.Habit, date time.Time) bool {
	date = dateutil.Midnight(date)
	key := dateutil.Format(date)

	due := 0
	for _, h := range habits {
		if !recurrence.ForHabit(h).DueOn(date) {
			continue
		}
		due++
		if !h.CompletedOn(key) {
			return false
		}
	}
	return due > 0
}

// Global computes the cross-habit current streak: consecutive fully
// completed days walking backward from today. An in-progress today does
// not break the streak; the walk just starts from yesterday.
func Global(habits []models.Habit, today time.Time) int {
	cursor := dateutil.Midnight(today)
	if !DayCompleted(habits, cursor) {
		cursor = dateutil.AddDays(cursor, -1)
	}

	count := 0
	for DayCompleted(habits, cursor) {
		count++
		cursor = dateutil.AddDays(cursor, -1)
	}
	return count
}

// GlobalBest scans forward from the earliest habit creation date
// through today and returns the longest run of fully completed days.
func GlobalBest(habits []models.Habit, today time.Time) int {
	today = dateutil.Midnight(today)
	start := earliestCreation(habits, today)

	best, run := 0, 0
	for cursor := start; !cursor.After(today); cursor = dateutil.AddDays(cursor, 1) {
		if DayCompleted(habits, cursor) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// Window returns the last n days in reverse-chronological order with
// their full-completion status, for the history display.
func Window(habits []models.Habit, today time.Time, n int) []DayStatus {
	today = dateutil.Midnight(today)
	out := make([]DayStatus, 0, n)
	for i := 0; i < n; i++ {
		d := dateutil.AddDays(today, -i)
		out = append(out, DayStatus{
			Date:      dateutil.Format(d),
			Completed: DayCompleted(habits, d),
		})
	}
	return out
}

func earliestCreation(habits []models.Habit, fallback time.Time) time.Time {
	earliest := fallback
	for _, h := range habits {
		if c := dateutil.Midnight(h.CreatedAt); c.Before(earliest) {
			earliest = c
		}
	}
	return earliest
}
