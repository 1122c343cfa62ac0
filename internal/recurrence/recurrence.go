package recurrence

import (
	"time"

	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/models"
)

// Rule resolves the due dates of a habit from its interval and creation
// date. All methods are pure functions over local calendar days; a habit
// is never due before its own creation date, for any interval.
type Rule struct {
	interval models.Interval
	anchor   time.Time // creation date at local midnight
}

// New builds a rule from an interval and the habit's creation timestamp.
// Unknown intervals behave as daily, matching the normalization default.
func New(interval models.Interval, createdAt time.Time) Rule {
	if !interval.Valid() {
		interval = models.IntervalDaily
	}
	return Rule{interval: interval, anchor: dateutil.Midnight(createdAt)}
}

// ForHabit builds the rule for a habit record.
func ForHabit(h models.Habit) Rule {
	return New(h.Interval, h.CreatedAt)
}

// MostRecentDueDate returns the latest due date on or before ref.
// The second return is false when ref precedes the creation date.
func (r Rule) MostRecentDueDate(ref time.Time) (time.Time, bool) {
	ref = dateutil.Midnight(ref)
	if ref.Before(r.anchor) {
		return time.Time{}, false
	}

	switch r.interval {
	case models.IntervalWeekly:
		delta := (int(ref.Weekday()) - int(r.anchor.Weekday()) + 7) % 7
		due := dateutil.AddDays(ref, -delta)
		if due.Before(r.anchor) {
			return time.Time{}, false
		}
		return due, true
	case models.IntervalMonthly:
		due := r.dueInMonth(ref)
		if due.After(ref) {
			due = r.dueInMonth(lastOfPreviousMonth(ref))
		}
		if due.Before(r.anchor) {
			return time.Time{}, false
		}
		return due, true
	default:
		return ref, true
	}
}

// PreviousDueDate returns the due date immediately before date.
// The second return is false when that date would precede creation.
func (r Rule) PreviousDueDate(date time.Time) (time.Time, bool) {
	date = dateutil.Midnight(date)

	var prev time.Time
	switch r.interval {
	case models.IntervalWeekly:
		prev = dateutil.AddDays(date, -7)
	case models.IntervalMonthly:
		prev = r.dueInMonth(lastOfPreviousMonth(date))
	default:
		prev = dateutil.AddDays(date, -1)
	}

	if prev.Before(r.anchor) {
		return time.Time{}, false
	}
	return prev, true
}

// NextDueDate returns the due date immediately after date. Going forward
// there is no lower bound to check, so it is always defined.
func (r Rule) NextDueDate(date time.Time) time.Time {
	date = dateutil.Midnight(date)

	switch r.interval {
	case models.IntervalWeekly:
		delta := (int(r.anchor.Weekday()) - int(date.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return dateutil.AddDays(date, delta)
	case models.IntervalMonthly:
		if due := r.dueInMonth(date); due.After(date) {
			return due
		}
		return r.dueInMonth(firstOfNextMonth(date))
	default:
		return dateutil.AddDays(date, 1)
	}
}

// DueOn reports whether date itself is a due date.
func (r Rule) DueOn(date time.Time) bool {
	due, ok := r.MostRecentDueDate(date)
	return ok && due.Equal(dateutil.Midnight(date))
}

// dueInMonth returns the due date within ref's month: the creation day
// clamped to the month's length.
func (r Rule) dueInMonth(ref time.Time) time.Time {
	day := dateutil.ClampDay(r.anchor.Day(), ref)
	return time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, ref.Location())
}

func lastOfPreviousMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -1)
}

func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}
