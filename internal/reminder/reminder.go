package reminder

import (
	"fmt"
	"sort"
	"time"

	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/recurrence"
	"github.com/mresendiz/racha/internal/storage"
)

// Event is a reminder that should fire now: a habit due today whose
// reminder time has passed without a completion.
type Event struct {
	HabitID   string
	HabitName string
	Time      string
}

// Checker finds due reminders and tracks which ones already fired, so
// repeated checks within a day stay silent after the first hit.
type Checker struct {
	store storage.Provider
}

func NewChecker(store storage.Provider) *Checker {
	return &Checker{store: store}
}

// marker identifies one reminder occurrence within a day.
func marker(habitID, reminderTime string) string {
	return fmt.Sprintf("%s@%s", habitID, reminderTime)
}

// Check returns the reminders that are pending at now and records them
// as fired. A habit qualifies when it is due today, has a reminder time
// at or before now, is not completed today, and has not fired today.
func (c *Checker) Check(now time.Time) ([]Event, error) {
	habits, err := c.store.GetHabits()
	if err != nil {
		return nil, err
	}
	fired, err := c.store.GetFired()
	if err != nil {
		return nil, err
	}

	day := dateutil.Format(now)
	nowMinutes := now.Hour()*60 + now.Minute()
	firedToday := make(map[string]bool, len(fired[day]))
	for _, m := range fired[day] {
		firedToday[m] = true
	}

	var events []Event
	for _, h := range habits {
		if h.ReminderTime == "" {
			continue
		}
		rule := recurrence.ForHabit(h)
		if !rule.DueOn(now) {
			continue
		}
		if h.CompletedOn(day) {
			continue
		}

		reminderMinutes, err := parseMinutes(h.ReminderTime)
		if err != nil {
			continue
		}
		if nowMinutes < reminderMinutes {
			continue
		}
		if m := marker(h.ID, h.ReminderTime); !firedToday[m] {
			events = append(events, Event{HabitID: h.ID, HabitName: h.Name, Time: h.ReminderTime})
			firedToday[m] = true
		}
	}

	if len(events) > 0 {
		// Rewrite today's entry and drop stale days while we're at it.
		markers := make([]string, 0, len(firedToday))
		for m := range firedToday {
			markers = append(markers, m)
		}
		sort.Strings(markers)
		if err := c.store.SaveFired(storage.FiredMap{day: markers}); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func parseMinutes(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Message renders the notification text for an event.
func (e Event) Message() string {
	return fmt.Sprintf("Time for %s (%s)", e.HabitName, e.Time)
}
