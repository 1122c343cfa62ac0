package streak

import (
	"testing"
	"time"

	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/models"
)

func day(s string) time.Time {
	return dateutil.ParseKey(s)
}

func dailyHabit(created string, completed ...string) models.Habit {
	h := models.Habit{
		ID:        "h1",
		Name:      "Read",
		Interval:  models.IntervalDaily,
		CreatedAt: day(created),
	}
	for _, d := range completed {
		h.History = append(h.History, models.Completion{Date: d, Completed: true})
	}
	return h
}

func TestCurrent_GraceForToday(t *testing.T) {
	// Days 1-3 completed, today is day 4 and not yet marked.
	h := dailyHabit("2024-05-01", "2024-05-01", "2024-05-02", "2024-05-03")

	if got := Current(h, day("2024-05-04")); got != 3 {
		t.Errorf("Current = %d, want 3 (today in progress keeps the streak)", got)
	}
}

func TestCurrent_BreakInsideStreakResets(t *testing.T) {
	// Days 1-3 completed, day 4 missed, today is day 5.
	h := dailyHabit("2024-05-01", "2024-05-01", "2024-05-02", "2024-05-03")

	if got := Current(h, day("2024-05-05")); got != 0 {
		t.Errorf("Current = %d, want 0 (the gap at day 4 is a real break)", got)
	}
}

func TestCurrent_TodayCompletedCounts(t *testing.T) {
	h := dailyHabit("2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04")

	if got := Current(h, day("2024-05-04")); got != 3 {
		t.Errorf("Current = %d, want 3", got)
	}
}

func TestCurrent_BeforeCreationIsZero(t *testing.T) {
	h := dailyHabit("2024-05-10")

	if got := Current(h, day("2024-05-01")); got != 0 {
		t.Errorf("Current = %d, want 0 before creation", got)
	}
}

func TestCurrent_ExplicitlyUnmarkedBreaks(t *testing.T) {
	h := dailyHabit("2024-05-01", "2024-05-01", "2024-05-03")
	h.History = append(h.History, models.Completion{Date: "2024-05-02", Completed: false})

	if got := Current(h, day("2024-05-03")); got != 1 {
		t.Errorf("Current = %d, want 1 (unmarked day 2 breaks the run)", got)
	}
}

func TestCurrent_WeeklyCountsDueDatesOnly(t *testing.T) {
	// Wednesday anchor, completions on three consecutive Wednesdays.
	h := models.Habit{
		Interval:  models.IntervalWeekly,
		CreatedAt: day("2024-01-03"),
		History: []models.Completion{
			{Date: "2024-01-03", Completed: true},
			{Date: "2024-01-10", Completed: true},
			{Date: "2024-01-17", Completed: true},
		},
	}

	// Friday after the third Wednesday: latest due is the 17th, completed.
	if got := Current(h, day("2024-01-19")); got != 3 {
		t.Errorf("Current = %d, want 3", got)
	}
	// The following Wednesday not yet marked: grace.
	if got := Current(h, day("2024-01-24")); got != 3 {
		t.Errorf("Current = %d, want 3 via grace", got)
	}
	// A week later, the 24th missed for real.
	if got := Current(h, day("2024-01-31")); got != 0 {
		t.Errorf("Current = %d, want 0 after a skipped week", got)
	}
}

func TestBest_LongestRunWins(t *testing.T) {
	h := dailyHabit("2024-05-01",
		"2024-05-01", "2024-05-02", // run of 2
		"2024-05-10", "2024-05-11", "2024-05-12", // run of 3
		"2024-05-20",
	)

	if got := Best(h); got != 3 {
		t.Errorf("Best = %d, want 3", got)
	}
}

func TestBest_NoCompletionsIsZero(t *testing.T) {
	if got := Best(dailyHabit("2024-05-01")); got != 0 {
		t.Errorf("Best = %d, want 0", got)
	}
}

func TestBest_SingleCompletionIsOne(t *testing.T) {
	if got := Best(dailyHabit("2024-05-01", "2024-05-07")); got != 1 {
		t.Errorf("Best = %d, want 1", got)
	}
}

func TestBest_MonthlyClampedChain(t *testing.T) {
	h := models.Habit{
		Interval:  models.IntervalMonthly,
		CreatedAt: day("2024-01-31"),
		History: []models.Completion{
			{Date: "2024-01-31", Completed: true},
			{Date: "2024-02-29", Completed: true},
			{Date: "2024-03-31", Completed: true},
			{Date: "2024-04-30", Completed: true},
		},
	}

	if got := Best(h); got != 4 {
		t.Errorf("Best = %d, want 4 across clamped month ends", got)
	}
}

func TestBest_IgnoresUncompletedRecords(t *testing.T) {
	h := dailyHabit("2024-05-01", "2024-05-01", "2024-05-02")
	h.History = append(h.History, models.Completion{Date: "2024-05-03", Completed: false})

	if got := Best(h); got != 2 {
		t.Errorf("Best = %d, want 2", got)
	}
}

func TestLastCompleted(t *testing.T) {
	h := dailyHabit("2024-05-01", "2024-05-03", "2024-05-01")
	if got := LastCompleted(h); got != "2024-05-03" {
		t.Errorf("LastCompleted = %q, want 2024-05-03", got)
	}
	if got := LastCompleted(dailyHabit("2024-05-01")); got != "" {
		t.Errorf("LastCompleted = %q, want empty", got)
	}
}
