package streak

import (
	"testing"

	"github.com/mresendiz/racha/internal/models"
)

func TestDayCompleted_AllDueDone(t *testing.T) {
	habits := []models.Habit{
		dailyHabit("2024-05-01", "2024-05-02"),
		dailyHabit("2024-05-01", "2024-05-02"),
	}

	if !DayCompleted(habits, day("2024-05-02")) {
		t.Error("expected day to be fully completed")
	}
}

func TestDayCompleted_PartialIsNotCompleted(t *testing.T) {
	habits := []models.Habit{
		dailyHabit("2024-05-01", "2024-05-02"),
		dailyHabit("2024-05-01"), // not done
	}

	if DayCompleted(habits, day("2024-05-02")) {
		t.Error("one incomplete due habit should fail the day")
	}
}

func TestDayCompleted_NoDueHabitsIsNotCompleted(t *testing.T) {
	// Weekly habit anchored on Wednesday; Thursday has nothing due.
	h := models.Habit{
		Interval:  models.IntervalWeekly,
		CreatedAt: day("2024-01-03"),
		History:   []models.Completion{{Date: "2024-01-03", Completed: true}},
	}

	if DayCompleted([]models.Habit{h}, day("2024-01-04")) {
		t.Error("a day with zero due habits must not count as completed")
	}
	if DayCompleted(nil, day("2024-01-04")) {
		t.Error("empty habit set must not count as completed")
	}
}

func TestDayCompleted_WeeklyHabitExemptOffDays(t *testing.T) {
	// Daily habit plus a Wednesday-only habit: on Thursday only the
	// daily one is due, so Thursday can be complete without the weekly.
	habits := []models.Habit{
		dailyHabit("2024-01-03", "2024-01-04"),
		{
			Interval:  models.IntervalWeekly,
			CreatedAt: day("2024-01-03"),
		},
	}

	if !DayCompleted(habits, day("2024-01-04")) {
		t.Error("off-cycle habits should not be required")
	}
}

func TestGlobal_WalksBackThroughInProgressToday(t *testing.T) {
	habits := []models.Habit{
		dailyHabit("2024-05-01", "2024-05-01", "2024-05-02", "2024-05-03"),
	}

	// Today (the 4th) not yet done: streak preserved up to yesterday.
	if got := Global(habits, day("2024-05-04")); got != 3 {
		t.Errorf("Global = %d, want 3", got)
	}
	// Today done as well: counts itself.
	habits[0].History = append(habits[0].History, models.Completion{Date: "2024-05-04", Completed: true})
	if got := Global(habits, day("2024-05-04")); got != 4 {
		t.Errorf("Global = %d, want 4", got)
	}
}

func TestGlobal_BrokenDayStopsWalk(t *testing.T) {
	habits := []models.Habit{
		dailyHabit("2024-05-01", "2024-05-01", "2024-05-03"),
	}

	if got := Global(habits, day("2024-05-03")); got != 1 {
		t.Errorf("Global = %d, want 1 (gap at the 2nd)", got)
	}
}

func TestGlobal_PartialDayDoesNotExtend(t *testing.T) {
	habits := []models.Habit{
		dailyHabit("2024-05-01", "2024-05-01", "2024-05-02"),
		dailyHabit("2024-05-01", "2024-05-01"), // missed the 2nd
	}

	if got := Global(habits, day("2024-05-02")); got != 1 {
		t.Errorf("Global = %d, want 1", got)
	}
}

func TestGlobalBest_FindsHistoricalRun(t *testing.T) {
	habits := []models.Habit{
		dailyHabit("2024-05-01",
			"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04",
			"2024-05-07", "2024-05-08",
		),
	}

	if got := GlobalBest(habits, day("2024-05-10")); got != 4 {
		t.Errorf("GlobalBest = %d, want 4", got)
	}
}

func TestGlobalBest_EmptySetIsZero(t *testing.T) {
	if got := GlobalBest(nil, day("2024-05-10")); got != 0 {
		t.Errorf("GlobalBest = %d, want 0", got)
	}
}

func TestWindow_ReverseChronological(t *testing.T) {
	habits := []models.Habit{
		dailyHabit("2024-05-01", "2024-05-09", "2024-05-10"),
	}

	win := Window(habits, day("2024-05-10"), 3)
	if len(win) != 3 {
		t.Fatalf("Window length = %d, want 3", len(win))
	}
	want := []DayStatus{
		{Date: "2024-05-10", Completed: true},
		{Date: "2024-05-09", Completed: true},
		{Date: "2024-05-08", Completed: false},
	}
	for i, w := range want {
		if win[i] != w {
			t.Errorf("Window[%d] = %+v, want %+v", i, win[i], w)
		}
	}
}
