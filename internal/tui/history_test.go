package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/mresendiz/racha/internal/models"
)

func day(t *testing.T, key string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", key, time.Local)
	if err != nil {
		t.Fatalf("bad day key %q: %v", key, err)
	}
	return parsed
}

func TestMonthWeeks_MarchTwentyTwentyFour(t *testing.T) {
	// March 2024 starts on a Friday and has 31 days.
	weeks := monthWeeks(day(t, "2024-03-15"))

	if len(weeks) != 5 {
		t.Fatalf("got %d weeks, want 5", len(weeks))
	}
	if want := []int{0, 0, 0, 0, 1, 2, 3}; !equalWeek(weeks[0], want) {
		t.Errorf("first week = %v, want %v", weeks[0], want)
	}
	if want := []int{25, 26, 27, 28, 29, 30, 31}; !equalWeek(weeks[4], want) {
		t.Errorf("last week = %v, want %v", weeks[4], want)
	}
}

func TestMonthWeeks_CoversEveryDayOnce(t *testing.T) {
	// February 2024 is a leap month starting on a Thursday.
	weeks := monthWeeks(day(t, "2024-02-01"))

	seen := make(map[int]bool)
	for _, week := range weeks {
		if len(week) != 7 {
			t.Fatalf("week length = %d, want 7", len(week))
		}
		for _, d := range week {
			if d == 0 {
				continue
			}
			if seen[d] {
				t.Errorf("day %d appears twice", d)
			}
			seen[d] = true
		}
	}
	for d := 1; d <= 29; d++ {
		if !seen[d] {
			t.Errorf("day %d missing from layout", d)
		}
	}
}

func TestRenderMonthGrid_ShowsMonthAndWeekdays(t *testing.T) {
	now := day(t, "2024-03-15")
	m := Model{
		habits: []models.Habit{
			{
				ID:        "h1",
				Name:      "Read",
				Interval:  models.IntervalDaily,
				CreatedAt: day(t, "2024-03-01"),
				History: []models.Completion{
					{Date: "2024-03-14", Completed: true},
				},
			},
		},
	}

	out := m.renderMonthGrid(now)
	if !strings.Contains(out, "March 2024") {
		t.Errorf("grid should name the month, got %q", out)
	}
	if !strings.Contains(out, "Mo Tu We Th Fr Sa Su") {
		t.Errorf("grid should carry a weekday header, got %q", out)
	}
	if strings.Contains(out, "16") {
		t.Errorf("days after today should be blank, got %q", out)
	}
}

func equalWeek(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
