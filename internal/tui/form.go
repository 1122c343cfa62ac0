package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mresendiz/racha/internal/habits"
	"github.com/mresendiz/racha/internal/models"
)

// HabitFormModel backs the add and edit forms.
type HabitFormModel struct {
	Name     string
	Interval string
	Remind   string
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Repeats").
				Options(
					huh.NewOption("Daily", string(models.IntervalDaily)),
					huh.NewOption("Weekly", string(models.IntervalWeekly)),
					huh.NewOption("Monthly", string(models.IntervalMonthly)),
				).
				Value(&fm.Interval),
			huh.NewInput().
				Title("Reminder (HH:MM, empty for none)").
				Value(&fm.Remind).
				Validate(func(s string) error {
					_, err := habits.NormalizeReminderTime(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
