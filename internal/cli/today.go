package cli

import (
	"fmt"
	"time"

	"github.com/mresendiz/racha/internal/recurrence"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	habits, err := ctx.Habits.List()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'racha add <name>'.")
		return nil
	}

	today := ctx.Habits.TodayKey()
	now := time.Now()
	fmt.Printf("Habits for %s:\n\n", today)

	due, done := 0, 0
	for _, h := range habits {
		rule := recurrence.ForHabit(h)
		if !rule.DueOn(now) {
			fmt.Printf(" -  %s (not due today)\n", h.Name)
			continue
		}
		due++
		status := "[ ]"
		if h.CompletedOn(today) {
			status = "[x]"
			done++
		}
		fmt.Printf("%s %s\n", status, h.Name)
	}

	if due == 0 {
		fmt.Println("\nNothing due today.")
		return nil
	}
	fmt.Printf("\nCompleted: %d/%d\n", done, due)
	if done == due {
		cur, err := ctx.Habits.Streak()
		if err == nil {
			fmt.Printf("Day complete! Streak: %d day(s)\n", cur)
		}
	}
	return nil
}
