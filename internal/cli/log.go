package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mresendiz/racha/internal/constants"
	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/models"
	"github.com/mresendiz/racha/internal/recurrence"
)

type LogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for a specific habit only." default:""`
}

func (c *LogCmd) Run(ctx *Context) error {
	habits, err := ctx.Habits.List()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'racha add <name>'.")
		return nil
	}

	selected := habits
	if c.Habit != "" {
		h, err := ctx.resolveHabit(c.Habit)
		if err != nil {
			return err
		}
		selected = []models.Habit{h}
	}

	days := c.Days
	if days < 1 {
		days = constants.HistoryWindowDays
	}

	end := dateutil.Midnight(time.Now())
	start := dateutil.AddDays(end, -(days - 1))

	fmt.Printf("Habit log (last %d days):\n\n", days)

	const nameWidth = 20
	fmt.Print(strings.Repeat(" ", nameWidth))
	for i := 0; i < days; i++ {
		fmt.Printf(" %5s", dateutil.AddDays(start, i).Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", nameWidth+6*days))

	for _, h := range selected {
		name := h.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}
		fmt.Printf("%-*s", nameWidth, name)

		rule := recurrence.ForHabit(h)
		for i := 0; i < days; i++ {
			day := dateutil.AddDays(start, i)
			switch {
			case h.CompletedOn(dateutil.Format(day)):
				fmt.Print("  x   ")
			case rule.DueOn(day):
				fmt.Print("  .   ")
			default:
				fmt.Print("      ")
			}
		}
		fmt.Println()
	}

	// Day-level summary row: a day counts when every due habit is done.
	if c.Habit == "" {
		window, err := ctx.Habits.History(days)
		if err != nil {
			return err
		}
		byDate := make(map[string]bool, len(window))
		for _, d := range window {
			byDate[d.Date] = d.Completed
		}

		fmt.Printf("%-*s", nameWidth, "all done")
		for i := 0; i < days; i++ {
			if byDate[dateutil.Format(dateutil.AddDays(start, i))] {
				fmt.Print("  *   ")
			} else {
				fmt.Print("      ")
			}
		}
		fmt.Println()
	}
	return nil
}
