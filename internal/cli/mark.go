package cli

import (
	"fmt"
	"time"

	"github.com/mresendiz/racha/internal/constants"
)

// resolveDay validates an optional --date flag, defaulting to today.
func resolveDay(ctx *Context, date string) (string, error) {
	if date == "" {
		return ctx.Habits.TodayKey(), nil
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DoneCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	day, err := resolveDay(ctx, c.Date)
	if err != nil {
		return err
	}

	if _, err := ctx.Habits.SetCompletion(habit.ID, day, true); err != nil {
		return err
	}
	fmt.Printf("Marked %q done for %s\n", habit.Name, day)

	cur, err := ctx.Habits.Streak()
	if err == nil && cur > 0 {
		fmt.Printf("Streak: %d day(s)\n", cur)
	}
	offer, err := ctx.Habits.ShouldOfferReward()
	if err == nil && offer {
		fmt.Println("Your streak unlocked extra habit slots! Run 'racha claim' to keep them.")
	}
	return nil
}

type UndoCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *UndoCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	day, err := resolveDay(ctx, c.Date)
	if err != nil {
		return err
	}

	if _, err := ctx.Habits.SetCompletion(habit.ID, day, false); err != nil {
		return err
	}
	fmt.Printf("Unmarked %q for %s\n", habit.Name, day)
	return nil
}
