package cli

import (
	"fmt"
	"os"
)

type AddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Interval string `short:"i" help:"Recurrence: daily, weekly or monthly." default:"daily"`
	Remind   string `short:"r" help:"Daily reminder time (HH:MM)." default:""`
}

func (c *AddCmd) Run(ctx *Context) error {
	interval, err := ParseInterval(c.Interval)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if _, err := ctx.Habits.Create(c.Name, interval, c.Remind); err != nil {
		return err
	}
	fmt.Printf("Added habit: %s (%s)\n", c.Name, FormatInterval(interval))

	offer, err := ctx.Habits.ShouldOfferReward()
	if err == nil && offer {
		fmt.Println("Your streak unlocked extra habit slots! Run 'racha claim' to keep them.")
	}
	return nil
}

type EditCmd struct {
	Habit    string `arg:"" help:"Habit name or id."`
	Name     string `help:"New name." default:""`
	Interval string `short:"i" help:"New recurrence: daily, weekly or monthly." default:""`
	Remind   string `short:"r" help:"New reminder time (HH:MM), or 'off' to clear." default:""`
}

func (c *EditCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	name := habit.Name
	if c.Name != "" {
		name = c.Name
	}
	interval := habit.Interval
	if c.Interval != "" {
		interval, err = ParseInterval(c.Interval)
		if err != nil {
			return err
		}
	}
	remind := habit.ReminderTime
	switch c.Remind {
	case "":
	case "off":
		remind = ""
	default:
		remind = c.Remind
	}

	ctx.PerformAutomaticBackup()
	if _, err := ctx.Habits.Update(habit.ID, name, interval, remind); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", name)
	return nil
}

type DeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes && !confirm(os.Stdin, fmt.Sprintf("Delete habit %q and all its history?", habit.Name)) {
		fmt.Println("Delete cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if _, err := ctx.Habits.Delete(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	fmt.Println("(Its history is gone. Restore a backup with 'racha backup restore' to undo)")
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	habits, err := ctx.Habits.List()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'racha add <name>'.")
		return nil
	}

	limit, err := ctx.Habits.SlotLimit()
	if err != nil {
		return err
	}

	for _, h := range habits {
		remind := ""
		if h.ReminderTime != "" {
			remind = fmt.Sprintf(", remind %s", h.ReminderTime)
		}
		fmt.Printf("%-24s %s%s  streak %d (best %d)\n",
			h.Name, FormatInterval(h.Interval), remind, h.CurrentStreak, h.BestStreak)
	}
	fmt.Printf("\nSlots used: %d/%d\n", len(habits), limit)
	return nil
}
