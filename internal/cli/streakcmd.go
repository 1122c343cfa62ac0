package cli

import (
	"fmt"
)

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	cur, err := ctx.Habits.Streak()
	if err != nil {
		return err
	}
	best, err := ctx.Habits.BestStreak()
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d day(s)\n", cur)
	fmt.Printf("Best streak:    %d day(s)\n", best)

	limits := ctx.Habits.Limits()
	claimed, err := ctx.Habits.RewardClaimed()
	if err != nil {
		return err
	}
	switch {
	case claimed:
		fmt.Printf("Extra slots claimed: +%d\n", limits.ExtraSlots)
	case cur >= limits.UnlockThreshold:
		fmt.Printf("Extra slots unlocked! Run 'racha claim' to keep them past a broken streak.\n")
	default:
		fmt.Printf("Reach a %d-day streak to unlock %d extra habit slots.\n",
			limits.UnlockThreshold, limits.ExtraSlots)
	}
	return nil
}

type ClaimCmd struct{}

func (c *ClaimCmd) Run(ctx *Context) error {
	claimed, err := ctx.Habits.RewardClaimed()
	if err != nil {
		return err
	}
	if claimed {
		fmt.Println("Extra slots already claimed.")
		return nil
	}

	cur, err := ctx.Habits.Streak()
	if err != nil {
		return err
	}
	limits := ctx.Habits.Limits()
	if cur < limits.UnlockThreshold {
		return fmt.Errorf("nothing to claim yet: current streak is %d, need %d", cur, limits.UnlockThreshold)
	}

	if _, err := ctx.Habits.ClaimReward(); err != nil {
		return err
	}
	fmt.Printf("Claimed %d extra habit slots. They are yours for good.\n", limits.ExtraSlots)
	return nil
}
