package progress

import (
	"time"

	"github.com/mresendiz/racha/internal/constants"
	"github.com/mresendiz/racha/internal/models"
)

// Limits holds the slot progression tunables.
type Limits struct {
	BaseSlots       int
	ExtraSlots      int
	UnlockThreshold int
}

// DefaultLimits returns the stock progression: 3 slots, +2 at a 7-day streak.
func DefaultLimits() Limits {
	return Limits{
		BaseSlots:       constants.BaseHabitSlots,
		ExtraSlots:      constants.ExtraHabitSlots,
		UnlockThreshold: constants.StreakUnlockThreshold,
	}
}

// Unlocked reports whether the extra capacity is available. This is a
// live OR over the claim flag and the current streak: a claimed reward
// is permanent, while an unclaimed unlock re-locks if the streak later
// drops below the threshold.
func (l Limits) Unlocked(streak int, claimed bool) bool {
	return claimed || streak >= l.UnlockThreshold
}

// SlotLimit returns the habit capacity for the given streak state.
func (l Limits) SlotLimit(streak int, claimed bool) int {
	if l.Unlocked(streak, claimed) {
		return l.BaseSlots + l.ExtraSlots
	}
	return l.BaseSlots
}

// ShouldOfferReward reports whether the unlock celebration is pending:
// threshold reached and the reward not yet claimed.
func (l Limits) ShouldOfferReward(streak int, claimed bool) bool {
	return streak >= l.UnlockThreshold && !claimed
}

// FreeUnlockedSlots returns how many of the extra slots are still
// unused, or 0 while the threshold has not been reached.
func (l Limits) FreeUnlockedSlots(streak, habitCount int) int {
	if streak < l.UnlockThreshold {
		return 0
	}
	used := habitCount - l.BaseSlots
	if used < 0 {
		used = 0
	}
	free := l.ExtraSlots - used
	if free < 0 {
		free = 0
	}
	return free
}

// Claim marks the reward as claimed. Claiming twice is a no-op; the
// claim only flips the celebration flag, capacity follows Unlocked.
func Claim(st models.StreakState) models.StreakState {
	if st.RewardClaimed {
		return st
	}
	st.RewardClaimed = true
	st.UpdatedAt = time.Now()
	return st
}
