package progress

import (
	"testing"

	"github.com/mresendiz/racha/internal/models"
)

func TestSlotLimit_ThresholdUnlocksImmediately(t *testing.T) {
	l := DefaultLimits()

	if got := l.SlotLimit(6, false); got != 3 {
		t.Errorf("SlotLimit(6, unclaimed) = %d, want 3", got)
	}
	// Capacity unlocks on threshold alone, independent of claiming.
	if got := l.SlotLimit(7, false); got != 5 {
		t.Errorf("SlotLimit(7, unclaimed) = %d, want 5", got)
	}
}

func TestUnlocked_LiveORSemantics(t *testing.T) {
	l := DefaultLimits()

	// Unclaimed unlock re-locks when the streak drops.
	if l.Unlocked(3, false) {
		t.Error("streak below threshold without claim should be locked")
	}
	// Claimed unlock never re-locks.
	if !l.Unlocked(0, true) {
		t.Error("claimed reward must keep capacity unlocked at any streak")
	}
}

func TestShouldOfferReward(t *testing.T) {
	l := DefaultLimits()

	if !l.ShouldOfferReward(7, false) {
		t.Error("reward should be offered at threshold while unclaimed")
	}
	if l.ShouldOfferReward(7, true) {
		t.Error("claimed reward should not be offered again")
	}
	if l.ShouldOfferReward(6, false) {
		t.Error("reward requires the threshold")
	}
}

func TestFreeUnlockedSlots(t *testing.T) {
	l := DefaultLimits()

	tests := []struct {
		streak, count, want int
	}{
		{6, 3, 0}, // below threshold
		{7, 3, 2}, // nothing used yet
		{7, 4, 1},
		{7, 5, 0},
		{7, 6, 0}, // never negative
		{7, 1, 2}, // usage below base does not inflate
	}

	for _, tt := range tests {
		if got := l.FreeUnlockedSlots(tt.streak, tt.count); got != tt.want {
			t.Errorf("FreeUnlockedSlots(%d, %d) = %d, want %d", tt.streak, tt.count, got, tt.want)
		}
	}
}

func TestClaim_Idempotent(t *testing.T) {
	st := Claim(models.StreakState{Streak: 8})
	if !st.RewardClaimed {
		t.Fatal("claim should set the flag")
	}
	again := Claim(st)
	if again != st {
		t.Error("claiming twice should be a no-op")
	}
}
