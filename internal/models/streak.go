package models

import "time"

// StreakState is the persisted global streak record, stored separately
// from the habit set. Streak < 0 marks an invalidated cache that gets
// recomputed lazily from the full habit set on the next read.
type StreakState struct {
	Streak        int       `json:"streak"`
	RewardClaimed bool      `json:"reward_claimed"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InvalidStreakState returns a state whose streak cache is marked stale.
func InvalidStreakState() StreakState {
	return StreakState{Streak: -1}
}
