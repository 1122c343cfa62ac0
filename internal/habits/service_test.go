package habits

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/models"
	"github.com/mresendiz/racha/internal/progress"
	"github.com/mresendiz/racha/internal/storage"
)

// testClock lets a test advance "today" between mutations, since
// habits are anchored to their creation date.
type testClock struct {
	today string
}

func (c *testClock) now() time.Time {
	return dateutil.ParseKey(c.today)
}

func newTestService(t *testing.T, today string) (*Service, *testClock) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "racha.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	clock := &testClock{today: today}
	return NewAt(store, progress.DefaultLimits(), clock.now), clock
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return verr.Reason
}

func TestCreate_Basic(t *testing.T) {
	s, _ := newTestService(t, "2024-05-01")

	habits, err := s.Create("Read ", models.IntervalDaily, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("got %d habits, want 1", len(habits))
	}
	h := habits[0]
	if h.Name != "Read" {
		t.Errorf("name = %q, want trimmed %q", h.Name, "Read")
	}
	if h.ID == "" {
		t.Error("expected generated id")
	}
	if h.CurrentStreak != 0 || h.BestStreak != 0 {
		t.Errorf("fresh habit streaks = %d/%d, want 0/0", h.CurrentStreak, h.BestStreak)
	}
}

func TestCreate_Rejections(t *testing.T) {
	s, _ := newTestService(t, "2024-05-01")

	if _, err := s.Create("  ", models.IntervalDaily, ""); reasonOf(t, err) != ReasonEmptyName {
		t.Error("blank name should be rejected with ReasonEmptyName")
	}
	if _, err := s.Create("Run", models.Interval("hourly"), ""); reasonOf(t, err) != ReasonInvalidInterval {
		t.Error("unknown interval should be rejected")
	}
	if _, err := s.Create("Run", models.IntervalDaily, "25:99"); reasonOf(t, err) != ReasonInvalidTime {
		t.Error("bad reminder time should be rejected")
	}

	if _, err := s.Create("Run", models.IntervalDaily, ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Create(" run ", models.IntervalWeekly, ""); reasonOf(t, err) != ReasonDuplicateName {
		t.Error("case-insensitive duplicate should be rejected")
	}

	// Rejections leave the set untouched.
	habits, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(habits) != 1 {
		t.Errorf("got %d habits after rejections, want 1", len(habits))
	}
}

func TestCreate_SlotLimit(t *testing.T) {
	s, _ := newTestService(t, "2024-05-01")

	for _, name := range []string{"One", "Two", "Three"} {
		if _, err := s.Create(name, models.IntervalDaily, ""); err != nil {
			t.Fatalf("Create(%s) failed: %v", name, err)
		}
	}

	if _, err := s.Create("Four", models.IntervalDaily, ""); reasonOf(t, err) != ReasonLimitExceeded {
		t.Error("fourth habit should exceed the base limit")
	}
}

func TestCreate_UnlockedLimitAllowsFive(t *testing.T) {
	s, clock := newTestService(t, "2024-05-01")

	habits, err := s.Create("One", models.IntervalDaily, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	id := habits[0].ID

	// A full week of completions crosses the unlock threshold.
	clock.today = "2024-05-08"
	for d := 1; d <= 8; d++ {
		date := dateutil.Format(dateutil.ParseKey("2024-05-01").AddDate(0, 0, d-1))
		if _, err := s.SetCompletion(id, date, true); err != nil {
			t.Fatalf("SetCompletion failed: %v", err)
		}
	}
	if cur, _ := s.Streak(); cur < 7 {
		t.Fatalf("streak = %d, want >= 7", cur)
	}

	for _, name := range []string{"Two", "Three", "Four", "Five"} {
		if _, err := s.Create(name, models.IntervalDaily, ""); err != nil {
			t.Fatalf("Create(%s) with unlocked slots failed: %v", name, err)
		}
	}
	if _, err := s.Create("Six", models.IntervalDaily, ""); reasonOf(t, err) != ReasonLimitExceeded {
		t.Error("sixth habit should exceed the unlocked limit")
	}
}

func TestSetCompletion_Idempotent(t *testing.T) {
	s, _ := newTestService(t, "2024-05-03")

	habits, err := s.Create("Read", models.IntervalDaily, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	id := habits[0].ID

	first, err := s.SetCompletion(id, "2024-05-03", true)
	if err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}
	second, err := s.SetCompletion(id, "2024-05-03", true)
	if err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}

	if len(first[0].History) != 1 || len(second[0].History) != 1 {
		t.Errorf("history lengths = %d/%d, want 1/1", len(first[0].History), len(second[0].History))
	}
	if second[0].History[0] != first[0].History[0] {
		t.Errorf("repeated SetCompletion changed history: %+v vs %+v", first[0].History, second[0].History)
	}
}

func TestSetCompletion_UnmarkKeepsRecord(t *testing.T) {
	s, _ := newTestService(t, "2024-05-03")

	habits, _ := s.Create("Read", models.IntervalDaily, "")
	id := habits[0].ID

	if _, err := s.SetCompletion(id, "2024-05-03", true); err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}
	updated, err := s.SetCompletion(id, "2024-05-03", false)
	if err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}

	// Explicit unmark keeps a Completed=false record, distinct from absence.
	if len(updated[0].History) != 1 {
		t.Fatalf("history length = %d, want 1", len(updated[0].History))
	}
	if updated[0].History[0].Completed {
		t.Error("record should be explicitly unmarked")
	}
}

func TestStreaks_RecomputedOnMutation(t *testing.T) {
	s, clock := newTestService(t, "2024-05-01")

	habits, _ := s.Create("Read", models.IntervalDaily, "")
	id := habits[0].ID

	clock.today = "2024-05-03"
	for _, d := range []string{"2024-05-01", "2024-05-02", "2024-05-03"} {
		habits, _ = s.SetCompletion(id, d, true)
	}

	if habits[0].CurrentStreak != 3 {
		t.Errorf("current streak = %d, want 3", habits[0].CurrentStreak)
	}
	if habits[0].BestStreak != 3 {
		t.Errorf("best streak = %d, want 3", habits[0].BestStreak)
	}
	if habits[0].LastCompleted != "2024-05-03" {
		t.Errorf("last completed = %q, want 2024-05-03", habits[0].LastCompleted)
	}

	if cur, err := s.Streak(); err != nil || cur != 3 {
		t.Errorf("global streak = %d (err %v), want 3", cur, err)
	}
}

func TestBestStreak_Monotonic(t *testing.T) {
	s, clock := newTestService(t, "2024-05-01")

	habits, _ := s.Create("Read", models.IntervalDaily, "")
	id := habits[0].ID

	clock.today = "2024-05-10"
	for _, d := range []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04", "2024-05-05"} {
		s.SetCompletion(id, d, true)
	}

	// Break the run: best stays at its recorded high-water mark.
	s.SetCompletion(id, "2024-05-03", false)
	s.SetCompletion(id, "2024-05-04", false)
	s.SetCompletion(id, "2024-05-05", false)

	h, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if h.BestStreak != 5 {
		t.Errorf("best streak = %d, want 5 (monotonic floor)", h.BestStreak)
	}
	if h.CurrentStreak != 0 {
		t.Errorf("current streak = %d, want 0", h.CurrentStreak)
	}
}

func TestDelete_RecomputesGlobalState(t *testing.T) {
	s, clock := newTestService(t, "2024-05-01")

	a, _ := s.Create("One", models.IntervalDaily, "")
	habits, _ := s.Create("Two", models.IntervalDaily, "")
	idOne, idTwo := a[0].ID, habits[1].ID

	clock.today = "2024-05-02"
	s.SetCompletion(idOne, "2024-05-01", true)
	s.SetCompletion(idOne, "2024-05-02", true)
	// Two never completed: the global streak stays at 0.
	if cur, _ := s.Streak(); cur != 0 {
		t.Fatalf("global streak = %d, want 0", cur)
	}

	if _, err := s.Delete(idTwo); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if cur, _ := s.Streak(); cur != 2 {
		t.Errorf("global streak after delete = %d, want 2", cur)
	}

	if _, err := s.Delete("missing"); reasonOf(t, err) != ReasonNotFound {
		t.Error("deleting an unknown id should be rejected")
	}
}

func TestClaimReward_Idempotent(t *testing.T) {
	s, _ := newTestService(t, "2024-05-01")

	st, err := s.ClaimReward()
	if err != nil {
		t.Fatalf("ClaimReward failed: %v", err)
	}
	if !st.RewardClaimed {
		t.Error("claim should set the flag")
	}

	again, err := s.ClaimReward()
	if err != nil {
		t.Fatalf("ClaimReward failed: %v", err)
	}
	if !again.RewardClaimed || !again.UpdatedAt.Equal(st.UpdatedAt) {
		t.Error("second claim should be a no-op")
	}
}

func TestStreak_LazyRecomputeFromInvalidCache(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "racha.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	clock := &testClock{today: "2024-05-01"}
	s := NewAt(store, progress.DefaultLimits(), clock.now)

	habits, _ := s.Create("Read", models.IntervalDaily, "")
	clock.today = "2024-05-02"
	s.SetCompletion(habits[0].ID, "2024-05-01", true)
	s.SetCompletion(habits[0].ID, "2024-05-02", true)

	// Invalidate the cache, as an upgrade or external edit would.
	if err := store.SaveStreakState(models.InvalidStreakState()); err != nil {
		t.Fatalf("SaveStreakState failed: %v", err)
	}

	cur, err := s.Streak()
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if cur != 2 {
		t.Errorf("recomputed streak = %d, want 2", cur)
	}

	// The recomputation is persisted back.
	state, _ := store.GetStreakState()
	if state.Streak != 2 {
		t.Errorf("persisted streak = %d, want 2", state.Streak)
	}
}

func TestUpdate_RenameAndReminder(t *testing.T) {
	s, _ := newTestService(t, "2024-05-01")

	habits, _ := s.Create("Read", models.IntervalDaily, "")
	id := habits[0].ID

	updated, err := s.Update(id, "Read books", models.IntervalWeekly, "930")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	h := updated[0]
	if h.Name != "Read books" || h.Interval != models.IntervalWeekly || h.ReminderTime != "09:30" {
		t.Errorf("update result = %q/%s/%q", h.Name, h.Interval, h.ReminderTime)
	}

	// Renaming to its own name is not a duplicate.
	if _, err := s.Update(id, "READ BOOKS", models.IntervalWeekly, ""); err != nil {
		t.Errorf("self-rename should pass the duplicate check: %v", err)
	}
}

func TestGetByName_CaseInsensitive(t *testing.T) {
	s, _ := newTestService(t, "2024-05-01")

	s.Create("Read", models.IntervalDaily, "")
	if _, err := s.GetByName("rEaD"); err != nil {
		t.Errorf("GetByName should match case-insensitively: %v", err)
	}
	if _, err := s.GetByName("nope"); reasonOf(t, err) != ReasonNotFound {
		t.Error("unknown name should be ReasonNotFound")
	}
}
