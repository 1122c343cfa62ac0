package habits

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/models"
	"github.com/mresendiz/racha/internal/progress"
	"github.com/mresendiz/racha/internal/storage"
	"github.com/mresendiz/racha/internal/streak"
)

// Service is the habit engine: validated mutations over the persisted
// habit set plus derived streak and progression queries. It holds no
// state of its own beyond the injected provider and limits; every
// operation is a read-modify-write of the whole set.
type Service struct {
	store  storage.Provider
	limits progress.Limits

	// now is injectable so tests can pin the reference date.
	now func() time.Time
}

func New(store storage.Provider, limits progress.Limits) *Service {
	return &Service{
		store:  store,
		limits: limits,
		now:    time.Now,
	}
}

// NewAt returns a service whose clock is fixed, for tests.
func NewAt(store storage.Provider, limits progress.Limits, now func() time.Time) *Service {
	s := New(store, limits)
	s.now = now
	return s
}

func (s *Service) today() time.Time {
	return dateutil.Midnight(s.now())
}

// TodayKey returns today's day key per the service clock.
func (s *Service) TodayKey() string {
	return dateutil.Format(s.today())
}

// List returns the habit set with derived streak fields freshly
// computed for display. The store is not written.
func (s *Service) List() ([]models.Habit, error) {
	habits, err := s.store.GetHabits()
	if err != nil {
		return nil, err
	}
	today := s.today()
	for i := range habits {
		refreshDerived(&habits[i], today)
	}
	return habits, nil
}

// Get finds a habit by id.
func (s *Service) Get(id string) (models.Habit, error) {
	habits, err := s.List()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, errNotFound(id)
}

// GetByName finds a habit by case-insensitive name.
func (s *Service) GetByName(name string) (models.Habit, error) {
	habits, err := s.List()
	if err != nil {
		return models.Habit{}, err
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, h := range habits {
		if strings.ToLower(h.Name) == normalized {
			return h, nil
		}
	}
	return models.Habit{}, errNotFound(name)
}

// Create validates and appends a new habit, then recomputes and
// persists the global streak state. On rejection the set is untouched.
func (s *Service) Create(name string, interval models.Interval, reminderTime string) ([]models.Habit, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errEmptyName()
	}
	if !interval.Valid() {
		return nil, errInvalidInterval(string(interval))
	}
	reminder, err := NormalizeReminderTime(reminderTime)
	if err != nil {
		return nil, err
	}

	habits, err := s.store.GetHabits()
	if err != nil {
		return nil, err
	}

	limit, err := s.slotLimit(habits)
	if err != nil {
		return nil, err
	}
	if len(habits) >= limit {
		return nil, errLimitExceeded(limit)
	}
	if nameTaken(habits, trimmed, "") {
		return nil, errDuplicateName(trimmed)
	}

	habits = append(habits, models.Habit{
		ID:           uuid.New().String(),
		Name:         trimmed,
		Interval:     interval,
		CreatedAt:    s.now(),
		ReminderTime: reminder,
		History:      []models.Completion{},
	})

	return s.persist(habits)
}

// Update edits name, interval and reminder time of an existing habit.
// The duplicate check excludes the habit itself.
func (s *Service) Update(id, name string, interval models.Interval, reminderTime string) ([]models.Habit, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errEmptyName()
	}
	if !interval.Valid() {
		return nil, errInvalidInterval(string(interval))
	}
	reminder, err := NormalizeReminderTime(reminderTime)
	if err != nil {
		return nil, err
	}

	habits, err := s.store.GetHabits()
	if err != nil {
		return nil, err
	}
	if nameTaken(habits, trimmed, id) {
		return nil, errDuplicateName(trimmed)
	}

	found := false
	for i := range habits {
		if habits[i].ID != id {
			continue
		}
		habits[i].Name = trimmed
		habits[i].Interval = interval
		habits[i].ReminderTime = reminder
		found = true
		break
	}
	if !found {
		return nil, errNotFound(id)
	}

	return s.persist(habits)
}

// Delete removes a habit permanently and recomputes the global state
// from the remaining set.
func (s *Service) Delete(id string) ([]models.Habit, error) {
	habits, err := s.store.GetHabits()
	if err != nil {
		return nil, err
	}

	kept := habits[:0]
	found := false
	for _, h := range habits {
		if h.ID == id {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	if !found {
		return nil, errNotFound(id)
	}

	return s.persist(kept)
}

// SetCompletion upserts the single per-date record of a habit. Calling
// it twice with the same arguments yields the same history. Unparseable
// dates fall back to today rather than failing.
func (s *Service) SetCompletion(id, date string, completed bool) ([]models.Habit, error) {
	key := dateutil.Format(dateutil.ParseKey(date))

	habits, err := s.store.GetHabits()
	if err != nil {
		return nil, err
	}

	found := false
	for i := range habits {
		if habits[i].ID != id {
			continue
		}
		upsertCompletion(&habits[i], key, completed)
		found = true
		break
	}
	if !found {
		return nil, errNotFound(id)
	}

	return s.persist(habits)
}

// ClaimReward marks the unlock reward as claimed. Idempotent.
func (s *Service) ClaimReward() (models.StreakState, error) {
	state, err := s.store.GetStreakState()
	if err != nil {
		return models.StreakState{}, err
	}
	claimed := progress.Claim(state)
	if claimed == state {
		return state, nil
	}
	if err := s.store.SaveStreakState(claimed); err != nil {
		return models.StreakState{}, err
	}
	return claimed, nil
}

// Streak returns the global current streak, honoring the persisted
// cache when valid and lazily recomputing it otherwise.
func (s *Service) Streak() (int, error) {
	state, err := s.store.GetStreakState()
	if err != nil {
		return 0, err
	}
	if state.Streak >= 0 {
		return state.Streak, nil
	}

	habits, err := s.store.GetHabits()
	if err != nil {
		return 0, err
	}
	state.Streak = streak.Global(habits, s.today())
	state.UpdatedAt = s.now()
	if err := s.store.SaveStreakState(state); err != nil {
		return 0, err
	}
	return state.Streak, nil
}

// BestStreak returns the longest historical run of fully completed days.
func (s *Service) BestStreak() (int, error) {
	habits, err := s.store.GetHabits()
	if err != nil {
		return 0, err
	}
	return streak.GlobalBest(habits, s.today()), nil
}

// History returns the n-day rolling completion window, newest first.
func (s *Service) History(n int) ([]streak.DayStatus, error) {
	habits, err := s.store.GetHabits()
	if err != nil {
		return nil, err
	}
	return streak.Window(habits, s.today(), n), nil
}

// RewardClaimed reports the persisted claim flag.
func (s *Service) RewardClaimed() (bool, error) {
	state, err := s.store.GetStreakState()
	if err != nil {
		return false, err
	}
	return state.RewardClaimed, nil
}

// SlotLimit returns the habit capacity for the current streak state.
func (s *Service) SlotLimit() (int, error) {
	habits, err := s.store.GetHabits()
	if err != nil {
		return 0, err
	}
	return s.slotLimit(habits)
}

// ShouldOfferReward reports whether the unlock celebration is pending.
func (s *Service) ShouldOfferReward() (bool, error) {
	cur, err := s.Streak()
	if err != nil {
		return false, err
	}
	claimed, err := s.RewardClaimed()
	if err != nil {
		return false, err
	}
	return s.limits.ShouldOfferReward(cur, claimed), nil
}

// FreeUnlockedSlots returns how many unlocked slots remain unused.
func (s *Service) FreeUnlockedSlots() (int, error) {
	cur, err := s.Streak()
	if err != nil {
		return 0, err
	}
	habits, err := s.store.GetHabits()
	if err != nil {
		return 0, err
	}
	return s.limits.FreeUnlockedSlots(cur, len(habits)), nil
}

// Limits exposes the progression tunables in effect.
func (s *Service) Limits() progress.Limits {
	return s.limits
}

func (s *Service) slotLimit(habits []models.Habit) (int, error) {
	state, err := s.store.GetStreakState()
	if err != nil {
		return 0, err
	}
	cur := state.Streak
	if cur < 0 {
		cur = streak.Global(habits, s.today())
	}
	return s.limits.SlotLimit(cur, state.RewardClaimed), nil
}

// persist refreshes derived fields, writes the habit set, then
// recomputes and writes the global streak state. Mutations share this
// path so the persisted snapshot and the cache never diverge.
func (s *Service) persist(habits []models.Habit) ([]models.Habit, error) {
	today := s.today()
	for i := range habits {
		refreshDerived(&habits[i], today)
	}
	if err := s.store.SaveHabits(habits); err != nil {
		return nil, err
	}

	state, err := s.store.GetStreakState()
	if err != nil {
		return nil, err
	}
	state.Streak = streak.Global(habits, today)
	state.UpdatedAt = s.now()
	if err := s.store.SaveStreakState(state); err != nil {
		return nil, err
	}

	return habits, nil
}

// refreshDerived recomputes the per-habit derived fields. BestStreak
// only moves up: the stored value is a floor for the recomputation.
func refreshDerived(h *models.Habit, today time.Time) {
	h.CurrentStreak = streak.Current(*h, today)
	if best := streak.Best(*h); best > h.BestStreak {
		h.BestStreak = best
	}
	h.LastCompleted = streak.LastCompleted(*h)
}

func upsertCompletion(h *models.Habit, date string, completed bool) {
	for i := range h.History {
		if h.History[i].Date == date {
			h.History[i].Completed = completed
			return
		}
	}
	h.History = append(h.History, models.Completion{Date: date, Completed: completed})
	sort.Slice(h.History, func(i, j int) bool { return h.History[i].Date < h.History[j].Date })
}

// nameTaken reports whether the trimmed name is already used by a
// different habit, case-insensitively.
func nameTaken(habits []models.Habit, name, excludeID string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, h := range habits {
		if h.ID == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(h.Name)) == normalized {
			return true
		}
	}
	return false
}
