package store

import (
	"context"
	"encoding/json"
	"fmt"
	gosync "sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/habits/internal/kv"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/streak"
)

// habitSchemaVersion is the current version of the persisted habit state.
const habitSchemaVersion = 1

// habitRecord is the persisted form of a habit. Dates are RFC 3339
// strings on disk and are decoded through the typed fields.
type habitRecord struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Streak        int        `json:"streak"`
	LastCompleted *time.Time `json:"lastCompleted"`
	Frequency     string     `json:"frequency"`
	StartDate     time.Time  `json:"startDate"`
	ReminderTime  *time.Time `json:"reminderTime,omitempty"`
}

type habitState struct {
	Habits []habitRecord `json:"habits"`
}

// habitMigrations upgrade persisted habit state. Version 0 records may lack
// a frequency; they were all created as daily habits.
var habitMigrations = map[int]stateMigration{
	0: func(raw json.RawMessage) (json.RawMessage, error) {
		var st habitState
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, err
		}
		for i := range st.Habits {
			if st.Habits[i].Frequency == "" {
				st.Habits[i].Frequency = string(model.FrequencyDaily)
			}
		}
		return json.Marshal(st)
	},
}

// HabitStore owns the ordered habit collection. Insertion order is display
// order; lookups are linear.
type HabitStore struct {
	mu     gosync.Mutex
	habits []model.Habit
	p      *persister
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// NewHabitStore creates an empty store backed by storage. Call Load to
// rehydrate persisted habits.
func NewHabitStore(storage kv.Storage, opts ...Option) *HabitStore {
	o := buildOptions(opts)
	return &HabitStore{
		habits: []model.Habit{},
		p:      newPersister(storage, HabitStorageKey, habitSchemaVersion, o.logger),
		now:    o.now,
		newID:  o.newID,
		logger: o.logger,
	}
}

// Load replaces the in-memory collection with the persisted one. When
// nothing is stored the collection stays empty. On failure the store keeps
// its defaults and stops persisting.
func (s *HabitStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, ok, err := s.p.load(ctx)
	if err != nil || !ok {
		return err
	}

	raw, err := migrate(env.State, env.Version, habitSchemaVersion, habitMigrations)
	if err != nil {
		s.p.degrade(err)
		return fmt.Errorf("loading habits: %w", err)
	}

	var st habitState
	if err := json.Unmarshal(raw, &st); err != nil {
		s.p.degrade(err)
		return fmt.Errorf("decoding habits: %w", err)
	}

	loc := s.now().Location()
	habits := make([]model.Habit, 0, len(st.Habits))
	for _, r := range st.Habits {
		habits = append(habits, r.toModel(loc))
	}
	s.habits = habits

	s.logger.Debug("habits loaded", zap.Int("count", len(habits)), zap.Int("version", env.Version))
	return nil
}

// Habits returns a copy of the collection in display order.
func (s *HabitStore) Habits() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = cloneHabit(h)
	}
	return out
}

// Habit returns the habit with the given id.
func (s *HabitStore) Habit(id string) (model.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return cloneHabit(s.habits[i]), true
	}
	return model.Habit{}, false
}

// AddHabit appends a new habit with a fresh id, a zero streak and no
// completion. The name is not validated here; callers reject empty names.
// The habit is kept in memory even if persisting it fails.
func (s *HabitStore) AddHabit(ctx context.Context, in model.NewHabit) (model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := model.Habit{
		ID:            s.newID(),
		Name:          in.Name,
		Streak:        0,
		LastCompleted: nil,
		Frequency:     in.Frequency,
		StartDate:     in.StartDate,
		ReminderTime:  copyTime(in.ReminderTime),
	}
	s.habits = append(s.habits, h)

	s.logger.Info("habit added", zap.String("id", h.ID))
	return cloneHabit(h), s.p.save(ctx, s.snapshot())
}

// CompleteHabit marks the habit as completed now and applies the streak
// rule. An unknown id is a no-op that returns false and writes nothing.
// Repeated completion on the same day leaves the streak alone but still
// moves LastCompleted forward.
func (s *HabitStore) CompleteHabit(ctx context.Context, id string) (model.Habit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Habit{}, false, nil
	}

	now := s.now()
	h := &s.habits[i]
	h.Streak = streak.Next(h.Streak, h.LastCompleted, now)
	h.LastCompleted = &now

	s.logger.Info("habit completed", zap.String("id", id), zap.Int("streak", h.Streak))
	return cloneHabit(*h), true, s.p.save(ctx, s.snapshot())
}

// Reset deletes every habit and the stored snapshot. It also clears a
// previous storage failure, so unreadable state can be discarded.
func (s *HabitStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.p.clear(ctx); err != nil {
		return err
	}
	s.habits = []model.Habit{}
	s.logger.Info("habits reset")
	return nil
}

// Degraded reports whether persistence has been disabled for this session
// after a storage failure.
func (s *HabitStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.degraded
}

func (s *HabitStore) indexOf(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *HabitStore) snapshot() habitState {
	st := habitState{Habits: make([]habitRecord, len(s.habits))}
	for i, h := range s.habits {
		st.Habits[i] = recordFromModel(h)
	}
	return st
}

func recordFromModel(h model.Habit) habitRecord {
	return habitRecord{
		ID:            h.ID,
		Name:          h.Name,
		Streak:        h.Streak,
		LastCompleted: h.LastCompleted,
		Frequency:     string(h.Frequency),
		StartDate:     h.StartDate,
		ReminderTime:  h.ReminderTime,
	}
}

func (r habitRecord) toModel(loc *time.Location) model.Habit {
	return model.Habit{
		ID:            r.ID,
		Name:          r.Name,
		Streak:        r.Streak,
		LastCompleted: inLocation(r.LastCompleted, loc),
		Frequency:     model.Frequency(r.Frequency),
		StartDate:     r.StartDate.In(loc),
		ReminderTime:  inLocation(r.ReminderTime, loc),
	}
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneHabit(h model.Habit) model.Habit {
	h.LastCompleted = copyTime(h.LastCompleted)
	h.ReminderTime = copyTime(h.ReminderTime)
	return h
}
