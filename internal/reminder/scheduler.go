// Package reminder fires daily in-app reminders for habits that were
// created with a reminder time.
package reminder

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/habits/internal/model"
)

// FiredMsg is a tea.Msg sent when a reminder comes due.
type FiredMsg struct {
	HabitID   string
	HabitName string
	At        time.Time
}

// Entry is a scheduled reminder.
type Entry struct {
	HabitID   string
	HabitName string
	Hour      int
	Minute    int
}

// NextFire returns the first hour:minute strictly after now, in now's
// location.
func NextFire(hour, minute int, now time.Time) time.Time {
	y, m, d := now.Date()
	next := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(y, m, d+1, hour, minute, 0, 0, now.Location())
	}
	return next
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source and timer used to wait for the next
// reminder.
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
		s.after = after
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// Scheduler runs one goroutine per scheduled reminder and delivers due
// reminders to the Bubble Tea runtime.
type Scheduler struct {
	entries map[string]Entry
	firedCh chan FiredMsg
	stopCh  chan struct{}
	mu      gosync.Mutex
	running bool
	now     func() time.Time
	after   func(time.Duration) <-chan time.Time
	logger  *zap.Logger
}

// New creates an idle Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		entries: make(map[string]Entry),
		firedCh: make(chan FiredMsg, 16),
		stopCh:  make(chan struct{}),
		now:     time.Now,
		after:   time.After,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule registers a daily reminder for h. Habits without a reminder
// time, and habits already scheduled, are ignored. If the scheduler is
// running the reminder starts immediately.
func (s *Scheduler) Schedule(h model.Habit) bool {
	if !h.HasReminder() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[h.ID]; ok {
		return false
	}

	e := Entry{
		HabitID:   h.ID,
		HabitName: h.Name,
		Hour:      h.ReminderTime.Hour(),
		Minute:    h.ReminderTime.Minute(),
	}
	s.entries[h.ID] = e
	s.logger.Info("reminder scheduled",
		zap.String("habit", h.ID), zap.Int("hour", e.Hour), zap.Int("minute", e.Minute))

	if s.running {
		go s.run(e)
	}
	return true
}

// Entries returns the scheduled reminders.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// Start returns a tea.Cmd that starts all reminder goroutines and
// subscribes to fired reminders.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	for _, e := range entries {
		go s.run(e)
	}

	return s.WaitForNext()
}

// Stop halts all reminder goroutines. A stopped scheduler cannot be
// restarted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stopCh)
	s.running = false
}

// run waits for each occurrence of e until the scheduler stops.
func (s *Scheduler) run(e Entry) {
	for {
		now := s.now()
		wait := NextFire(e.Hour, e.Minute, now).Sub(now)

		select {
		case <-s.stopCh:
			return
		case at := <-s.after(wait):
			s.send(FiredMsg{HabitID: e.HabitID, HabitName: e.HabitName, At: at})
		}
	}
}

// send delivers msg without blocking.
func (s *Scheduler) send(msg FiredMsg) {
	select {
	case s.firedCh <- msg:
	default:
		s.logger.Warn("reminder dropped", zap.String("habit", msg.HabitID))
	}
}

// WaitForNext returns a tea.Cmd that waits for the next fired reminder.
// Call it again after handling a FiredMsg to keep listening.
func (s *Scheduler) WaitForNext() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.firedCh:
			return msg
		case <-s.stopCh:
			return nil
		}
	}
}
