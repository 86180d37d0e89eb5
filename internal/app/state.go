package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/kv"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/reminder"
	"github.com/nhle/habits/internal/store"
	"github.com/nhle/habits/internal/theme"
)

// State holds the application-wide services. It is built once at startup
// and handed to the UI and CLI, which never construct stores themselves.
type State struct {
	Config     *model.AppConfig
	Storage    kv.Storage
	Habits     *store.HabitStore
	UI         *store.UIStore
	Reminders  *reminder.Scheduler
	Translator i18n.Translator
	Logger     *zap.Logger
	Now        func() time.Time

	closer  io.Closer
	openErr error
	loadErr error
}

// StateOption configures NewState.
type StateOption func(*stateOptions)

type stateOptions struct {
	now     func() time.Time
	detect  store.SchemeDetector
	storage kv.Storage
}

// WithNow overrides the clock used by the stores and the UI.
func WithNow(now func() time.Time) StateOption {
	return func(o *stateOptions) { o.now = now }
}

// WithSchemeDetector overrides terminal color scheme detection.
func WithSchemeDetector(d store.SchemeDetector) StateOption {
	return func(o *stateOptions) { o.detect = d }
}

// WithStorage uses s instead of opening the configured database.
func WithStorage(s kv.Storage) StateOption {
	return func(o *stateOptions) { o.storage = s }
}

// NewState opens storage, builds both stores and loads persisted state.
// Neither an unavailable database nor unreadable state is fatal: the
// affected store keeps its defaults and runs memory-only.
func NewState(ctx context.Context, cfg *model.AppConfig, logger *zap.Logger, opts ...StateOption) *State {
	o := stateOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.detect == nil {
		o.detect = schemeDetector(cfg.Display.Theme)
	}

	st := &State{
		Config:     cfg,
		Translator: i18n.FromEnv(cfg.Display.Language),
		Logger:     logger,
		Now:        o.now,
	}

	st.Storage = o.storage
	if st.Storage == nil {
		sqlite, err := kv.NewSQLiteStorage(cfg.Storage.Path)
		if err != nil {
			logger.Error("storage unavailable, running memory-only",
				zap.String("path", cfg.Storage.Path), zap.Error(err))
			st.openErr = fmt.Errorf("opening %s: %w", cfg.Storage.Path, err)
			st.Storage = kv.NewMemoryStorage()
		} else {
			st.Storage = sqlite
			st.closer = sqlite
		}
	}

	storeOpts := []store.Option{store.WithClock(o.now), store.WithLogger(logger)}
	st.Habits = store.NewHabitStore(st.Storage, storeOpts...)
	st.UI = store.NewUIStore(st.Storage, o.detect, storeOpts...)

	habitsErr := st.Habits.Load(ctx)
	if habitsErr != nil {
		logger.Error("loading habits", zap.Error(habitsErr))
	}
	uiErr := st.UI.Load(ctx)
	if uiErr != nil {
		logger.Error("loading ui preferences", zap.Error(uiErr))
	}
	st.loadErr = errors.Join(habitsErr, uiErr)

	st.Reminders = reminder.New(reminder.WithLogger(logger))
	if cfg.Reminders.Enabled {
		for _, h := range st.Habits.Habits() {
			st.Reminders.Schedule(h)
		}
	}

	logger.Info("state ready",
		zap.Int("habits", len(st.Habits.Habits())),
		zap.String("theme", string(st.UI.Theme())),
		zap.String("language", st.Translator.Language().String()),
	)
	return st
}

// StorageDegraded reports whether changes are not being saved, either
// because the database could not be opened or a store stopped persisting.
func (s *State) StorageDegraded() bool {
	return s.openErr != nil || s.Habits.Degraded() || s.UI.Degraded()
}

// StorageErr returns why changes are not being saved, or nil when they
// are. A later write failure without a startup cause is reported as
// ErrNotPersisting.
func (s *State) StorageErr() error {
	if s.openErr != nil {
		return s.openErr
	}
	if !s.Habits.Degraded() && !s.UI.Degraded() {
		return nil
	}
	if s.loadErr != nil {
		return s.loadErr
	}
	return ErrNotPersisting
}

// ErrNotPersisting is reported when a store stopped persisting after a
// failed write.
var ErrNotPersisting = errors.New("changes are no longer being saved")

// Reset discards every habit and the theme preference, including stored
// state that could not be read. It fails when the database itself is
// unavailable.
func (s *State) Reset(ctx context.Context) error {
	if s.openErr != nil {
		return s.openErr
	}
	if err := s.Habits.Reset(ctx); err != nil {
		return err
	}
	if err := s.UI.Reset(ctx); err != nil {
		return err
	}
	s.loadErr = nil
	s.Logger.Info("state reset")
	return nil
}

// Close stops reminders and closes the database.
func (s *State) Close() error {
	s.Reminders.Stop()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// schemeDetector maps the configured theme seed to a detector. "light"
// and "dark" pin the first-run theme; anything else asks the terminal.
func schemeDetector(seed string) store.SchemeDetector {
	switch t := model.Theme(seed); t {
	case model.ThemeLight, model.ThemeDark:
		return func() (model.Theme, bool) { return t, true }
	default:
		return theme.DetectScheme
	}
}
