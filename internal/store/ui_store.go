package store

import (
	"context"
	"encoding/json"
	"fmt"
	gosync "sync"

	"go.uber.org/zap"

	"github.com/nhle/habits/internal/kv"
	"github.com/nhle/habits/internal/model"
)

const uiSchemaVersion = 1

type uiState struct {
	Theme model.Theme `json:"theme"`
}

// The theme payload did not change between versions 0 and 1.
var uiMigrations = map[int]stateMigration{
	0: func(raw json.RawMessage) (json.RawMessage, error) { return raw, nil },
}

// SchemeDetector reports the color scheme of the host, if it knows one.
type SchemeDetector func() (model.Theme, bool)

// UIStore owns the theme preference.
type UIStore struct {
	mu      gosync.Mutex
	theme   model.Theme
	initial model.Theme
	p       *persister
	logger *zap.Logger
}

// NewUIStore creates a store whose initial theme comes from detect, or
// light when detect is nil or reports nothing. Call Load to apply a
// persisted preference.
func NewUIStore(storage kv.Storage, detect SchemeDetector, opts ...Option) *UIStore {
	o := buildOptions(opts)

	theme := model.ThemeLight
	if detect != nil {
		if t, ok := detect(); ok && t.Valid() {
			theme = t
		}
	}

	return &UIStore{
		theme:   theme,
		initial: theme,
		p:       newPersister(storage, UIStorageKey, uiSchemaVersion, o.logger),
		logger:  o.logger,
	}
}

// Load applies the persisted theme, if any. On failure the detected theme
// is kept and the store stops persisting.
func (s *UIStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, ok, err := s.p.load(ctx)
	if err != nil || !ok {
		return err
	}

	raw, err := migrate(env.State, env.Version, uiSchemaVersion, uiMigrations)
	if err != nil {
		s.p.degrade(err)
		return fmt.Errorf("loading ui state: %w", err)
	}

	var st uiState
	if err := json.Unmarshal(raw, &st); err != nil {
		s.p.degrade(err)
		return fmt.Errorf("decoding ui state: %w", err)
	}
	if !st.Theme.Valid() {
		err := fmt.Errorf("decoding ui state: unknown theme %q", st.Theme)
		s.p.degrade(err)
		return err
	}

	s.theme = st.Theme
	return nil
}

// Theme returns the active theme.
func (s *UIStore) Theme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme flips between light and dark and persists the result.
func (s *UIStore) ToggleTheme(ctx context.Context) (model.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = s.theme.Toggle()
	s.logger.Info("theme toggled", zap.String("theme", string(s.theme)))
	return s.theme, s.p.save(ctx, uiState{Theme: s.theme})
}

// Reset drops the stored preference and returns to the detected theme.
func (s *UIStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.p.clear(ctx); err != nil {
		return err
	}
	s.theme = s.initial
	return nil
}

// Degraded reports whether persistence has been disabled for this session.
func (s *UIStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.degraded
}
