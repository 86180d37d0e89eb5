package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/habits/internal/kv"
)

// Storage keys. Each store owns exactly one.
const (
	HabitStorageKey = "habit-storage"
	UIStorageKey    = "ui-storage"
)

// ErrUnsupportedVersion is returned when persisted state was written by a
// newer schema than this build understands.
var ErrUnsupportedVersion = errors.New("unsupported state version")

// envelope is the stored form of a snapshot: {"state": {...}, "version": N}.
// Version 0 is what the first release wrote.
type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// options holds settings shared by both stores.
type options struct {
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option configures a store.
type Option func(*options)

// WithClock overrides the time source. Completion timestamps and the
// location used for calendar-day arithmetic both come from it.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDFunc overrides habit id generation.
func WithIDFunc(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithLogger sets the logger used for persistence events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// persister writes versioned snapshots of one store under one key. After
// the first failure it stops touching storage for the rest of the session.
type persister struct {
	storage  kv.Storage
	key      string
	version  int
	degraded bool
	logger   *zap.Logger
}

func newPersister(storage kv.Storage, key string, version int, logger *zap.Logger) *persister {
	return &persister{
		storage: storage,
		key:     key,
		version: version,
		logger:  logger.With(zap.String("key", key)),
	}
}

// save serialises state and writes it. Callers hold the store lock.
func (p *persister) save(ctx context.Context, state any) error {
	if p.degraded {
		return nil
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", p.key, err)
	}
	data, err := json.Marshal(envelope{State: raw, Version: p.version})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", p.key, err)
	}

	if err := p.storage.SetItem(ctx, p.key, string(data)); err != nil {
		p.degrade(err)
		return fmt.Errorf("persisting %s: %w", p.key, err)
	}

	p.logger.Debug("state persisted", zap.Int("bytes", len(data)))
	return nil
}

// load reads the snapshot. ok is false when nothing was stored yet.
func (p *persister) load(ctx context.Context) (env envelope, ok bool, err error) {
	data, ok, err := p.storage.GetItem(ctx, p.key)
	if err != nil {
		p.degrade(err)
		return envelope{}, false, fmt.Errorf("loading %s: %w", p.key, err)
	}
	if !ok {
		return envelope{}, false, nil
	}

	if err := json.Unmarshal([]byte(data), &env); err != nil {
		p.degrade(err)
		return envelope{}, false, fmt.Errorf("decoding %s: %w", p.key, err)
	}
	if env.Version > p.version {
		err := fmt.Errorf("%s: version %d: %w", p.key, env.Version, ErrUnsupportedVersion)
		p.degrade(err)
		return envelope{}, false, err
	}

	return env, true, nil
}

func (p *persister) degrade(cause error) {
	if p.degraded {
		return
	}
	p.degraded = true
	p.logger.Warn("persistence disabled for this session", zap.Error(cause))
}

// clear deletes the stored snapshot and resumes persisting.
func (p *persister) clear(ctx context.Context) error {
	if err := p.storage.RemoveItem(ctx, p.key); err != nil {
		return fmt.Errorf("removing %s: %w", p.key, err)
	}
	if p.degraded {
		p.logger.Info("persistence re-enabled")
	}
	p.degraded = false
	return nil
}

// stateMigration upgrades a raw state payload by one version.
type stateMigration func(json.RawMessage) (json.RawMessage, error)

// migrate applies steps[v] for every v from the stored version up to target.
func migrate(raw json.RawMessage, from, target int, steps map[int]stateMigration) (json.RawMessage, error) {
	for v := from; v < target; v++ {
		step, ok := steps[v]
		if !ok {
			return nil, fmt.Errorf("no migration from version %d", v)
		}
		var err error
		raw, err = step(raw)
		if err != nil {
			return nil, fmt.Errorf("migrating from version %d: %w", v, err)
		}
	}
	return raw, nil
}
