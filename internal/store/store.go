// Package store holds the nested kanban state and applies invariant-preserving
// mutations to it. Every mutation produces a new immutable snapshot, persists
// it through the Adapter, then publishes it to readers.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/robby/nest/internal/domain"
)

var (
	// ErrCardNotFound indicates the requested card does not exist.
	ErrCardNotFound = errors.New("card not found")
	// ErrColumnNotFound indicates the requested column does not exist.
	ErrColumnNotFound = errors.New("column not found")
	// ErrBoardNotFound indicates the requested board does not exist.
	ErrBoardNotFound = errors.New("board not found")
	// ErrUnsynced indicates the in-memory state is correct but was not written
	// to the durable slot. Flush retries the write.
	ErrUnsynced = errors.New("state not persisted")
)

const defaultSaveTimeout = 5 * time.Second

// Store manages the in-memory board state.
// Mutations that reference a missing card, column or board are no-ops and
// return a nil error; only persistence failures are reported.
type Store struct {
	mu      sync.RWMutex
	state   domain.AppState
	adapter *Adapter // nil means in-memory only
	synced  bool

	logger      *log.Logger
	newID       func() string
	now         func() time.Time
	saveTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for no-ops, loads and save failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the UUID generator used for new cards and columns.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock replaces the clock used to stamp exports.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithSaveTimeout bounds each write to the durable slot.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.saveTimeout = d
		}
	}
}

// New creates an in-memory Store holding the default state.
func New(opts ...Option) *Store {
	s := &Store{
		state:       domain.DefaultState(),
		synced:      true,
		logger:      log.New(io.Discard),
		newID:       uuid.NewString,
		now:         time.Now,
		saveTimeout: defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Store backed by adapter and loads the persisted snapshot.
// A missing, unparseable or inconsistent snapshot is replaced by the default
// state; that fallback is logged, not returned.
func Open(adapter *Adapter, opts ...Option) *Store {
	s := New(opts...)
	s.adapter = adapter

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if state, ok := adapter.Load(ctx); ok {
		s.state = state
		s.logger.Info("loaded board state",
			"boards", len(state.Boards), "columns", len(state.Columns), "cards", len(state.Cards))
	} else {
		s.synced = false
	}
	return s
}

// State returns a deep copy of the current snapshot.
func (s *Store) State() domain.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Synced reports whether the current snapshot has been written to the slot.
func (s *Store) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.synced
}

// Flush writes the current snapshot to the slot.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked("flush", s.state)
}

// Close releases the underlying slot.
func (s *Store) Close() error {
	if s.adapter == nil {
		return nil
	}
	return s.adapter.Close()
}

// apply runs a pure transition and commits the result if it changed anything.
func (s *Store) apply(op string, fn func(domain.AppState) (domain.AppState, bool), fields ...any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(s.state)
	if !changed {
		s.logger.Debug("no-op", append([]any{"op", op}, fields...)...)
		return false, nil
	}
	return true, s.commitLocked(op, next)
}

// commitLocked persists next and then publishes it. The new snapshot is
// published even when the write fails.
func (s *Store) commitLocked(op string, next domain.AppState) error {
	err := s.saveLocked(op, next)
	s.state = next
	return err
}

func (s *Store) saveLocked(op string, state domain.AppState) error {
	if s.adapter == nil {
		s.synced = true
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.adapter.Save(ctx, state); err != nil {
		s.synced = false
		s.logger.Error("save failed", "op", op, "err", err)
		return fmt.Errorf("%w: %w", ErrUnsynced, err)
	}
	s.synced = true
	return nil
}
