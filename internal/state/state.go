// Package state owns the in-memory application state: the three
// collections and the identity of the session user. Every change goes
// through Mutate, which persists the new snapshot before it becomes
// visible.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-fieldtrack/internal/clock"
	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/shared/apperror"
	"go-fieldtrack/internal/store"

	"go.uber.org/zap"
)

// Outcome labels a finished mutation.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// Recorder receives mutation and save measurements.
type Recorder interface {
	ObserveMutation(op string, outcome Outcome)
	ObserveSave(d time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMutation(string, Outcome)  {}
func (nopRecorder) ObserveSave(time.Duration, error) {}

type Option func(*State)

func WithLogger(logger *zap.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *State) {
		if r != nil {
			s.recorder = r
		}
	}
}

type State struct {
	mu       sync.RWMutex
	store    store.Store
	clock    clock.Clock
	logger   *zap.Logger
	recorder Recorder

	snap      domain.Snapshot
	sessionID string
}

// Load reads the stored snapshot once. A missing or unreadable snapshot is
// replaced by the seed data, which is written back immediately. Any other
// store error is returned.
func Load(ctx context.Context, st store.Store, clk clock.Clock, opts ...Option) (*State, error) {
	s := &State{
		store:    st,
		clock:    clk,
		logger:   zap.L().Named("state"),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}

	today := clock.Today(clk)
	snap, err := st.Load(ctx)
	var decodeErr *store.DecodeError
	switch {
	case err == nil:
		s.snap = withDefaults(snap, today)
		s.logger.Info("state loaded",
			zap.Int("users", len(s.snap.Users)),
			zap.Int("tasks", len(s.snap.Tasks)),
			zap.Int("attendance", len(s.snap.Attendance)),
		)
		return s, nil
	case errors.Is(err, store.ErrNotFound):
		s.logger.Info("no stored state, starting from seed data")
	case errors.As(err, &decodeErr):
		s.logger.Warn("stored state is unreadable, starting from seed data", zap.Error(err))
	default:
		return nil, err
	}

	s.snap = Seed(today)
	if err := st.Save(ctx, s.snap); err != nil {
		s.logger.Warn("failed to persist seed data", zap.Error(err))
	}
	return s, nil
}

// withDefaults replaces collections stored as null: users and tasks fall
// back to the seed, attendance to empty.
func withDefaults(snap domain.Snapshot, today string) domain.Snapshot {
	if snap.Users == nil {
		snap.Users = SeedUsers()
	}
	if snap.Tasks == nil {
		snap.Tasks = SeedTasks(today)
	}
	if snap.Attendance == nil {
		snap.Attendance = []domain.AttendanceRecord{}
	}
	return snap
}

func (s *State) Clock() clock.Clock {
	return s.clock
}

// View calls fn with the current snapshot under a read lock. fn must not
// retain or modify it.
func (s *State) View(fn func(snap domain.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.snap)
}

// Snapshot returns a deep copy of the current state.
func (s *State) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Mutate applies fn to a copy of the state and saves the result. The copy
// replaces the current state only when both fn and the save succeed; an
// error from fn is returned unchanged, a save failure as ErrPersistence.
// Mutations are serialized.
func (s *State) Mutate(ctx context.Context, op string, fn func(snap *domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, op, fn)
}

// MutateAs is Mutate on behalf of userID. It fails with ErrSessionChanged,
// without calling fn, when userID is no longer the session user.
func (s *State) MutateAs(ctx context.Context, op, userID string, fn func(snap *domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID == "" || s.sessionID != userID {
		s.recorder.ObserveMutation(op, OutcomeRejected)
		return apperror.ErrSessionChanged
	}
	return s.apply(ctx, op, fn)
}

func (s *State) apply(ctx context.Context, op string, fn func(snap *domain.Snapshot) error) error {
	next := s.snap.Clone()
	if err := fn(&next); err != nil {
		s.recorder.ObserveMutation(op, OutcomeRejected)
		return err
	}

	start := time.Now()
	err := s.store.Save(ctx, next)
	s.recorder.ObserveSave(time.Since(start), err)
	if err != nil {
		s.recorder.ObserveMutation(op, OutcomeFailed)
		s.logger.Error("failed to persist state", zap.String("op", op), zap.Error(err))
		return apperror.WithCause(apperror.ErrPersistence, err)
	}

	s.snap = next
	s.recorder.ObserveMutation(op, OutcomeApplied)
	return nil
}

// SetSession makes userID the session identity. The session is not
// persisted.
func (s *State) SetSession(userID string) {
	s.mu.Lock()
	s.sessionID = userID
	s.mu.Unlock()
}

func (s *State) ClearSession() {
	s.SetSession("")
}

// Session returns the session user as currently stored in the roster.
func (s *State) Session() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sessionID == "" {
		return domain.User{}, false
	}
	u, ok := s.snap.FindUser(s.sessionID)
	if !ok {
		return domain.User{}, false
	}
	return u.Clone(), true
}
