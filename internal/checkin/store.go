package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultStorageKey is the key the attendance record is stored under.
const DefaultStorageKey = "attendanceState-v2"

var (
	// ErrNotFound is returned by Storage.Get when nothing is stored under the key.
	ErrNotFound = errors.New("not found")

	errNotObject = errors.New("stored state is not an object")
)

// Storage is a durable key-value store holding opaque records.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// StateStore is the only path between the attendance state and Storage.
type StateStore struct {
	storage Storage
	key     string
	logger  *slog.Logger
}

func NewStateStore(storage Storage, key string, logger *slog.Logger) *StateStore {
	if key == "" {
		key = DefaultStorageKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StateStore{storage: storage, key: key, logger: logger}
}

// Load returns the persisted state. It never fails: a missing record yields
// the default state and an unreadable one is logged and replaced by it.
func (s *StateStore) Load(ctx context.Context) State {
	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) || (err == nil && len(data) == 0) {
		return DefaultState()
	}
	if err != nil {
		s.logger.Warn("loading attendance state", "key", s.key, "error", err)
		return DefaultState()
	}

	st, err := DecodeState(data)
	if err != nil {
		s.logger.Warn("discarding unreadable attendance state", "key", s.key, "error", err)
		return DefaultState()
	}
	return st
}

// Save overwrites the stored record with st.
func (s *StateStore) Save(ctx context.Context, st State) error {
	data, err := st.Encode()
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := s.storage.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("writing state %q: %w", s.key, err)
	}
	return nil
}

// AddAttendee applies one check-in to st and persists the result. The
// returned state is valid even when the error is not nil; the caller
// validates name and team beforehand.
func (s *StateStore) AddAttendee(ctx context.Context, st State, name, team string, now time.Time) (State, error) {
	next := st.WithAttendee(name, team, now)
	return next, s.Save(ctx, next)
}
