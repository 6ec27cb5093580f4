// Package eventstore keeps append-only event collections and single-record
// documents on top of a domain.KVStore.
//
// Storage failures never reach the caller. Reads that fail or find corrupt
// data fall back to the empty value for the key, and failed writes are
// logged and dropped so the store keeps the state of the last successful
// write. A read that fails outright also suppresses the write that would
// have followed it, so a transient outage cannot clobber history.
package eventstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"moodfit/internal/domain"
)

// Storage keys.
const (
	KeyMoodEntries     = "moodfit_mood_entries"
	KeyWorkouts        = "moodfit_workouts"
	KeyWorkoutSessions = "moodfit_workout_sessions"
	KeyFailureEntries  = "moodfit_failure_entries"
	KeyUserStats       = "moodfit_user_stats"
	KeyCurrentMood     = "moodfit_current_mood"
)

type readResult int

const (
	readOK readResult = iota
	readMissing
	readCorrupt
	readFailed
)

// Store serializes records as JSON and guards every key with its own mutex.
type Store struct {
	kv    domain.KVStore
	log   *slog.Logger
	newID func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store over kv.
func New(kv domain.KVStore, log *slog.Logger) *Store {
	return &Store{
		kv:    kv,
		log:   log,
		newID: uuid.NewString,
		locks: make(map[string]*sync.Mutex),
	}
}

// lock acquires the mutex for key and returns its release func.
func (s *Store) lock(key string) func() {
	s.mu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *Store) read(ctx context.Context, key string, dst any) readResult {
	b, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.WarnContext(ctx, "storage read failed", "key", key, "err", err)
		return readFailed
	}
	if !found || len(b) == 0 {
		return readMissing
	}
	if err := json.Unmarshal(b, dst); err != nil {
		s.log.WarnContext(ctx, "corrupt record, using default", "key", key, "err", err)
		return readCorrupt
	}
	return readOK
}

func (s *Store) write(ctx context.Context, key string, v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.ErrorContext(ctx, "encode record", "key", key, "err", err)
		return false
	}
	if err := s.kv.Set(ctx, key, b); err != nil {
		s.log.WarnContext(ctx, "storage write failed, change dropped", "key", key, "err", err)
		return false
	}
	return true
}

// Reset removes every key from the backing store.
func (s *Store) Reset(ctx context.Context) bool {
	if err := s.kv.RemoveAll(ctx); err != nil {
		s.log.WarnContext(ctx, "storage reset failed", "err", err)
		return false
	}
	return true
}
