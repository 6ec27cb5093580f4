package app

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"moodfit/internal/domain"
	"moodfit/internal/eventstore"
)

// StatsService owns UserStats. It is the only writer of the stats record.
type StatsService struct {
	mu       sync.Mutex
	doc      *eventstore.Doc[domain.UserStats]
	workouts WorkoutLookup
	sessions SessionLog
	failures FailureLog
	log      *slog.Logger
}

// NewStatsService creates a StatsService. sessions and failures are only read
// by Rebuild.
func NewStatsService(store *eventstore.Store, workouts WorkoutLookup, sessions SessionLog, failures FailureLog, log *slog.Logger) *StatsService {
	return &StatsService{
		doc:      eventstore.NewDoc(store, eventstore.KeyUserStats, domain.DefaultStats),
		workouts: workouts,
		sessions: sessions,
		failures: failures,
		log:      log,
	}
}

// Stats returns the current stats, or the defaults for a user with no history.
func (s *StatsService) Stats(ctx context.Context) domain.UserStats {
	return s.doc.Get(ctx)
}

// RecordCompletion folds one completed session of workoutID into the stats.
// An unknown workout contributes zero minutes. persist, if not nil, stores
// the completed session; it runs under the same lock as the stats update so
// Rebuild sees either both or neither.
func (s *StatsService) RecordCompletion(ctx context.Context, workoutID string, persist func()) domain.UserStats {
	minutes := s.minutesFor(ctx, workoutID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if persist != nil {
		persist()
	}
	return s.doc.Update(ctx, func(u *domain.UserStats) { u.ApplyCompletion(minutes) })
}

// RecordFailure folds one missed workout into the stats. persist, if not
// nil, stores the failure entry under the stats lock.
func (s *StatsService) RecordFailure(ctx context.Context, persist func()) domain.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if persist != nil {
		persist()
	}
	return s.doc.Update(ctx, func(u *domain.UserStats) { u.ApplyFailure() })
}

func (s *StatsService) minutesFor(ctx context.Context, workoutID string) int {
	w, ok := s.workouts.WorkoutByID(ctx, workoutID)
	if !ok {
		s.log.WarnContext(ctx, "completed session references unknown workout", "workout_id", workoutID)
		return 0
	}
	return w.Duration
}

type statsEvent struct {
	at        time.Time
	failure   bool
	workoutID string
}

// Rebuild replays completed sessions and failures in time order and replaces
// the stored stats with the result. On equal timestamps completions go first.
// It holds the stats lock from the first history read to the final write.
func (s *StatsService) Rebuild(ctx context.Context) domain.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []statsEvent
	for _, sess := range s.sessions.ListAll(ctx) {
		if !sess.Completed {
			continue
		}
		at := sess.StartTime
		if sess.EndTime != nil {
			at = *sess.EndTime
		}
		events = append(events, statsEvent{at: at, workoutID: sess.WorkoutID})
	}
	for _, f := range s.failures.ListAll(ctx) {
		events = append(events, statsEvent{at: f.Date, failure: true})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].at.Equal(events[j].at) {
			return events[i].at.Before(events[j].at)
		}
		return !events[i].failure && events[j].failure
	})

	stats := domain.DefaultStats()
	for _, e := range events {
		if e.failure {
			stats.ApplyFailure()
			continue
		}
		stats.ApplyCompletion(s.minutesFor(ctx, e.workoutID))
	}

	s.doc.Set(ctx, stats)
	return stats
}
