package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"moodfit/internal/domain"
	"moodfit/internal/eventstore"
)

// Session lifecycle errors.
var (
	ErrSessionActive   = errors.New("a workout session is already in progress")
	ErrNoActiveSession = errors.New("no workout session in progress")
	ErrWorkoutNotFound = errors.New("workout not found")
)

// Phase is the position of the live session in its state machine.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseActive     Phase = "active"
	PhaseResting    Phase = "resting"
	PhaseComplete   Phase = "complete"
)

// SessionState is a snapshot of the live session.
type SessionState struct {
	Active        bool             `json:"active"`
	SessionID     string           `json:"sessionId,omitempty"`
	WorkoutID     string           `json:"workoutId,omitempty"`
	WorkoutName   string           `json:"workoutName,omitempty"`
	Phase         Phase            `json:"phase"`
	Paused        bool             `json:"paused"`
	ExerciseIndex int              `json:"exerciseIndex"`
	ExerciseCount int              `json:"exerciseCount"`
	Exercise      *domain.Exercise `json:"exercise,omitempty"`
	NextExercise  *domain.Exercise `json:"nextExercise,omitempty"`
	Remaining     int              `json:"remainingSeconds"`
	Countdown     string           `json:"countdown"`
	Progress      float64          `json:"progress"`
	Completed     []string         `json:"exercisesCompleted"`
}

type liveSession struct {
	record    domain.WorkoutSession
	workout   domain.Workout
	idx       int
	phase     Phase
	remaining int
	paused    bool
	cancel    context.CancelFunc
}

// SessionService drives the single in-progress workout session: exercise and
// rest countdowns, progression, and the completion handoff to stats.
//
// With a positive tick the countdown runs on its own goroutine; with a zero
// tick callers drive it through Tick.
type SessionService struct {
	mu       sync.Mutex
	sessions *eventstore.Collection[domain.WorkoutSession, *domain.WorkoutSession]
	catalog  WorkoutLookup
	moods    CurrentMoodSource
	stats    *StatsService
	tick     time.Duration
	log      *slog.Logger
	now      Clock

	live *liveSession
}

// NewSessionService creates a SessionService. moods may be nil.
func NewSessionService(store *eventstore.Store, catalog WorkoutLookup, moods CurrentMoodSource, stats *StatsService, tick time.Duration, log *slog.Logger) *SessionService {
	return &SessionService{
		sessions: eventstore.NewCollection[domain.WorkoutSession](store, eventstore.KeyWorkoutSessions),
		catalog:  catalog,
		moods:    moods,
		stats:    stats,
		tick:     tick,
		log:      log,
		now:      time.Now,
	}
}

// Sessions returns the full session history in insertion order.
func (s *SessionService) Sessions(ctx context.Context) []domain.WorkoutSession {
	return s.sessions.ListAll(ctx)
}

// Start opens a session for workoutID. Any open session left in the store is
// closed as abandoned first. Starting while a live session is running fails
// with ErrSessionActive.
func (s *SessionService) Start(ctx context.Context, workoutID string) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live != nil && s.live.phase != PhaseComplete {
		return SessionState{}, ErrSessionActive
	}
	workout, ok := s.catalog.WorkoutByID(ctx, workoutID)
	if !ok {
		return SessionState{}, ErrWorkoutNotFound
	}
	s.dropLive()

	now := s.now().UTC()
	for _, orphan := range s.abandonOpen(ctx, now, func(domain.WorkoutSession) bool { return true }) {
		s.log.InfoContext(ctx, "abandoned open session", "session_id", orphan.ID, "workout_id", orphan.WorkoutID)
	}

	var before *domain.MoodEntry
	if s.moods != nil {
		if m := s.moods.CurrentMood(ctx); m != nil {
			snapshot := *m
			before = &snapshot
		}
	}
	record := s.sessions.Append(ctx, domain.WorkoutSession{
		WorkoutID:          workout.ID,
		StartTime:          now,
		MoodBefore:         before,
		ExercisesCompleted: []string{},
	})

	live := &liveSession{record: record, workout: workout, phase: PhaseActive}
	s.live = live
	s.log.DebugContext(ctx, "session started", "session_id", record.ID, "workout_id", workout.ID)

	if len(workout.Exercises) == 0 {
		s.finish(ctx)
		return s.stateLocked(), nil
	}
	live.remaining = workout.Exercises[0].Timing.CountdownSeconds()

	if s.tick > 0 {
		runCtx, cancel := context.WithCancel(context.Background())
		live.cancel = cancel
		go s.run(runCtx, live)
	}
	return s.stateLocked(), nil
}

func (s *SessionService) run(ctx context.Context, live *liveSession) {
	t := time.NewTicker(s.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.mu.Lock()
			if s.live == live {
				s.tickLocked(ctx)
			}
			s.mu.Unlock()
		}
	}
}

// Tick advances the countdown by one second. At zero the session moves to
// its next phase exactly once.
func (s *SessionService) Tick(ctx context.Context) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return SessionState{}, ErrNoActiveSession
	}
	s.tickLocked(ctx)
	return s.stateLocked(), nil
}

func (s *SessionService) tickLocked(ctx context.Context) {
	l := s.live
	if l.paused || l.phase == PhaseComplete {
		return
	}
	if l.remaining > 0 {
		l.remaining--
	}
	if l.remaining == 0 {
		s.advance(ctx)
	}
}

// Advance skips the rest of the current exercise or rest period.
func (s *SessionService) Advance(ctx context.Context) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil || s.live.phase == PhaseComplete {
		return SessionState{}, ErrNoActiveSession
	}
	s.advance(ctx)
	return s.stateLocked(), nil
}

func (s *SessionService) advance(ctx context.Context) {
	l := s.live
	switch l.phase {
	case PhaseActive:
		ex := l.workout.Exercises[l.idx]
		l.record.ExercisesCompleted = append(l.record.ExercisesCompleted, ex.ID)
		done := slices.Clone(l.record.ExercisesCompleted)
		s.sessions.UpdateByID(ctx, l.record.ID, func(r *domain.WorkoutSession) { r.ExercisesCompleted = done })

		if ex.RestTime > 0 {
			l.phase = PhaseResting
			l.remaining = ex.RestTime
			s.log.DebugContext(ctx, "session resting", "session_id", l.record.ID, "seconds", ex.RestTime)
			return
		}
		s.next(ctx)
	case PhaseResting:
		s.next(ctx)
	}
}

func (s *SessionService) next(ctx context.Context) {
	l := s.live
	l.idx++
	if l.idx >= len(l.workout.Exercises) {
		s.finish(ctx)
		return
	}
	l.phase = PhaseActive
	l.remaining = l.workout.Exercises[l.idx].Timing.CountdownSeconds()
	s.log.DebugContext(ctx, "session exercise", "session_id", l.record.ID, "index", l.idx)
}

// finish marks the live session completed. It runs at most once per session.
func (s *SessionService) finish(ctx context.Context) {
	l := s.live
	if l.phase == PhaseComplete {
		return
	}
	l.phase = PhaseComplete
	l.remaining = 0
	l.paused = false
	if l.cancel != nil {
		l.cancel()
	}

	end := s.now().UTC()
	l.record.Completed = true
	l.record.EndTime = &end
	l.record.ExercisesCompleted = l.workout.ExerciseIDs()

	var after *domain.MoodEntry
	if s.moods != nil {
		if m := s.moods.CurrentMood(ctx); m != nil && !m.Timestamp.Before(l.record.StartTime) {
			snapshot := *m
			after = &snapshot
		}
	}
	l.record.MoodAfter = after

	final := l.record
	final.ExercisesCompleted = slices.Clone(l.record.ExercisesCompleted)
	stats := s.stats.RecordCompletion(ctx, l.workout.ID, func() {
		s.sessions.UpdateByID(ctx, l.record.ID, func(r *domain.WorkoutSession) {
			r.Completed = true
			r.EndTime = final.EndTime
			r.ExercisesCompleted = final.ExercisesCompleted
			r.MoodAfter = final.MoodAfter
		})
	})
	s.log.InfoContext(ctx, "session completed",
		"session_id", l.record.ID,
		"workout_id", l.workout.ID,
		"total_workouts", stats.TotalWorkouts,
		"discipline_score", stats.DisciplineScore,
	)
}

// Pause freezes the countdown.
func (s *SessionService) Pause(context.Context) (SessionState, error) {
	return s.setPaused(true)
}

// Resume restarts a paused countdown.
func (s *SessionService) Resume(context.Context) (SessionState, error) {
	return s.setPaused(false)
}

func (s *SessionService) setPaused(paused bool) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil || s.live.phase == PhaseComplete {
		return SessionState{}, ErrNoActiveSession
	}
	s.live.paused = paused
	return s.stateLocked(), nil
}

// Complete finishes the live session early, crediting every exercise.
// Completing an already complete session returns its state unchanged.
func (s *SessionService) Complete(ctx context.Context) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return SessionState{}, ErrNoActiveSession
	}
	s.finish(ctx)
	return s.stateLocked(), nil
}

// Quit stops the live session without completing it. The stored record stays
// open until the next Start or ReconcileOrphans closes it.
func (s *SessionService) Quit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return ErrNoActiveSession
	}
	s.log.DebugContext(ctx, "session quit", "session_id", s.live.record.ID, "phase", s.live.phase)
	s.dropLive()
	return nil
}

// Close stops any running countdown. Stored records are left as they are.
func (s *SessionService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropLive()
}

func (s *SessionService) dropLive() {
	if s.live != nil && s.live.cancel != nil {
		s.live.cancel()
	}
	s.live = nil
}

// ReconcileOrphans closes open records started more than olderThan ago as
// abandoned, skipping the live session. It returns the closed records.
func (s *SessionService) ReconcileOrphans(ctx context.Context, olderThan time.Duration) []domain.WorkoutSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	liveID := ""
	if s.live != nil {
		liveID = s.live.record.ID
	}
	return s.abandonOpen(ctx, now, func(r domain.WorkoutSession) bool {
		return r.ID != liveID && now.Sub(r.StartTime) >= olderThan
	})
}

func (s *SessionService) abandonOpen(ctx context.Context, now time.Time, pred func(domain.WorkoutSession) bool) []domain.WorkoutSession {
	return s.sessions.UpdateWhere(ctx,
		func(r domain.WorkoutSession) bool { return r.Open() && pred(r) },
		func(r *domain.WorkoutSession) {
			end := now
			r.Abandoned = true
			r.EndTime = &end
		},
	)
}

// State returns a snapshot of the live session. Without one, Active is false.
func (s *SessionService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *SessionService) stateLocked() SessionState {
	l := s.live
	if l == nil {
		return SessionState{Phase: PhaseNotStarted, Countdown: FormatCountdown(0), Completed: []string{}}
	}
	n := len(l.workout.Exercises)
	st := SessionState{
		Active:        l.phase != PhaseComplete,
		SessionID:     l.record.ID,
		WorkoutID:     l.workout.ID,
		WorkoutName:   l.workout.Name,
		Phase:         l.phase,
		Paused:        l.paused,
		ExerciseIndex: l.idx,
		ExerciseCount: n,
		Remaining:     l.remaining,
		Countdown:     FormatCountdown(l.remaining),
		Completed:     slices.Clone(l.record.ExercisesCompleted),
	}
	if st.Completed == nil {
		st.Completed = []string{}
	}
	if l.idx < n {
		ex := l.workout.Exercises[l.idx]
		st.Exercise = &ex
		if l.idx+1 < n {
			nx := l.workout.Exercises[l.idx+1]
			st.NextExercise = &nx
		}
	}
	switch {
	case l.phase == PhaseComplete:
		st.Progress = 100
	case n > 0:
		st.Progress = math.Round(float64(len(st.Completed))/float64(n)*1000) / 10
	}
	return st
}

// FormatCountdown renders seconds as m:ss.
func FormatCountdown(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
