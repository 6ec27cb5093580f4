package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"moodfit/internal/adapter/memory"
	"moodfit/internal/app"
	"moodfit/internal/domain"
	"moodfit/internal/eventstore"
	"moodfit/internal/observability"
)

func fiveStepWorkout() domain.Workout {
	w := domain.Workout{ID: "five", Name: "Five Step", Type: domain.WorkoutStrength, Duration: 10}
	for i := range 5 {
		rest := 0
		if i == 4 {
			rest = 15
		}
		w.Exercises = append(w.Exercises, domain.Exercise{
			ID:       fmt.Sprintf("x%d", i),
			Name:     fmt.Sprintf("Step %d", i),
			Timing:   domain.Timed(2),
			RestTime: rest,
		})
	}
	return w
}

func TestSession_TicksThroughEveryPhaseOnce(t *testing.T) {
	ctx := context.Background()
	w := fiveStepWorkout()
	env := newEnv(t, lookupOf(w))

	st, err := env.sessions.Start(ctx, w.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type step struct {
		phase app.Phase
		idx   int
	}
	visited := []step{{st.Phase, st.ExerciseIndex}}
	for range 100 {
		st, err = env.sessions.Tick(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if last := visited[len(visited)-1]; last.phase != st.Phase || last.idx != st.ExerciseIndex {
			visited = append(visited, step{st.Phase, st.ExerciseIndex})
		}
		if st.Remaining < 0 {
			t.Fatalf("countdown went negative: %d", st.Remaining)
		}
	}

	want := []step{
		{app.PhaseActive, 0},
		{app.PhaseActive, 1},
		{app.PhaseActive, 2},
		{app.PhaseActive, 3},
		{app.PhaseActive, 4},
		{app.PhaseResting, 4},
		{app.PhaseComplete, 5},
	}
	if len(visited) != len(want) {
		t.Fatalf("expected %d states, got %v", len(want), visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("state %d: expected %v, got %v", i, want[i], visited[i])
		}
	}

	if got := env.stats.Stats(ctx).TotalWorkouts; got != 1 {
		t.Errorf("expected exactly one completion, got %d", got)
	}
	records := env.sessions.Sessions(ctx)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if !rec.Completed || rec.EndTime == nil {
		t.Errorf("expected finalized record, got %+v", rec)
	}
	if len(rec.ExercisesCompleted) != 5 || rec.ExercisesCompleted[4] != "x4" {
		t.Errorf("expected all exercise ids, got %v", rec.ExercisesCompleted)
	}
	if st.Progress != 100 {
		t.Errorf("expected progress 100, got %v", st.Progress)
	}
}

func TestSession_PauseFreezesCountdown(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	st, err := env.sessions.Start(ctx, "w1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start := st.Remaining

	if _, err := env.sessions.Pause(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range 3 {
		st, _ = env.sessions.Tick(ctx)
	}
	if st.Remaining != start || !st.Paused {
		t.Errorf("expected frozen countdown at %d, got %d (paused=%v)", start, st.Remaining, st.Paused)
	}

	if _, err := env.sessions.Resume(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st, _ = env.sessions.Tick(ctx)
	if st.Remaining != start-1 {
		t.Errorf("expected %d after resume, got %d", start-1, st.Remaining)
	}
	if st.Phase != app.PhaseActive {
		t.Errorf("expected active phase, got %s", st.Phase)
	}
}

func TestSession_AdvanceSkipsRest(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	if _, err := env.sessions.Start(ctx, "w1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st, err := env.sessions.Advance(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Phase != app.PhaseResting || st.Remaining != 15 {
		t.Fatalf("expected 15s rest, got %s %d", st.Phase, st.Remaining)
	}
	if len(st.Completed) != 1 || st.Completed[0] != "e1" {
		t.Errorf("expected e1 completed, got %v", st.Completed)
	}

	st, err = env.sessions.Advance(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Phase != app.PhaseActive || st.ExerciseIndex != 1 || st.Countdown != "0:45" {
		t.Errorf("expected exercise 1 at 0:45, got %s %d %s", st.Phase, st.ExerciseIndex, st.Countdown)
	}

	rec := env.sessions.Sessions(ctx)[0]
	if len(rec.ExercisesCompleted) != 1 {
		t.Errorf("expected progress persisted, got %v", rec.ExercisesCompleted)
	}
}

func TestSession_QuitLeavesRecordOpen(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	if _, err := env.sessions.Start(ctx, "w1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env.sessions.Tick(ctx) //nolint:errcheck
	if err := env.sessions.Quit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := env.sessions.Sessions(ctx)[0]
	if rec.Completed || rec.EndTime != nil {
		t.Errorf("expected open record, got %+v", rec)
	}
	if got := env.stats.Stats(ctx); got != domain.DefaultStats() {
		t.Errorf("expected unchanged stats, got %+v", got)
	}
	if st := env.sessions.State(); st.Active || st.Phase != app.PhaseNotStarted {
		t.Errorf("expected no live session, got %+v", st)
	}
	if err := env.sessions.Quit(ctx); !errors.Is(err, app.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSession_StartAbandonsOrphans(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	if _, err := env.sessions.Start(ctx, "w1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.sessions.Quit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env.clock.Advance(time.Minute)
	if _, err := env.sessions.Start(ctx, "w2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := env.sessions.Sessions(ctx)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].Abandoned || records[0].Completed || records[0].EndTime == nil {
		t.Errorf("expected first record abandoned, got %+v", records[0])
	}
	open := 0
	for _, r := range records {
		if r.Open() {
			open++
		}
	}
	if open != 1 {
		t.Errorf("expected exactly one open session, got %d", open)
	}
	if got := env.stats.Stats(ctx); got != domain.DefaultStats() {
		t.Errorf("abandoning must not touch stats, got %+v", got)
	}
}

func TestSession_StartErrors(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	if _, err := env.sessions.Start(ctx, "missing"); !errors.Is(err, app.ErrWorkoutNotFound) {
		t.Errorf("expected ErrWorkoutNotFound, got %v", err)
	}
	if _, err := env.sessions.Start(ctx, "w1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.sessions.Start(ctx, "w2"); !errors.Is(err, app.ErrSessionActive) {
		t.Errorf("expected ErrSessionActive, got %v", err)
	}
	if n := len(env.sessions.Sessions(ctx)); n != 1 {
		t.Errorf("expected 1 record, got %d", n)
	}
}

func TestSession_CompleteWithoutSession(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	if _, err := env.sessions.Complete(ctx); !errors.Is(err, app.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	for name, call := range map[string]func(context.Context) (app.SessionState, error){
		"advance": env.sessions.Advance,
		"pause":   env.sessions.Pause,
		"resume":  env.sessions.Resume,
		"tick":    env.sessions.Tick,
	} {
		if _, err := call(ctx); !errors.Is(err, app.ErrNoActiveSession) {
			t.Errorf("%s: expected ErrNoActiveSession, got %v", name, err)
		}
	}
	if got := env.stats.Stats(ctx); got != domain.DefaultStats() {
		t.Errorf("expected unchanged stats, got %+v", got)
	}
}

func TestSession_CompleteCountsOnce(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	if _, err := env.moods.Log(ctx, domain.MoodCalm, 3, "w3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.sessions.Start(ctx, "w3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range 2 {
		st, err := env.sessions.Complete(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.Phase != app.PhaseComplete || st.Active {
			t.Errorf("expected complete state, got %+v", st)
		}
	}

	s := env.stats.Stats(ctx)
	if s.TotalWorkouts != 1 || s.TotalMinutes != 35 {
		t.Errorf("expected one 35 minute workout, got %+v", s)
	}
	rec := env.sessions.Sessions(ctx)[0]
	if rec.MoodBefore == nil || rec.MoodBefore.Mood != domain.MoodCalm {
		t.Errorf("expected calm mood snapshot, got %+v", rec.MoodBefore)
	}
	if len(rec.ExercisesCompleted) != 5 {
		t.Errorf("expected all 5 exercises credited, got %v", rec.ExercisesCompleted)
	}

	// A finished session does not block the next one.
	if _, err := env.sessions.Start(ctx, "w1"); err != nil {
		t.Errorf("unexpected error starting after completion: %v", err)
	}
}

func TestSession_EmptyWorkoutCompletesOnStart(t *testing.T) {
	ctx := context.Background()
	empty := domain.Workout{ID: "empty", Name: "Nothing", Type: domain.WorkoutRecovery, Duration: 5}
	env := newEnv(t, lookupOf(empty))

	st, err := env.sessions.Start(ctx, empty.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Phase != app.PhaseComplete {
		t.Errorf("expected complete, got %s", st.Phase)
	}
	if s := env.stats.Stats(ctx); s.TotalWorkouts != 1 || s.TotalMinutes != 5 {
		t.Errorf("unexpected stats: %+v", s)
	}
}

func TestSession_ReconcileOrphans(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	if _, err := env.sessions.Start(ctx, "w1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.sessions.Quit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.clock.Advance(time.Hour)
	if got := env.sessions.ReconcileOrphans(ctx, 2*time.Hour); len(got) != 0 {
		t.Errorf("expected recent orphan to be kept, got %d closed", len(got))
	}
	env.clock.Advance(2 * time.Hour)
	got := env.sessions.ReconcileOrphans(ctx, 2*time.Hour)
	if len(got) != 1 || !got[0].Abandoned {
		t.Fatalf("expected one abandoned session, got %+v", got)
	}

	if _, err := env.sessions.Start(ctx, "w2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env.clock.Advance(3 * time.Hour)
	if got := env.sessions.ReconcileOrphans(ctx, 2*time.Hour); len(got) != 0 {
		t.Errorf("live session must not be reconciled, got %+v", got)
	}
}

func TestSession_BackgroundTicker(t *testing.T) {
	ctx := context.Background()
	log := observability.Discard()
	store := eventstore.New(memory.New(), log)
	quick := domain.Workout{
		ID: "quick", Name: "Quick", Type: domain.WorkoutCardio, Duration: 1,
		Exercises: []domain.Exercise{{ID: "q1", Name: "Hop", Timing: domain.Timed(1)}},
	}
	lookup := lookupOf(quick)
	sessionLog := eventstore.NewCollection[domain.WorkoutSession](store, eventstore.KeyWorkoutSessions)
	failureLog := eventstore.NewCollection[domain.FailureEntry](store, eventstore.KeyFailureEntries)
	stats := app.NewStatsService(store, lookup, sessionLog, failureLog, log)
	svc := app.NewSessionService(store, lookup, nil, stats, time.Millisecond, log)
	defer svc.Close()

	if _, err := svc.Start(ctx, quick.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for svc.State().Phase != app.PhaseComplete {
		if time.Now().After(deadline) {
			t.Fatal("session did not complete on its own")
		}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	if got := stats.Stats(ctx).TotalWorkouts; got != 1 {
		t.Errorf("expected one completion, got %d", got)
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{45, "0:45"},
		{90, "1:30"},
		{600, "10:00"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := app.FormatCountdown(tt.in); got != tt.want {
			t.Errorf("FormatCountdown(%d): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
