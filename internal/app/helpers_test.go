package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"moodfit/internal/adapter/memory"
	"moodfit/internal/app"
	"moodfit/internal/domain"
	"moodfit/internal/eventstore"
	"moodfit/internal/observability"
)

// fakeClock is a settable clock shared by every service in a test env.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// mockLookup resolves workouts through a function field.
type mockLookup struct {
	byIDFn func(ctx context.Context, id string) (domain.Workout, bool)
}

func (m *mockLookup) WorkoutByID(ctx context.Context, id string) (domain.Workout, bool) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return domain.Workout{}, false
}

func lookupOf(workouts ...domain.Workout) *mockLookup {
	return &mockLookup{byIDFn: func(_ context.Context, id string) (domain.Workout, bool) {
		for _, w := range workouts {
			if w.ID == id {
				return w, true
			}
		}
		return domain.Workout{}, false
	}}
}

type testEnv struct {
	store     *eventstore.Store
	clock     *fakeClock
	moods     *app.MoodService
	catalog   *app.CatalogService
	stats     *app.StatsService
	failures  *app.FailureService
	sessions  *app.SessionService
	analytics *app.AnalyticsService
}

var envStart = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

// newEnv wires every service over an in-memory store. A nil lookup uses the
// seeded default catalog. The session countdown is driven manually.
func newEnv(t *testing.T, lookup app.WorkoutLookup) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := observability.Discard()
	store := eventstore.New(memory.New(), log)
	clock := newFakeClock(envStart)

	moods := app.NewMoodService(store, app.DefaultMoodTTL)
	moods.SetClock(clock.Now)
	catalog := app.NewCatalogService(store, moods)
	catalog.Seed(ctx)
	if lookup == nil {
		lookup = catalog
	}

	sessionLog := eventstore.NewCollection[domain.WorkoutSession](store, eventstore.KeyWorkoutSessions)
	failureLog := eventstore.NewCollection[domain.FailureEntry](store, eventstore.KeyFailureEntries)
	moodLog := eventstore.NewCollection[domain.MoodEntry](store, eventstore.KeyMoodEntries)

	stats := app.NewStatsService(store, lookup, sessionLog, failureLog, log)
	failures := app.NewFailureService(store, stats)
	failures.SetClock(clock.Now)
	sessions := app.NewSessionService(store, lookup, moods, stats, 0, log)
	sessions.SetClock(clock.Now)
	t.Cleanup(sessions.Close)
	analytics := app.NewAnalyticsService(moodLog, sessionLog, failureLog, stats)
	analytics.SetClock(clock.Now)

	return &testEnv{
		store:     store,
		clock:     clock,
		moods:     moods,
		catalog:   catalog,
		stats:     stats,
		failures:  failures,
		sessions:  sessions,
		analytics: analytics,
	}
}

// completeWorkout runs a whole session for workoutID through Complete.
func (e *testEnv) completeWorkout(t *testing.T, workoutID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := e.sessions.Start(ctx, workoutID); err != nil {
		t.Fatalf("start %s: %v", workoutID, err)
	}
	e.clock.Advance(20 * time.Minute)
	if _, err := e.sessions.Complete(ctx); err != nil {
		t.Fatalf("complete %s: %v", workoutID, err)
	}
	e.clock.Advance(time.Minute)
}
