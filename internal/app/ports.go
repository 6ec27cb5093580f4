// Package app holds the application services and business logic.
package app

import (
	"context"
	"time"

	"moodfit/internal/domain"
)

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

// MoodLog reads the mood entry history in insertion order.
type MoodLog interface {
	ListAll(ctx context.Context) []domain.MoodEntry
}

// SessionLog reads the workout session history in insertion order.
type SessionLog interface {
	ListAll(ctx context.Context) []domain.WorkoutSession
}

// FailureLog reads the failure history in insertion order.
type FailureLog interface {
	ListAll(ctx context.Context) []domain.FailureEntry
}

// WorkoutLookup resolves catalog workouts by id.
type WorkoutLookup interface {
	WorkoutByID(ctx context.Context, id string) (domain.Workout, bool)
}

// CurrentMoodSource yields the mood that currently drives recommendations,
// or nil when there is none.
type CurrentMoodSource interface {
	CurrentMood(ctx context.Context) *domain.MoodEntry
}
