package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"moodfit/internal/app"
	"moodfit/internal/domain"
)

func TestMoodLog_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mood      domain.Mood
		intensity int
		wantErr   error
	}{
		{"valid", domain.MoodCalm, 3, nil},
		{"bounds low", domain.MoodTired, 1, nil},
		{"bounds high", domain.MoodStressed, 5, nil},
		{"unknown mood", domain.Mood("grumpy"), 3, domain.ErrInvalidMood},
		{"intensity zero", domain.MoodCalm, 0, domain.ErrInvalidIntensity},
		{"intensity six", domain.MoodCalm, 6, domain.ErrInvalidIntensity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, nil)
			entry, err := env.moods.Log(context.Background(), tt.mood, tt.intensity, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if n := len(env.moods.Entries(context.Background())); n != 0 {
					t.Errorf("rejected mood was stored (%d entries)", n)
				}
				return
			}
			if entry.ID == "" {
				t.Error("expected generated id")
			}
			if !entry.Timestamp.Equal(envStart) {
				t.Errorf("expected timestamp %v, got %v", envStart, entry.Timestamp)
			}
		})
	}
}

func TestCurrentMood_ReplacedAndExpires(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	if m := env.moods.CurrentMood(ctx); m != nil {
		t.Fatalf("expected no current mood, got %+v", m)
	}
	if _, err := env.moods.Log(ctx, domain.MoodTired, 2, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env.clock.Advance(time.Hour)
	if _, err := env.moods.Log(ctx, domain.MoodEnergized, 4, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := env.moods.CurrentMood(ctx)
	if m == nil || m.Mood != domain.MoodEnergized {
		t.Fatalf("expected energized, got %+v", m)
	}

	env.clock.Advance(app.DefaultMoodTTL + time.Second)
	if m := env.moods.CurrentMood(ctx); m != nil {
		t.Errorf("expected stale mood to expire, got %+v", m)
	}
	if n := len(env.moods.Entries(ctx)); n != 2 {
		t.Errorf("expected 2 history entries, got %d", n)
	}
}
