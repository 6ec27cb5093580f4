package app

import (
	"context"
	"time"

	"moodfit/internal/domain"
	"moodfit/internal/eventstore"
)

// DefaultMoodTTL is how long a logged mood stays current.
const DefaultMoodTTL = 12 * time.Hour

// MoodService logs moods and tracks the current mood slot.
type MoodService struct {
	entries *eventstore.Collection[domain.MoodEntry, *domain.MoodEntry]
	current *eventstore.Doc[*domain.MoodEntry]
	ttl     time.Duration
	now     Clock
}

// NewMoodService creates a MoodService on store. A non-positive ttl keeps
// the current mood forever.
func NewMoodService(store *eventstore.Store, ttl time.Duration) *MoodService {
	return &MoodService{
		entries: eventstore.NewCollection[domain.MoodEntry](store, eventstore.KeyMoodEntries),
		current: eventstore.NewDoc(store, eventstore.KeyCurrentMood, func() *domain.MoodEntry { return nil }),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Log validates and appends a mood entry, then makes it the current mood.
// workoutID optionally links the entry to a workout.
func (s *MoodService) Log(ctx context.Context, mood domain.Mood, intensity int, workoutID string) (domain.MoodEntry, error) {
	if err := domain.ValidateMood(mood, intensity); err != nil {
		return domain.MoodEntry{}, err
	}
	entry := s.entries.Append(ctx, domain.MoodEntry{
		Mood:      mood,
		Intensity: intensity,
		Timestamp: s.now().UTC(),
		WorkoutID: workoutID,
	})
	s.current.Set(ctx, &entry)
	return entry, nil
}

// CurrentMood returns the most recent mood if it has not gone stale.
func (s *MoodService) CurrentMood(ctx context.Context) *domain.MoodEntry {
	m := s.current.Get(ctx)
	if m == nil {
		return nil
	}
	if s.ttl > 0 && s.now().Sub(m.Timestamp) > s.ttl {
		return nil
	}
	return m
}

// Entries returns the full mood history in insertion order.
func (s *MoodService) Entries(ctx context.Context) []domain.MoodEntry {
	return s.entries.ListAll(ctx)
}
