package app

import (
	"context"
	"strings"
	"time"

	"moodfit/internal/domain"
	"moodfit/internal/eventstore"
)

// FailureService logs missed workouts.
type FailureService struct {
	entries *eventstore.Collection[domain.FailureEntry, *domain.FailureEntry]
	stats   *StatsService
	now     Clock
}

// NewFailureService creates a FailureService whose appends feed stats.
func NewFailureService(store *eventstore.Store, stats *StatsService) *FailureService {
	return &FailureService{
		entries: eventstore.NewCollection[domain.FailureEntry](store, eventstore.KeyFailureEntries),
		stats:   stats,
		now:     time.Now,
	}
}

// Log records a missed workout and updates stats before returning.
func (s *FailureService) Log(ctx context.Context, category domain.FailureCategory, notes, scheduledWorkoutID string) (domain.FailureEntry, error) {
	if !category.Valid() {
		return domain.FailureEntry{}, domain.ErrInvalidCategory
	}
	var entry domain.FailureEntry
	s.stats.RecordFailure(ctx, func() {
		entry = s.entries.Append(ctx, domain.FailureEntry{
			Date:               s.now().UTC(),
			Reason:             category.Info().Title,
			Category:           category,
			Notes:              strings.TrimSpace(notes),
			ScheduledWorkoutID: scheduledWorkoutID,
		})
	})
	return entry, nil
}

// List returns every failure entry in insertion order.
func (s *FailureService) List(ctx context.Context) []domain.FailureEntry {
	return s.entries.ListAll(ctx)
}
