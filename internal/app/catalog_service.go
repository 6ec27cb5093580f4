package app

import (
	"context"
	"errors"

	"moodfit/internal/domain"
	"moodfit/internal/eventstore"
)

// Catalog filters accepted by List besides the workout types.
const (
	FilterAll         = "all"
	FilterRecommended = "recommended"
)

// ErrInvalidFilter indicates an unknown catalog filter.
var ErrInvalidFilter = errors.New("filter must be all, recommended, or a workout type")

// CatalogService serves the static workout catalog and mood-based
// recommendations. It never mutates the catalog after seeding.
type CatalogService struct {
	workouts *eventstore.Doc[[]domain.Workout]
	moods    CurrentMoodSource
}

// NewCatalogService creates a CatalogService. moods may be nil, in which case
// the recommended filter is always empty.
func NewCatalogService(store *eventstore.Store, moods CurrentMoodSource) *CatalogService {
	return &CatalogService{
		workouts: eventstore.NewDoc(store, eventstore.KeyWorkouts, domain.DefaultCatalog),
		moods:    moods,
	}
}

// Seed writes the default catalog if none is stored yet and reports whether
// it did.
func (s *CatalogService) Seed(ctx context.Context) bool {
	return s.workouts.Init(ctx)
}

// Workouts returns the catalog in catalog order.
func (s *CatalogService) Workouts(ctx context.Context) []domain.Workout {
	return s.workouts.Get(ctx)
}

// WorkoutByID implements WorkoutLookup.
func (s *CatalogService) WorkoutByID(ctx context.Context, id string) (domain.Workout, bool) {
	for _, w := range s.Workouts(ctx) {
		if w.ID == id {
			return w, true
		}
	}
	return domain.Workout{}, false
}

// RecommendFor returns the workouts whose recommended moods contain mood, in
// catalog order.
func (s *CatalogService) RecommendFor(ctx context.Context, mood domain.Mood) ([]domain.Workout, error) {
	if !mood.Valid() {
		return nil, domain.ErrInvalidMood
	}
	return Recommend(s.Workouts(ctx), mood), nil
}

// Recommend filters catalog down to the workouts recommended for mood.
func Recommend(catalog []domain.Workout, mood domain.Mood) []domain.Workout {
	out := make([]domain.Workout, 0, len(catalog))
	for _, w := range catalog {
		if w.RecommendedFor(mood) {
			out = append(out, w)
		}
	}
	return out
}

// List applies a catalog filter: "all" (or empty), "recommended" for the
// current mood, or a workout type.
func (s *CatalogService) List(ctx context.Context, filter string) ([]domain.Workout, error) {
	catalog := s.Workouts(ctx)
	switch filter {
	case "", FilterAll:
		return catalog, nil
	case FilterRecommended:
		if s.moods == nil {
			return []domain.Workout{}, nil
		}
		current := s.moods.CurrentMood(ctx)
		if current == nil {
			return []domain.Workout{}, nil
		}
		return Recommend(catalog, current.Mood), nil
	}

	t := domain.WorkoutType(filter)
	if !t.Valid() {
		return nil, ErrInvalidFilter
	}
	out := make([]domain.Workout, 0, len(catalog))
	for _, w := range catalog {
		if w.Type == t {
			out = append(out, w)
		}
	}
	return out, nil
}
