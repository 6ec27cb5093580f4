package app

import (
	"context"

	"moodfit/internal/eventstore"
)

// DataService wipes and reseeds the store.
type DataService struct {
	store    *eventstore.Store
	sessions *SessionService
	catalog  *CatalogService
}

// NewDataService creates a DataService.
func NewDataService(store *eventstore.Store, sessions *SessionService, catalog *CatalogService) *DataService {
	return &DataService{store: store, sessions: sessions, catalog: catalog}
}

// Reset drops the live session, deletes every stored key and reseeds the
// default catalog. It reports whether the delete succeeded.
func (s *DataService) Reset(ctx context.Context) bool {
	s.sessions.Close()
	if !s.store.Reset(ctx) {
		return false
	}
	s.catalog.Seed(ctx)
	return true
}
