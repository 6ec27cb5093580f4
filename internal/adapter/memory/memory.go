// Package memory implements an in-memory key-value store for development and testing.
package memory

import (
	"context"
	"sync"

	"moodfit/internal/domain"
)

// DB implements an in-memory key-value storage.
type DB struct {
	mu   sync.Mutex
	data map[string][]byte
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		data: make(map[string][]byte),
	}
}

// Ensure interfaces are met.
var _ domain.KVStore = (*DB)(nil)

// Get returns a copy of the value stored under key.
func (db *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores a copy of value under key.
func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	db.data[key] = v
	return nil
}

// RemoveAll drops every key.
func (db *DB) RemoveAll(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	clear(db.data)
	return nil
}

// Len returns the number of stored keys.
func (db *DB) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.data)
}
