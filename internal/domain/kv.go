// Package domain contains the core business entities and interfaces.
package domain

import "context"

// KVStore is the port for the key-value persistence collaborator. Values are
// opaque bytes; callers own serialization.
type KVStore interface {
	// Get returns the value stored under key. found is false when the key is
	// absent, which is not an error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// RemoveAll drops every key owned by the store.
	RemoveAll(ctx context.Context) error
}
