// Package storage provides the key-value accessor the proposal store persists through.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable indicates that the backing medium cannot be reached.
	ErrUnavailable = errors.New("storage: accessor unavailable")
	// ErrEmptyKey indicates that an operation was attempted without a key.
	ErrEmptyKey = errors.New("storage: key required")
)

// Accessor reads and writes string values addressed by a single string key.
type Accessor interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
