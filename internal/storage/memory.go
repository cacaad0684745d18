package storage

import (
	"context"
	"sync"
)

// MemoryAccessor keeps entries in process memory.
type MemoryAccessor struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryAccessor constructs an empty in-memory accessor.
func NewMemoryAccessor() *MemoryAccessor {
	return &MemoryAccessor{entries: make(map[string]string)}
}

func (a *MemoryAccessor) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	value, ok := a.entries[key]
	return value, ok, nil
}

func (a *MemoryAccessor) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries[key] = value
	return nil
}

func (a *MemoryAccessor) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	a.mu.Lock()
	delete(a.entries, key)
	a.mu.Unlock()
	return nil
}
