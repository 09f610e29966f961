// Package store is the persistence collaborator: an opaque key-value JSON
// store plus typed repositories for session history, age detection
// results, progress, and dismissed recommendations. Engine callers treat
// read/write failures as "no data", never as fatal errors.
package store

import (
	"context"
	"encoding/json"
	"sync"
)

// KV is the opaque get/set JSON store the engine persists through.
type KV interface {
	// Get returns the raw JSON stored under key, with found=false when
	// the key has never been written.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Set stores raw JSON under key, replacing any previous value.
	Set(ctx context.Context, key string, value json.RawMessage) error
}

// MemoryKV is an in-memory KV for tests and ephemeral runs.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]json.RawMessage)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}
