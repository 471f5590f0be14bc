// Package storage provides the durable persistence layer: a small
// get/set-by-key blob store abstraction, a BadgerDB-backed implementation
// for on-disk persistence, an in-memory implementation for tests and
// privacy mode, and the Gateway that serializes the whole region registry
// under one versioned key.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// BlobStore is the durable byte store the core persists into. The core
// treats it as an opaque get/set-by-key interface; it may be backed by
// disk, memory, or nothing at all (privacy mode).
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// MemoryStore is a map-backed BlobStore. FailWrites simulates a full or
// disabled store for exercising write-failure handling.
type MemoryStore struct {
	mutex      sync.RWMutex
	data       map[string][]byte
	FailWrites error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get retrieves the value for key, or ErrKeyNotFound.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	value, exists := m.data[key]
	if !exists {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores value under key, overwriting any previous value.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
