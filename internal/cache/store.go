// Package cache provides the persisted usage-event snapshot with
// time-based invalidation. The snapshot lives under a single namespaced
// key in a pluggable key-value store; caching is purely a performance
// optimization and no failure here is ever surfaced as an error.
package cache

import "sync"

// Store is the key-value capability the event cache persists through.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value for a key and whether it was present.
	Get(key string) ([]byte, bool)

	// Set stores a value, replacing any prior one.
	Set(key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}

// MemoryStore is an in-process Store used in tests and as a fallback
// when no database path is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get returns the value for a key.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(value))
	copy(buf, value)
	s.values[key] = buf
	return nil
}

// Delete removes a key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
