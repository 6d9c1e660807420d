// Package memstore provides an in-memory implementation of domain.KVStore.
// Data is lost when the process exits.
package memstore

import (
	"maps"
	"slices"
	"sync"

	"github.com/runoshun/bugtrack/internal/domain"
)

// Store implements domain.KVStore with a map.
type Store struct {
	values map[string][]byte
	mu     sync.RWMutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return slices.Clone(v), ok, nil
}

// Set stores a copy of value under key.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = slices.Clone(value)
	return nil
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values)), nil
}

// Initialize is a no-op.
func (s *Store) Initialize() error {
	return nil
}

var (
	_ domain.KVStore          = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
