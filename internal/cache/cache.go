// Package cache provides caching utilities shared by the exporter services.
package cache

import "sync"

// KeySet is a thread-safe set of string keys.
// Useful for tracking claimed deduplication keys, visited files, etc.
type KeySet struct {
	data map[string]struct{}
	mu   sync.RWMutex
}

// NewKeySet creates a new key set.
func NewKeySet() *KeySet {
	return &KeySet{
		data: make(map[string]struct{}),
	}
}

// Add adds a key to the set. Returns true if the key was new.
func (s *KeySet) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; exists {
		return false
	}

	s.data[key] = struct{}{}

	return true
}

// Contains returns true if the key is in the set.
func (s *KeySet) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.data[key]

	return exists
}

// Len returns the number of keys in the set.
func (s *KeySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// Clear removes all keys from the set.
func (s *KeySet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]struct{})
}

// Memo is a generic memoization cache keyed by string.
// It is safe for concurrent use.
type Memo[T any] struct {
	data map[string]T
	mu   sync.RWMutex
}

// NewMemo creates a new memo cache.
func NewMemo[T any]() *Memo[T] {
	return &Memo[T]{
		data: make(map[string]T),
	}
}

// Get retrieves a value from the cache.
// Returns the value and true if found, zero value and false otherwise.
func (c *Memo[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	val, found := c.data[key]

	return val, found
}

// Set stores a value in the cache.
func (c *Memo[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = value
}

// GetOrCompute retrieves a value from the cache, or computes and stores it if
// not found. The compute function is called without holding the lock, so
// concurrent calls for the same key may compute the value multiple times (but
// only one will be stored).
func (c *Memo[T]) GetOrCompute(key string, compute func() T) T {
	if val, found := c.Get(key); found {
		return val
	}

	val := compute()
	c.Set(key, val)

	return val
}

// Len returns the number of items in the cache.
func (c *Memo[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}
