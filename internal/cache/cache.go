package cache

import (
	"context"
	"sync"
)

// DefaultCapacity is the number of entries a catalog cache holds before it is flushed.
const DefaultCapacity = 50

// BoundedCache is a fixed-capacity map safe for concurrent use.
//
// When an insert finds the map at capacity the whole map is cleared before the
// new entry is stored. There is no per-entry recency tracking and entries never
// expire by time.
type BoundedCache[K comparable, V any] struct {
	mu       sync.RWMutex
	entries  map[K]V
	capacity int
}

// New creates a cache that holds at most capacity entries. A capacity below 1 is treated as 1.
func New[K comparable, V any](capacity int) *BoundedCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}

	return &BoundedCache[K, V]{
		entries:  make(map[K]V, capacity),
		capacity: capacity,
	}
}

// Get returns the value stored under key. It never triggers a fetch.
func (c *BoundedCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	return v, ok
}

// Insert stores value under key, clearing every other entry first if the cache is full.
func (c *BoundedCache[K, V]) Insert(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		clear(c.entries)
	}
	c.entries[key] = value
}

// Remove deletes the entry for key if present.
func (c *BoundedCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Take deletes the entry for key and returns the value it held.
func (c *BoundedCache[K, V]) Take(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
	}
	return v, ok
}

// GetOrInsertWith returns the cached value for key, or calls fetch and stores its result.
//
// fetch runs without holding the lock, so concurrent misses for the same key may
// each call their own fetch; the last insert wins. A fetch error is returned as is
// and leaves the cache untouched.
func (c *BoundedCache[K, V]) GetOrInsertWith(ctx context.Context, key K, fetch func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	c.Insert(key, v)
	return v, nil
}

// Len returns the number of entries currently stored.
func (c *BoundedCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Capacity returns the number of entries the cache holds before it is flushed.
func (c *BoundedCache[K, V]) Capacity() int {
	return c.capacity
}

// Clear drops every entry.
func (c *BoundedCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}
