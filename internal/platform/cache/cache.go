// Package cache provides an in-memory LRU cache with optional TTL.
// GokuTrace uses it to memoize variant generation per seed.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache defines the interface for a typed cache.
type Cache[V any] interface {
	// Get retrieves a value. The boolean is false on miss or expiry.
	Get(key string) (V, bool)

	// Set stores a value. A ttl of 0 never expires.
	Set(key string, value V, ttl time.Duration)

	Delete(key string)
	Clear()
	Size() int
	Capacity() int
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	element   *list.Element
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache implements an in-memory LRU cache with TTL support.
type MemoryCache[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*entry[V]
	lruList  *list.List

	hits   uint64
	misses uint64
}

// NewMemoryCache creates a cache holding at most capacity items.
// When full, the least recently used item is evicted.
func NewMemoryCache[V any](capacity int) *MemoryCache[V] {
	if capacity <= 0 {
		capacity = 256
	}
	return &MemoryCache[V]{
		capacity: capacity,
		items:    make(map[string]*entry[V]),
		lruList:  list.New(),
	}
}

// Get retrieves a value and marks it as recently used.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if e.expired(time.Now()) {
		c.deleteEntry(e)
		c.misses++
		return zero, false
	}

	c.lruList.MoveToFront(e.element)
	c.hits++
	return e.value, true
}

// Set stores a value, replacing any previous one for key.
func (c *MemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if existing, ok := c.items[key]; ok {
		existing.value = value
		existing.expiresAt = expiresAt
		c.lruList.MoveToFront(existing.element)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictLRU()
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	e.element = c.lruList.PushFront(e)
	c.items[key] = e
}

// Delete removes a value from the cache.
func (c *MemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.deleteEntry(e)
	}
}

// Clear removes all values from the cache.
func (c *MemoryCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V])
	c.lruList.Init()
}

// Size returns the current number of items.
func (c *MemoryCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the maximum number of items.
func (c *MemoryCache[V]) Capacity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity
}

// Stats returns hit and miss counters since creation.
func (c *MemoryCache[V]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// CleanExpired removes expired items and returns how many were dropped.
func (c *MemoryCache[V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for _, e := range c.items {
		if e.expired(now) {
			c.deleteEntry(e)
			removed++
		}
	}
	return removed
}

// evictLRU must be called with c.mu held.
func (c *MemoryCache[V]) evictLRU() {
	if back := c.lruList.Back(); back != nil {
		c.deleteEntry(back.Value.(*entry[V]))
	}
}

// deleteEntry must be called with c.mu held.
func (c *MemoryCache[V]) deleteEntry(e *entry[V]) {
	delete(c.items, e.key)
	c.lruList.Remove(e.element)
}
