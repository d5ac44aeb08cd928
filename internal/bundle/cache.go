package bundle

import (
	"sync"
	"time"
)

// Cache keeps loaded bundles per location for a TTL. A zero TTL keeps them
// for the life of the process.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*cacheEntry[*Bundle]
}

type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e *cacheEntry[T]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry[*Bundle]),
	}
}

// Get returns the cached bundle for location if still valid.
func (c *Cache) Get(location string) (*Bundle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[location]
	if !ok || entry.expired(time.Now()) {
		return nil, false
	}
	return entry.value, true
}

// Set caches b for location.
func (c *Cache) Set(location string, b *Bundle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := &cacheEntry[*Bundle]{value: b}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}
	c.entries[location] = entry
}

// Forget drops the entry for location.
func (c *Cache) Forget(location string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, location)
}
