package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-memory TTL cache.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL and
// cleanup interval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Memory) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value; a zero ttl uses the cache's default TTL.
func (c *Memory) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value from the cache.
func (c *Memory) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values from the cache.
func (c *Memory) Clear() error {
	c.cache.Flush()
	return nil
}
