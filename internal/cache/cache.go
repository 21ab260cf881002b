// Package cache provides the in-memory cache used for parse results and
// fetched entries. Persistence across runs lives in the store package.
package cache

import "time"

// Cache is the minimal caching interface the pipeline depends on.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key namespaces a cache key.
func Key(suffix string) string {
	return "bormex:v1:" + suffix
}
