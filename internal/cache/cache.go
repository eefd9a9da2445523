// file: internal/cache/cache.go
// version: 1.0.0
// guid: 183edc26-915a-495b-b202-1c6fc74e2c5d

package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a fixed-capacity LRU cache safe for concurrent use. Entries are
// evicted least-recently-used first once the capacity is reached.
type Cache[K comparable, V any] struct {
	inner *lru.Cache[K, V]
}

// New creates a cache holding at most capacity entries.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	inner, err := lru.New[K, V](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &Cache[K, V]{inner: inner}, nil
}

// Get retrieves a value and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.inner.Get(key)
}

// Set stores a value, evicting the oldest entry if the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.inner.Add(key, value)
}

// Invalidate removes a single key.
func (c *Cache[K, V]) Invalidate(key K) {
	c.inner.Remove(key)
}

// InvalidateAll removes all entries.
func (c *Cache[K, V]) InvalidateAll() {
	c.inner.Purge()
}

// Len reports the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.inner.Len()
}
