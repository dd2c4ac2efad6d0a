package store

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is a concurrency-safe in-process Cache.
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates an empty MemoryCache whose entries never expire.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get returns a copy of the cached bytes for key.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	b := v.([]byte)
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Set stores a copy of value under key.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	b := make([]byte, len(value))
	copy(b, value)
	c.items.Set(key, b, gocache.NoExpiration)
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

// Flush removes every entry.
func (c *MemoryCache) Flush() {
	c.items.Flush()
}
