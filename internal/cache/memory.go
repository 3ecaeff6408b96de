package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/absa/internal/model"
)

// MemoryCache implements Cache on top of go-cache
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a dataset from the cache
func (c *MemoryCache) Get(key string) (*model.Dataset, bool) {
	if val, found := c.cache.Get(key); found {
		ds, ok := val.(*model.Dataset)
		return ds, ok
	}
	return nil, false
}

// Set stores a dataset; ttl 0 uses the default TTL
func (c *MemoryCache) Set(key string, ds *model.Dataset, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, ds, ttl)
}

// Delete removes a dataset from the cache
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all datasets
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}

// Len returns the number of cached datasets, including expired ones not yet cleaned up
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
