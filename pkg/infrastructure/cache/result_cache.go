package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// ResultCache keeps finished calculations in memory for a limited time
type ResultCache struct {
	cache *gocache.Cache
}

// NewResultCache creates a result cache. A cleanupInterval of zero disables
// the background janitor; expired entries are then dropped on read.
func NewResultCache(ttl time.Duration, cleanupInterval time.Duration) *ResultCache {
	return &ResultCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Get retrieves a result by request key
func (c *ResultCache) Get(key string) (*entities.CalculationResult, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(*entities.CalculationResult), true
	}
	return nil, false
}

// Set stores a result under the default TTL
func (c *ResultCache) Set(key string, result *entities.CalculationResult) {
	c.cache.SetDefault(key, result)
}

// Len returns the number of cached entries, including expired ones not yet cleaned up
func (c *ResultCache) Len() int {
	return c.cache.ItemCount()
}

// Flush removes every entry
func (c *ResultCache) Flush() {
	c.cache.Flush()
}
