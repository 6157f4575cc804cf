package multi

import (
	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
)

// Ensure MultiCache implements interfaces.Cache
var _ interfaces.Cache = (*MultiCache)(nil)

// MultiCache is a composite page cache that reads from the first level
// holding a key and writes through to every level. Invalidation operations
// touch every level so no stale copy survives in a lower one.
type MultiCache struct {
	caches []interfaces.Cache
	logger *zap.Logger
}

// NewMultiCache creates a MultiCache over the given levels, fastest first.
func NewMultiCache(caches []interfaces.Cache, logger *zap.Logger) *MultiCache {
	return &MultiCache{caches: caches, logger: logger}
}

// Get returns the entry from the first level that has it. A hit in a lower
// level is promoted to the levels above it.
func (mc *MultiCache) Get(key string) (*models.CacheEntry, bool) {
	for i, cache := range mc.caches {
		entry, found := cache.Get(key)
		if found {
			for j := 0; j < i; j++ {
				mc.caches[j].Set(key, *entry)
			}
			return entry, true
		}
	}
	return nil, false
}

// GetStale returns a possibly stale entry from the first level that has one.
func (mc *MultiCache) GetStale(key string) (*models.CacheEntry, bool) {
	for _, cache := range mc.caches {
		entry, found := cache.GetStale(key)
		if found {
			return entry, true
		}
	}
	return nil, false
}

// Set stores the entry in every level.
func (mc *MultiCache) Set(key string, entry models.CacheEntry) {
	for _, cache := range mc.caches {
		cache.Set(key, entry)
	}
}

// Delete removes the entry from every level.
func (mc *MultiCache) Delete(key string) {
	for _, cache := range mc.caches {
		cache.Delete(key)
	}
}

// MarkStale marks the entry stale in every level.
func (mc *MultiCache) MarkStale(key string) {
	for _, cache := range mc.caches {
		cache.MarkStale(key)
	}
}
