package l1

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
)

// Ensure MemoryCache implements interfaces.Cache
var _ interfaces.Cache = (*MemoryCache)(nil)

// MemoryCache implements the in-process page cache using BigCache.
// Entry-level timestamps govern freshness; BigCache's own eviction window
// only caps total residency and must exceed the longest fresh+stale horizon.
type MemoryCache struct {
	cache  *bigcache.BigCache
	logger *zap.Logger
}

// NewMemoryCache creates an in-process page cache. sizeMB caps total memory,
// maxLifetime caps how long any entry stays resident.
func NewMemoryCache(sizeMB int, maxLifetime time.Duration, logger *zap.Logger) (*MemoryCache, error) {
	config := bigcache.DefaultConfig(maxLifetime)
	config.HardMaxCacheSize = sizeMB
	config.Verbose = false
	config.MaxEntrySize = 1024 * 1024 // 1MB max entry size

	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, err
	}

	return &MemoryCache{cache: cache, logger: logger}, nil
}

// Get retrieves a non-expired entry. Expired and corrupt entries are removed
// and reported as misses.
func (mc *MemoryCache) Get(key string) (*models.CacheEntry, bool) {
	entry, found := mc.load(key)
	if !found {
		return nil, false
	}
	return entry, true
}

// GetStale behaves like Get; entries past their stale horizon but not yet
// expired are still returned, the caller checks IsFresh.
func (mc *MemoryCache) GetStale(key string) (*models.CacheEntry, bool) {
	return mc.load(key)
}

// Set stores an entry, replacing any previous one.
func (mc *MemoryCache) Set(key string, entry models.CacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		mc.logger.Error("Failed to marshal page cache entry", zap.String("key", key), zap.Error(err))
		return
	}

	if err := mc.cache.Set(key, data); err != nil {
		mc.logger.Error("Failed to set page cache entry", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes an entry.
func (mc *MemoryCache) Delete(key string) {
	_ = mc.cache.Delete(key)
}

// MarkStale rewrites the entry's stale horizon to now so the next request
// triggers regeneration while the copy stays serveable.
func (mc *MemoryCache) MarkStale(key string) {
	entry, found := mc.load(key)
	if !found {
		return
	}

	now := time.Now().Unix()
	if entry.StaleAt > now {
		entry.StaleAt = now
	}
	mc.Set(key, *entry)
}

// Close releases the underlying cache.
func (mc *MemoryCache) Close() error {
	return mc.cache.Close()
}

func (mc *MemoryCache) load(key string) (*models.CacheEntry, bool) {
	data, err := mc.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		mc.logger.Warn("Failed to unmarshal page cache entry", zap.String("key", key), zap.Error(err))
		_ = mc.cache.Delete(key) // Remove corrupted entry
		return nil, false
	}

	if entry.IsExpired() {
		_ = mc.cache.Delete(key)
		return nil, false
	}

	return &entry, true
}
