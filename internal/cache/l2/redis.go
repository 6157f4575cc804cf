package l2

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
)

const (
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
)

// Ensure RedisCache implements interfaces.Cache
var _ interfaces.Cache = (*RedisCache)(nil)

// RedisCache implements the shared page cache backing multiple instances.
// Entries expire in Redis at their serve-stale horizon, so even without a
// reader the keyspace stays bounded.
type RedisCache struct {
	client interfaces.RedisClient
	logger *zap.Logger
}

// NewRedisCache creates a shared page cache with the provided client.
func NewRedisCache(client interfaces.RedisClient, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// Get retrieves a non-expired entry from the shared cache.
func (rc *RedisCache) Get(key string) (*models.CacheEntry, bool) {
	return rc.load(key)
}

// GetStale retrieves an entry regardless of freshness, as long as it has not
// fully expired.
func (rc *RedisCache) GetStale(key string) (*models.CacheEntry, bool) {
	return rc.load(key)
}

// Set stores an entry with expiration at its serve-stale horizon.
func (rc *RedisCache) Set(key string, entry models.CacheEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	data, err := json.Marshal(entry)
	if err != nil {
		rc.logger.Error("Failed to marshal shared cache entry", zap.String("key", key), zap.Error(err))
		return
	}

	expiration := time.Until(time.Unix(entry.ExpiresAt, 0))
	if expiration <= 0 {
		return
	}

	if err := rc.client.Set(ctx, key, data, expiration).Err(); err != nil {
		rc.logger.Error("Failed to set shared cache entry", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes an entry from the shared cache.
func (rc *RedisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := rc.client.Del(ctx, key).Err(); err != nil {
		rc.logger.Error("Failed to delete shared cache entry", zap.String("key", key), zap.Error(err))
	}
}

// MarkStale rewrites the entry's stale horizon to now. Because the entry
// lives in the shared cache, the staleness propagates to every instance.
func (rc *RedisCache) MarkStale(key string) {
	entry, found := rc.load(key)
	if !found {
		return
	}

	now := time.Now().Unix()
	if entry.StaleAt > now {
		entry.StaleAt = now
	}
	rc.Set(key, *entry)
}

// Close closes the underlying client connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

func (rc *RedisCache) load(key string) (*models.CacheEntry, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	data, err := rc.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		rc.logger.Warn("Corrupt shared cache entry, removing", zap.String("key", key), zap.Error(err))
		rc.client.Del(context.Background(), key)
		return nil, false
	}

	if entry.IsExpired() {
		rc.client.Del(context.Background(), key)
		return nil, false
	}

	return &entry, true
}
