package noop

import (
	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache is a no-operation cache implementation for disabled levels.
type NoOpCache struct{}

// NewNoOpCache creates a new no-operation cache instance.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns a cache miss.
func (n *NoOpCache) Get(key string) (*models.CacheEntry, bool) {
	return nil, false
}

// GetStale always returns a cache miss.
func (n *NoOpCache) GetStale(key string) (*models.CacheEntry, bool) {
	return nil, false
}

// Set does nothing.
func (n *NoOpCache) Set(key string, entry models.CacheEntry) {
	// No-op
}

// Delete does nothing.
func (n *NoOpCache) Delete(key string) {
	// No-op
}

// MarkStale does nothing.
func (n *NoOpCache) MarkStale(key string) {
	// No-op
}
