package interfaces

import (
	"go-content-cache/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache is the contract for materialized page-output caches. Keys are page
// paths. Both getters filter out fully expired entries and may return stale
// ones; freshness is the caller's decision. Get may additionally promote the
// entry between levels, GetStale never does.
type Cache interface {
	Get(key string) (*models.CacheEntry, bool)
	GetStale(key string) (*models.CacheEntry, bool)
	Set(key string, entry models.CacheEntry)
	Delete(key string)

	// MarkStale rewrites the entry's stale horizon to now so the next
	// request regenerates, while keeping the copy serveable during
	// regeneration. A missing key is a no-op.
	MarkStale(key string)
}
