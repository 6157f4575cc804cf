package models

import "time"

// TTL represents cache time-to-live configuration for a page type.
type TTL struct {
	Fresh time.Duration // How long the data is considered fresh
	Stale time.Duration // How long stale data can still be served while regenerating
}

// CacheEntry is a materialized page output stored in the page cache.
// Timestamps are epoch seconds.
type CacheEntry struct {
	Data      []byte `json:"data"`
	CreatedAt int64  `json:"created_at"`
	StaleAt   int64  `json:"stale_at"`
	ExpiresAt int64  `json:"expires_at"`
	NotFound  bool   `json:"not_found,omitempty"`
}

// NewCacheEntry builds an entry for data generated now with the given TTL.
func NewCacheEntry(data []byte, ttl TTL) CacheEntry {
	now := time.Now().Unix()
	return CacheEntry{
		Data:      data,
		CreatedAt: now,
		StaleAt:   now + int64(ttl.Fresh.Seconds()),
		ExpiresAt: now + int64(ttl.Fresh.Seconds()) + int64(ttl.Stale.Seconds()),
	}
}

// IsFresh reports whether the entry may be reused without regeneration.
// The boundary is strict: an entry exactly at its max age is no longer fresh.
func (e *CacheEntry) IsFresh() bool {
	return time.Now().Unix() < e.StaleAt
}

// IsExpired reports whether the entry may no longer be served at all,
// not even as a stale copy.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().Unix() >= e.ExpiresAt
}
