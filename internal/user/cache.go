package user

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedUserEntry wraps a user with version metadata for cache invalidation
type cachedUserEntry struct {
	Version  string       `json:"version"`
	User     *domain.User `json:"user"`
	CachedAt time.Time    `json:"cached_at"`
}

// resolverCache provides an in-memory LRU cache for identifier resolution
// with time-based expiration and version-based invalidation to prevent stale data.
// Only unique resolutions are cached; ambiguity and misses always hit the store.
type resolverCache struct {
	lru *expirable.LRU[string, *cachedUserEntry]
}

func newResolverCache(size int, ttl time.Duration) *resolverCache {
	return &resolverCache{
		lru: expirable.NewLRU[string, *cachedUserEntry](size, nil, ttl),
	}
}

// Get retrieves a resolution from the cache.
// Returns (nil, false) if not cached, expired, or version mismatch.
func (c *resolverCache) Get(identifier string) (*domain.User, bool) {
	key := strings.ToLower(identifier)
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}

	return entry.User, true
}

// Set stores a resolution in the cache with current schema version.
func (c *resolverCache) Set(identifier string, user *domain.User) {
	entry := &cachedUserEntry{
		Version:  CacheSchemaVersion,
		User:     user,
		CachedAt: time.Now(),
	}
	c.lru.Add(strings.ToLower(identifier), entry)
}

// Clear removes all entries from the cache.
func (c *resolverCache) Clear() {
	c.lru.Purge()
}
