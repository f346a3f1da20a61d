package datasource

import (
	"sync"
	"time"

	"github.com/Satvik-jain/Market-pulse/pkg/models"
)

// DefaultCacheTTL is how long a cached payload stays servable.
const DefaultCacheTTL = 5 * time.Minute

// DefaultCleanupInterval is the minimum spacing between full sweeps.
const DefaultCleanupInterval = time.Hour

type cacheKey struct {
	Category models.Category
	Ticker   string
}

type cacheEntry struct {
	CreatedAt time.Time
	Payload   any
}

// ResponseCache stores fully assembled response payloads keyed by
// (category, ticker). Expiry is lazy: Get refuses stale entries but
// leaves them in place, and Sweep reclaims them in bulk at most once
// per cleanup interval.
type ResponseCache struct {
	mu           sync.Mutex
	entries      map[cacheKey]cacheEntry
	ttl          time.Duration
	cleanupEvery time.Duration
	lastSweep    time.Time
	now          func() time.Time
}

// NewResponseCache builds a cache with the given TTL and sweep spacing.
// Non-positive values fall back to the defaults.
func NewResponseCache(ttl, cleanupEvery time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if cleanupEvery <= 0 {
		cleanupEvery = DefaultCleanupInterval
	}
	return &ResponseCache{
		entries:      make(map[cacheKey]cacheEntry),
		ttl:          ttl,
		cleanupEvery: cleanupEvery,
		now:          time.Now,
	}
}

// Get returns the cached payload for (category, ticker) if it is still
// fresh. A stale entry is reported as a miss but not deleted; Sweep
// handles reclamation.
func (c *ResponseCache) Get(category models.Category, ticker string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey{Category: category, Ticker: ticker}]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.CreatedAt) >= c.ttl {
		return nil, false
	}
	return entry.Payload, true
}

// Put stores a payload, replacing any previous entry and restarting its
// TTL from now.
func (c *ResponseCache) Put(category models.Category, ticker string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{Category: category, Ticker: ticker}] = cacheEntry{
		CreatedAt: c.now(),
		Payload:   payload,
	}
}

// Sweep deletes all expired entries, unless a sweep already ran within
// the cleanup interval, in which case it is a no-op. Callers invoke it
// opportunistically on request paths.
func (c *ResponseCache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) < c.cleanupEvery {
		return
	}
	c.lastSweep = now

	for key, entry := range c.entries {
		if now.Sub(entry.CreatedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of entries currently held, fresh or stale.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
