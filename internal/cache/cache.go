// Package cache provides TTL-bounded caching in front of rate-limited
// upstream data sources.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/gridiron-oracle/internal/metrics"
)

// Stats reports cache contents and effectiveness.
type Stats struct {
	Entries  int     `json:"entries"`
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
}

// Cache is a generic TTL cache keyed by opaque strings. Callers
// typically use one instance per upstream data category, each with its
// own default TTL: schedule data tolerates hours of staleness, odds
// data is rate-limited and expensive, and live-score data must never
// be cached (TTL <= 0 disables storage entirely).
//
// The internal map serializes its own access; the cache never performs
// upstream I/O, so no lock is ever held across a fetch.
type Cache[V any] struct {
	name    string
	backing *gocache.Cache
	ttl     time.Duration

	mu     sync.Mutex
	hits   uint64
	misses uint64
}

// New creates a cache with the given default TTL. Entries are removed
// physically only by InvalidateExpired or Clear; expired entries are
// logically absent before that.
func New[V any](name string, defaultTTL time.Duration) *Cache[V] {
	var backing *gocache.Cache
	if defaultTTL > 0 {
		// Cleanup interval 0: no background janitor, sweeps are explicit.
		backing = gocache.New(defaultTTL, 0)
	}
	return &Cache[V]{
		name:    name,
		backing: backing,
		ttl:     defaultTTL,
	}
}

// Get returns the stored value only if it is still live. An
// expired-but-present entry is a miss and is not evicted. Get never
// mutates entry state or resets an entry's TTL clock.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c.backing == nil {
		c.recordMiss()
		return zero, false
	}

	raw, found := c.backing.Get(key)
	if !found {
		c.recordMiss()
		return zero, false
	}

	value, ok := raw.(V)
	if !ok {
		c.recordMiss()
		return zero, false
	}
	c.recordHit()
	return value, true
}

// Set inserts or replaces the entry under the default TTL, resetting
// its insertion timestamp. A no-op when caching is disabled.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL inserts or replaces the entry with an explicit TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if c.backing == nil || ttl <= 0 {
		return
	}
	c.backing.Set(key, value, ttl)
	metrics.CacheEntries.WithLabelValues(c.name).Set(float64(c.backing.ItemCount()))
}

// InvalidateExpired physically removes all expired entries. Live
// entries are untouched. Safe to call at any time.
func (c *Cache[V]) InvalidateExpired() {
	if c.backing == nil {
		return
	}
	c.backing.DeleteExpired()
	metrics.CacheEntries.WithLabelValues(c.name).Set(float64(c.backing.ItemCount()))
}

// Clear removes all entries unconditionally and resets the hit/miss
// counters.
func (c *Cache[V]) Clear() {
	if c.backing != nil {
		c.backing.Flush()
	}
	c.mu.Lock()
	c.hits = 0
	c.misses = 0
	c.mu.Unlock()
	metrics.CacheEntries.WithLabelValues(c.name).Set(0)
	metrics.CacheHitRatio.WithLabelValues(c.name).Set(0)
}

// Name returns the cache's category name.
func (c *Cache[V]) Name() string {
	return c.name
}

// ItemCount returns the number of physically stored entries, expired
// ones included until a sweep runs.
func (c *Cache[V]) ItemCount() int {
	if c.backing == nil {
		return 0
	}
	return c.backing.ItemCount()
}

// Stats returns entry count and hit/miss counters for observability.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	hits, misses := c.hits, c.misses
	c.mu.Unlock()

	stats := Stats{
		Entries: c.ItemCount(),
		Hits:    hits,
		Misses:  misses,
	}
	if total := hits + misses; total > 0 {
		stats.HitRatio = float64(hits) / float64(total)
	}
	return stats
}

func (c *Cache[V]) recordHit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	c.updateMetrics()
}

func (c *Cache[V]) recordMiss() {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
	c.updateMetrics()
}

func (c *Cache[V]) updateMetrics() {
	metrics.CacheHitRatio.WithLabelValues(c.name).Set(c.Stats().HitRatio)
}
