// Package cache memoizes airport feeds in a bounded LRU with single-flight loading.
package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"regional-airports/flightboard/internal/constants"
	"regional-airports/flightboard/internal/logging"
	"regional-airports/flightboard/internal/metrics"
	"regional-airports/flightboard/internal/models"
)

const (
	layerLocal  = "lru"
	layerShared = "redis"
)

// Loader produces a feed on a cache miss. Errors are returned to every waiter and never cached.
type Loader func(ctx context.Context) (models.Feed, error)

type entry struct {
	feed     models.Feed
	storedAt time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries   int    `json:"entries"`
	Capacity  int    `json:"capacity"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Loads     uint64 `json:"loads"`
	Evictions uint64 `json:"evictions"`
	Shared    bool   `json:"shared"`
}

// FeedCache is a bounded LRU of feeds keyed by airport code.
// Concurrent misses for the same key share one loader call.
type FeedCache struct {
	lru      *lru.Cache[string, entry]
	group    singleflight.Group
	capacity int
	ttl      time.Duration

	shared    SharedStore
	sharedTTL time.Duration
	metrics   *metrics.MetricsRegistry
	now       func() time.Time

	hits      atomic.Uint64
	misses    atomic.Uint64
	loads     atomic.Uint64
	evictions atomic.Uint64
}

// Option configures a FeedCache
type Option func(*FeedCache)

// WithTTL expires entries after d. Zero keeps entries until evicted.
func WithTTL(d time.Duration) Option {
	return func(c *FeedCache) { c.ttl = d }
}

// WithSharedStore consults store on a local miss and writes loads back to it.
func WithSharedStore(store SharedStore, ttl time.Duration) Option {
	return func(c *FeedCache) {
		c.shared = store
		c.sharedTTL = ttl
	}
}

// WithMetrics reports hits, misses and evictions to Prometheus.
func WithMetrics(reg *metrics.MetricsRegistry) Option {
	return func(c *FeedCache) { c.metrics = reg }
}

// withClock is used by tests to control TTL expiry.
func withClock(now func() time.Time) Option {
	return func(c *FeedCache) { c.now = now }
}

// NewFeedCache creates a cache holding at most capacity feeds
func NewFeedCache(capacity int, opts ...Option) (*FeedCache, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("feed cache capacity must be positive, got %d", capacity)
	}

	l, err := lru.New[string, entry](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU: %w", err)
	}

	c := &FeedCache{
		lru:      l,
		capacity: capacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the cached feed for key, loading it on a miss.
// A caller whose ctx ends while waiting gets ctx.Err(); the shared load keeps running for the others.
func (c *FeedCache) Get(ctx context.Context, key string, load Loader) (models.Feed, error) {
	if feed, ok := c.lookup(key); ok {
		c.hits.Add(1)
		c.observe(layerLocal, true)
		return feed, nil
	}
	c.misses.Add(1)
	c.observe(layerLocal, false)

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// A waiter may have populated the entry between lookup and DoChan.
		if feed, ok := c.lookup(key); ok {
			return feed, nil
		}

		loadCtx := context.WithoutCancel(ctx)

		if c.shared != nil {
			if feed, ok := c.shared.Get(loadCtx, c.sharedKey(key)); ok {
				c.observe(layerShared, true)
				c.store(key, *feed)
				return *feed, nil
			}
			c.observe(layerShared, false)
		}

		c.loads.Add(1)
		feed, err := load(loadCtx)
		if err != nil {
			return models.Feed{}, err
		}

		c.store(key, feed)
		if c.shared != nil {
			c.shared.Set(loadCtx, c.sharedKey(key), feed, c.sharedTTL)
		}
		return feed, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return models.Feed{}, res.Err
		}
		return res.Val.(models.Feed), nil
	case <-ctx.Done():
		return models.Feed{}, ctx.Err()
	}
}

// Purge drops every local entry. The shared store is left to expire on its own.
func (c *FeedCache) Purge() {
	c.lru.Purge()
	c.updateSize()
	logging.Info("Feed cache purged")
}

// Len returns the number of cached feeds
func (c *FeedCache) Len() int {
	return c.lru.Len()
}

// Stats returns a snapshot of the cache counters
func (c *FeedCache) Stats() Stats {
	return Stats{
		Entries:   c.lru.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Loads:     c.loads.Load(),
		Evictions: c.evictions.Load(),
		Shared:    c.shared != nil,
	}
}

// Shared returns the shared store, or nil when none is configured
func (c *FeedCache) Shared() SharedStore {
	return c.shared
}

func (c *FeedCache) lookup(key string) (models.Feed, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return models.Feed{}, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		c.lru.Remove(key)
		c.updateSize()
		return models.Feed{}, false
	}
	return e.feed, true
}

func (c *FeedCache) store(key string, feed models.Feed) {
	if evicted := c.lru.Add(key, entry{feed: feed, storedAt: c.now()}); evicted {
		c.evictions.Add(1)
		if c.metrics != nil {
			c.metrics.CacheEvictionsTotal.WithLabelValues(layerLocal).Inc()
		}
		logging.Debug("Feed cache evicted least recently used entry", "capacity", c.capacity)
	}
	c.updateSize()
}

func (c *FeedCache) sharedKey(key string) string {
	return string(constants.CachePrefixFeed) + key
}

func (c *FeedCache) observe(layer string, hit bool) {
	if c.metrics == nil {
		return
	}
	if hit {
		c.metrics.CacheHitsTotal.WithLabelValues(layer).Inc()
	} else {
		c.metrics.CacheMissesTotal.WithLabelValues(layer).Inc()
	}
}

func (c *FeedCache) updateSize() {
	if c.metrics != nil {
		c.metrics.CacheEntries.WithLabelValues(layerLocal).Set(float64(c.lru.Len()))
	}
}
