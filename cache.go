package sniffkit

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores classification results keyed by content digest.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the Result stored under digest.
	Get(digest string) (Result, bool)

	// Set stores res under digest. A ttl of 0 keeps it until deleted.
	Set(digest string, res Result, ttl time.Duration)

	Delete(digest string)
	Clear()
}

// CacheStats is implemented by caches that track hit rates.
type CacheStats interface {
	Stats() CacheStatistics
}

// CacheStatistics contains cache performance metrics.
type CacheStatistics struct {
	Hits    int64
	Misses  int64
	Size    int64
	HitRate float64
}

// MemoryCache is an in-process Cache backed by go-cache. Expired results
// are never returned; Cleanup or a janitor drops them from memory.
//
// The cache is unbounded: without a TTL every distinct content digest stays
// resident until Delete or Clear.
type MemoryCache struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCache creates an empty MemoryCache with no background janitor.
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithJanitor(0)
}

// NewMemoryCacheWithJanitor creates an empty MemoryCache that drops expired
// results every interval. An interval of 0 disables the janitor.
func NewMemoryCacheWithJanitor(interval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(gocache.NoExpiration, interval)}
}

func (c *MemoryCache) Get(digest string) (Result, bool) {
	v, ok := c.store.Get(digest)
	if !ok {
		c.misses.Add(1)
		return Result{}, false
	}
	res, ok := v.(Result)
	if !ok {
		c.misses.Add(1)
		return Result{}, false
	}
	c.hits.Add(1)
	return res, true
}

func (c *MemoryCache) Set(digest string, res Result, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.store.Set(digest, res, ttl)
}

func (c *MemoryCache) Delete(digest string) {
	c.store.Delete(digest)
}

func (c *MemoryCache) Clear() {
	c.store.Flush()
}

// Stats returns hit and miss counters. Size includes expired results that
// Cleanup has not dropped yet.
func (c *MemoryCache) Stats() CacheStatistics {
	hits, misses := c.hits.Load(), c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStatistics{
		Hits:    hits,
		Misses:  misses,
		Size:    int64(c.store.ItemCount()),
		HitRate: hitRate,
	}
}

// Cleanup removes expired results.
func (c *MemoryCache) Cleanup() {
	c.store.DeleteExpired()
}

var (
	_ Cache      = (*MemoryCache)(nil)
	_ CacheStats = (*MemoryCache)(nil)
)

// ============================================================================
// CachingClassifier Decorator
// ============================================================================

// CachingClassifier wraps a Sniffer and memoizes results by content digest.
// Classification is a pure function of the bytes, so a cached Result is
// identical to a fresh one.
//
// Example:
//
//	cached := sniffkit.NewCachingClassifier(sniffkit.NewClassifier(), sniffkit.NewMemoryCache(),
//	    sniffkit.WithCacheTTL(10*time.Minute),
//	)
//	res := cached.Classify(data)
type CachingClassifier struct {
	next    Sniffer
	cache   Cache
	options CacheOptions
}

// CacheOptions configures the caching behavior.
type CacheOptions struct {
	// TTL is the time-to-live for cached results. 0 means no expiration.
	TTL time.Duration

	// KeyPrefix namespaces cache keys when a Cache is shared.
	KeyPrefix string

	// OnHit is called with the content digest on a cache hit.
	OnHit func(digest string)

	// OnMiss is called with the content digest on a cache miss.
	OnMiss func(digest string)
}

// CacheOption is a function that configures CacheOptions.
type CacheOption func(*CacheOptions)

// WithCacheTTL sets the TTL for cached results.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(o *CacheOptions) {
		o.TTL = ttl
	}
}

// WithCacheKeyPrefix sets a prefix for all cache keys.
func WithCacheKeyPrefix(prefix string) CacheOption {
	return func(o *CacheOptions) {
		o.KeyPrefix = prefix
	}
}

// WithCacheHitCallback sets a callback for cache hits.
func WithCacheHitCallback(callback func(digest string)) CacheOption {
	return func(o *CacheOptions) {
		o.OnHit = callback
	}
}

// WithCacheMissCallback sets a callback for cache misses.
func WithCacheMissCallback(callback func(digest string)) CacheOption {
	return func(o *CacheOptions) {
		o.OnMiss = callback
	}
}

// NewCachingClassifier creates a caching decorator around next.
// A nil cache gets a fresh MemoryCache.
func NewCachingClassifier(next Sniffer, cache Cache, opts ...CacheOption) *CachingClassifier {
	if cache == nil {
		cache = NewMemoryCache()
	}

	var options CacheOptions
	for _, opt := range opts {
		opt(&options)
	}

	return &CachingClassifier{
		next:    next,
		cache:   cache,
		options: options,
	}
}

// Unwrap returns the wrapped Sniffer.
func (c *CachingClassifier) Unwrap() Sniffer {
	return c.next
}

// Cache returns the underlying cache.
func (c *CachingClassifier) Cache() Cache {
	return c.cache
}

// Classify returns the cached Result for data, classifying on a miss.
func (c *CachingClassifier) Classify(data []byte) Result {
	digest := Digest(data)
	key := c.options.KeyPrefix + digest

	if res, ok := c.cache.Get(key); ok {
		if c.options.OnHit != nil {
			c.options.OnHit(digest)
		}
		return res
	}

	if c.options.OnMiss != nil {
		c.options.OnMiss(digest)
	}

	res := c.next.Classify(data)
	c.cache.Set(key, res, c.options.TTL)
	return res
}

var _ Sniffer = (*CachingClassifier)(nil)
