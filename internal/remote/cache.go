package remote

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// CachedLister memoises successful listings for a TTL. Failures are never
// cached so a repaired remote is seen on the next call.
type CachedLister struct {
	next    Lister
	entries map[cacheKey]*cacheEntry
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	hits    int64
	misses  int64
}

type cacheKey struct {
	url      string
	username string
	password string
	insecure bool
}

type cacheEntry struct {
	refs     []*plumbing.Reference
	cachedAt time.Time
}

// NewCachedLister wraps next with a TTL cache. A non-positive TTL returns next unchanged.
func NewCachedLister(next Lister, ttl time.Duration) Lister {
	if ttl <= 0 {
		return next
	}
	return &CachedLister{
		next:    next,
		entries: make(map[cacheKey]*cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// List serves from cache when a fresh entry exists, otherwise delegates.
func (c *CachedLister) List(ctx context.Context, req Request) ([]*plumbing.Reference, error) {
	key := cacheKey{url: req.URL, username: req.Username, password: req.Password, insecure: req.InsecureSkipTLS}

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && c.now().Sub(entry.cachedAt) <= c.ttl {
		atomic.AddInt64(&c.hits, 1)
		return entry.refs, nil
	}
	atomic.AddInt64(&c.misses, 1)

	refs, err := c.next.List(ctx, req)
	if err != nil {
		if exists {
			c.deleteEntryIfUnchanged(key, entry)
		}
		return nil, err
	}

	now := c.now()
	c.mu.Lock()
	c.evictExpired(now)
	c.entries[key] = &cacheEntry{refs: refs, cachedAt: now}
	c.mu.Unlock()

	return refs, nil
}

// evictExpired drops stale entries so credentials in keys do not outlive the TTL.
// Callers hold the write lock.
func (c *CachedLister) evictExpired(now time.Time) {
	for key, entry := range c.entries {
		if now.Sub(entry.cachedAt) > c.ttl {
			delete(c.entries, key)
		}
	}
}

func (c *CachedLister) deleteEntryIfUnchanged(key cacheKey, snapshot *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.entries[key]; ok && current == snapshot {
		delete(c.entries, key)
	}
}

// Clear removes all entries from the cache.
func (c *CachedLister) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[cacheKey]*cacheEntry)
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// CacheStats represents cache performance metrics.
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Stats returns current cache statistics.
func (c *CachedLister) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
		Size:   len(c.entries),
	}
}
