package viewcache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"studiofin-backend/internal/logger"
)

// BuildFunc recomputes the payload of one cached view path.
type BuildFunc func(ctx context.Context) (json.RawMessage, error)

type entry struct {
	data     json.RawMessage
	storedAt time.Time
	stale    bool
}

// Cache holds rendered view payloads keyed by path. Invalidation marks entries
// stale; the next read rebuilds through a singleflight group so concurrent
// readers of the same stale path trigger exactly one rebuild.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*entry
	group   singleflight.Group
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

// GetOrBuild returns the cached payload for path, rebuilding it when the entry
// is missing, stale, or past its TTL. Build errors are not cached.
func (c *Cache) GetOrBuild(ctx context.Context, path string, build BuildFunc) (json.RawMessage, error) {
	c.mu.RLock()
	e, ok := c.entries[path]
	if ok && !e.stale && time.Since(e.storedAt) < c.ttl {
		data := e.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	data, err, _ := c.group.Do(path, func() (any, error) {
		// Another caller may have rebuilt while we waited on the group.
		c.mu.RLock()
		e, ok := c.entries[path]
		if ok && !e.stale && time.Since(e.storedAt) < c.ttl {
			data := e.data
			c.mu.RUnlock()
			return data, nil
		}
		c.mu.RUnlock()

		data, err := build(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[path] = &entry{data: data, storedAt: time.Now()}
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(json.RawMessage), nil
}

// Invalidate marks the given paths stale. Unknown paths and repeated
// invalidations are harmless, and the order of paths does not matter.
func (c *Cache) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, path := range paths {
		if e, ok := c.entries[path]; ok {
			e.stale = true
		}
	}
}

// InvalidateAll marks every cached view stale.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.stale = true
	}
}

// Sweep drops entries that are stale or past their TTL and returns how many
// were removed. Run periodically so abandoned views do not pile up.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for path, e := range c.entries {
		if e.stale || time.Since(e.storedAt) >= c.ttl {
			delete(c.entries, path)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("View cache swept", "removed", removed, "remaining", len(c.entries))
	}
	return removed
}

// Len reports the number of cached entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
