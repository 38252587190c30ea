package nusc

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cached is one snapshot with its build time.
type cached struct {
	tables *Tables
	built  time.Time
}

// Cache shares snapshots by identity. Concurrent requests for a missing or
// expired snapshot wait on a single build.
type Cache struct {
	ttl  time.Duration
	opts []Option
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]cached
	sf      singleflight.Group
}

// NewCache creates a cache whose snapshots are rebuilt after ttl. A ttl of zero
// keeps snapshots until Invalidate. opts are passed to every Open.
func NewCache(ttl time.Duration, opts ...Option) *Cache {
	return &Cache{
		ttl:     ttl,
		opts:    opts,
		now:     time.Now,
		entries: make(map[string]cached),
	}
}

func cacheKey(version, dataroot string) string {
	return version + "\x00" + dataroot
}

func (c *Cache) expired(e cached) bool {
	return c.ttl > 0 && c.now().Sub(e.built) > c.ttl
}

func (c *Cache) lookup(key string) (*Tables, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.expired(e) {
		return nil, false
	}
	return e.tables, true
}

// Get returns the snapshot for (version, dataroot), building it if needed.
// The build itself ignores cancellation of ctx; Get returns early with the
// context error while the build continues for other callers.
func (c *Cache) Get(ctx context.Context, version, dataroot string) (*Tables, error) {
	key := cacheKey(version, dataroot)
	if t, ok := c.lookup(key); ok {
		return t, nil
	}

	ch := c.sf.DoChan(key, func() (any, error) {
		// Another build may have finished while this one was queued.
		if t, ok := c.lookup(key); ok {
			return t, nil
		}
		t, err := Open(context.WithoutCancel(ctx), version, dataroot, c.opts...)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cached{tables: t, built: c.now()}
		c.mu.Unlock()
		return t, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Tables), nil
	}
}

// Invalidate drops the snapshot for (version, dataroot) so the next Get rebuilds it.
func (c *Cache) Invalidate(version, dataroot string) {
	c.mu.Lock()
	delete(c.entries, cacheKey(version, dataroot))
	c.mu.Unlock()
}

// Len returns the number of cached snapshots, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
