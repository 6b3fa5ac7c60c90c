// Package cache holds the time-boxed settings snapshot shared by all
// readers of one process.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/setting"
)

const DefaultTTL = 60 * time.Second

// Loader fetches every setting row reduced to key -> value.
type Loader func(ctx context.Context) (setting.Snapshot, error)

// Cache keeps at most one snapshot. The mutex guards the slot only; loads run
// unlocked, so concurrent misses may each hit the store. A load only fills the
// slot if no Invalidate happened while it ran.
type Cache struct {
	load  Loader
	ttl   time.Duration
	clock func() time.Time

	mu         sync.Mutex
	snapshot   setting.Snapshot
	fetchedAt  time.Time
	generation uint64
}

// New builds a cache. A zero ttl means DefaultTTL and a nil clock means
// time.Now.
func New(load Loader, ttl time.Duration, clock func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &Cache{load: load, ttl: ttl, clock: clock}
}

// Get returns the cached snapshot while it is younger than the ttl, and
// loads a fresh one otherwise. A failed load leaves the slot untouched.
func (c *Cache) Get(ctx context.Context) (setting.Snapshot, error) {
	s, gen, ok := c.current()
	if ok {
		return s, nil
	}

	s, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = setting.Snapshot{}
	}

	c.mu.Lock()
	if c.generation == gen {
		c.snapshot = s
		c.fetchedAt = c.clock()
	}
	c.mu.Unlock()
	return s, nil
}

func (c *Cache) current() (setting.Snapshot, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil || c.clock().Sub(c.fetchedAt) >= c.ttl {
		return nil, c.generation, false
	}
	return c.snapshot, c.generation, true
}

// Invalidate drops the snapshot so the next Get reloads. Loads already in
// flight keep their result to themselves.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.fetchedAt = time.Time{}
	c.generation++
	c.mu.Unlock()
}
