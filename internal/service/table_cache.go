package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/course-viewer/internal/models"
)

// CatalogKey identifies one memoized catalog. A change to either the local
// flag or the secret configuration yields a different key.
type CatalogKey struct {
	Local       bool
	SecretsHash string
}

func (k CatalogKey) String() string {
	mode := "remote"
	if k.Local {
		mode = "local"
	}
	return fmt.Sprintf("%s:%s", mode, k.SecretsHash)
}

// TableLoader produces a freshly normalized table.
type TableLoader func(ctx context.Context) (*models.Table, error)

// DefaultLoadTimeout bounds a shared catalog load.
const DefaultLoadTimeout = 2 * time.Minute

// TableCache memoizes normalized tables per key with a TTL and a bounded
// number of entries. When full, the entry stored longest ago is evicted.
// Concurrent misses for one key share a single load.
type TableCache struct {
	entries     *expirable.LRU[CatalogKey, *models.Table]
	group       singleflight.Group
	loadTimeout time.Duration
}

// NewTableCache constructs a cache; non-positive arguments fall back to one
// hour and ten entries.
func NewTableCache(ttl time.Duration, maxEntries int) *TableCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if maxEntries <= 0 {
		maxEntries = 10
	}
	return &TableCache{
		entries:     expirable.NewLRU[CatalogKey, *models.Table](maxEntries, nil, ttl),
		loadTimeout: DefaultLoadTimeout,
	}
}

// SetLoadTimeout overrides the bound on a shared load. Non-positive values
// are ignored.
func (c *TableCache) SetLoadTimeout(d time.Duration) {
	if d > 0 {
		c.loadTimeout = d
	}
}

// Get returns the live table for key, if any. Reads do not change the
// eviction order.
func (c *TableCache) Get(key CatalogKey) (*models.Table, bool) {
	return c.entries.Peek(key)
}

// GetOrLoad returns the cached table for key or runs load. Failed loads are
// not cached. The boolean reports a cache hit.
//
// Concurrent misses share one load. The load runs detached from any single
// caller's cancellation and is bounded by the cache's load timeout; each
// caller stops waiting when its own context ends.
func (c *TableCache) GetOrLoad(ctx context.Context, key CatalogKey, load TableLoader) (*models.Table, bool, error) {
	if table, ok := c.entries.Peek(key); ok {
		return table, true, nil
	}

	ch := c.group.DoChan(key.String(), func() (interface{}, error) {
		if table, ok := c.entries.Peek(key); ok {
			return table, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		table, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, table)
		return table, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.(*models.Table), false, nil
	}
}

// Put stores table under key, replacing any live entry.
func (c *TableCache) Put(key CatalogKey, table *models.Table) {
	c.entries.Add(key, table)
}

// Invalidate drops the entry for key.
func (c *TableCache) Invalidate(key CatalogKey) {
	c.entries.Remove(key)
}

// Len reports the number of live entries.
func (c *TableCache) Len() int {
	return c.entries.Len()
}
