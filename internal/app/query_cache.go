// internal/app/query_cache.go
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"lead_crm_client/internal/infra/monitoring"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Key identifies one cached read: the resource name plus the exact,
// canonically encoded parameter set. Two reads with the same key share one
// cached result. Construction is the only way to build a key, so equality
// is plain string equality rather than structural deep-comparison.
type Key struct {
	resource string
	args     string
}

// NewKey builds a cache key. args must already be deterministic; callers
// pass url.Values.Encode() output (sorted by construction) or bare ids.
func NewKey(resource string, args ...string) Key {
	return Key{resource: resource, args: strings.Join(args, "&")}
}

func (k Key) Resource() string { return k.resource }

func (k Key) String() string {
	if k.args == "" {
		return k.resource
	}
	return k.resource + "|" + k.args
}

type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
	stale     bool
}

// QueryCache is the process-wide cache of resource reads. It is explicitly
// constructed and injected; there is no package-level singleton. Concurrent
// fetches of the same key are coalesced into a single underlying call, and
// only mutation success handlers invalidate entries.
type QueryCache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	group      singleflight.Group
	staleAfter time.Duration
	logger     *logrus.Logger

	// Invalidation generations, bumped even when no entry exists yet. A fetch
	// snapshots them before it starts; an invalidation landing while the fetch
	// is in flight advances them, so the fetched result is stored already
	// stale instead of masking the mutation.
	resourceGens map[string]uint64
	keyGens      map[string]uint64
}

// NewQueryCache creates a cache whose entries become stale after staleAfter.
// A zero staleAfter means entries only go stale through invalidation.
func NewQueryCache(staleAfter time.Duration, logger *logrus.Logger) *QueryCache {
	return &QueryCache{
		entries:      make(map[string]*cacheEntry),
		staleAfter:   staleAfter,
		logger:       logger,
		resourceGens: make(map[string]uint64),
		keyGens:      make(map[string]uint64),
	}
}

// Fetch returns the cached value for key when it is fresh, otherwise it runs
// fetch and stores the result. A failed fetch leaves any previously cached
// value untouched and returns the error to the caller.
func (c *QueryCache) Fetch(ctx context.Context, key Key, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[key.String()]; ok && c.fresh(e) {
		c.mu.Unlock()
		monitoring.CacheHits.WithLabelValues(key.Resource()).Inc()
		return e.value, nil
	}
	c.mu.Unlock()

	monitoring.CacheMisses.WithLabelValues(key.Resource()).Inc()

	// Coalesce concurrent fetches of the same key into one call.
	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		// A coalesced waiter may arrive just after a winner stored a fresh
		// value; re-check before hitting the network again.
		c.mu.Lock()
		if e, ok := c.entries[key.String()]; ok && c.fresh(e) {
			c.mu.Unlock()
			return e.value, nil
		}
		resGen := c.resourceGens[key.Resource()]
		keyGen := c.keyGens[key.String()]
		c.mu.Unlock()

		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		// An invalidation that landed while the fetch was in flight means the
		// result may predate the mutation: store it already stale so the next
		// read refetches instead of serving it as current.
		overtaken := c.resourceGens[key.Resource()] != resGen || c.keyGens[key.String()] != keyGen
		c.entries[key.String()] = &cacheEntry{value: value, fetchedAt: time.Now(), stale: overtaken}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Peek returns the last stored value for key even when the entry is stale.
// Views use it to keep the previous page visible while a refetch is in
// flight.
func (c *QueryCache) Peek(key Key) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks every entry of the given resource stale, forcing the next
// read of each to refetch. It returns the number of entries affected.
func (c *QueryCache) Invalidate(resource string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resourceGens[resource]++
	n := 0
	for k, e := range c.entries {
		if keyResource(k) == resource && !e.stale {
			e.stale = true
			n++
		}
	}
	if n > 0 {
		monitoring.CacheInvalidations.WithLabelValues(resource).Add(float64(n))
		c.logger.Debugf("Invalidated %d cached entries for resource %q", n, resource)
	}
	return n
}

// InvalidateKey marks a single entry stale.
func (c *QueryCache) InvalidateKey(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.keyGens[key.String()]++
	if e, ok := c.entries[key.String()]; ok && !e.stale {
		e.stale = true
		monitoring.CacheInvalidations.WithLabelValues(key.Resource()).Inc()
		c.logger.Debugf("Invalidated cached entry %s", key.String())
	}
}

func (c *QueryCache) fresh(e *cacheEntry) bool {
	if e.stale {
		return false
	}
	if c.staleAfter > 0 && time.Since(e.fetchedAt) > c.staleAfter {
		return false
	}
	return true
}

// keyResource recovers the resource part of an encoded key string.
func keyResource(encoded string) string {
	if i := strings.IndexByte(encoded, '|'); i >= 0 {
		return encoded[:i]
	}
	return encoded
}
