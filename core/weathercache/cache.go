// Package weathercache keeps recent weather lookups keyed by location name.
//
// Keys are normalised (trimmed, lower cased) so "Chicago" and " chicago "
// share an entry. Entries expire after the configured TTL and are evicted by
// the next lookup of their key. There is no background sweep.
package weathercache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kilianp07/adaptivelog/core/signals"
)

// DefaultTTL is how long an observation stays fresh.
const DefaultTTL = 5 * time.Minute

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a goroutine safe TTL cache. Concurrent writers to the same key
// race, the last one wins.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	clock   signals.Clock
}

// New returns an empty cache. A non-positive ttl uses DefaultTTL and a nil
// clock uses the system clock.
func New[V any](ttl time.Duration, clock signals.Clock) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = signals.SystemClock{}
	}
	return &Cache[V]{entries: make(map[string]entry[V]), ttl: ttl, clock: clock}
}

// Key normalises a location name.
func Key(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// TTL returns the freshness window.
func (c *Cache[V]) TTL() time.Duration { return c.ttl }

// Get returns the value for key if it was stored less than TTL ago. An
// expired entry is removed.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	k := Key(key)

	c.mu.RLock()
	e, ok := c.entries[k]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !c.expired(e) {
		return e.value, true
	}

	c.mu.Lock()
	// A concurrent Put may have refreshed the entry.
	if cur, ok := c.entries[k]; ok && c.expired(cur) {
		delete(c.entries, k)
	}
	c.mu.Unlock()
	return zero, false
}

func (c *Cache[V]) expired(e entry[V]) bool {
	return c.clock.Now().Sub(e.storedAt) >= c.ttl
}

// Put stores v under key, replacing any previous entry.
func (c *Cache[V]) Put(key string, v V) {
	c.mu.Lock()
	c.entries[Key(key)] = entry[V]{value: v, storedAt: c.clock.Now()}
	c.mu.Unlock()
}

// GetOrFetch returns the cached value for key or calls fetch and stores its
// result. The bool reports whether the value came from the cache. Fetch
// errors are returned as is and nothing is stored.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.Put(key, v)
	return v, false, nil
}

// Len returns the number of stored entries. Expired entries count until
// they are looked up.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
