package cache

import (
	"sync"
	"time"
)

// entry stores a cached value and its absolute expiration timestamp.
// Entries are never handed out; Get returns the value only.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a map-backed cache with per-entry TTL and lazy expiry:
// expired entries are purged when Get touches them, or in bulk via
// SweepExpired (no background janitor). All operations are guarded by a
// single plain mutex; no method calls another while holding the lock.
type TTLCache[V any] struct {
	mu    sync.Mutex
	items map[string]entry[V]
}

// NewTTLCache constructs an empty TTLCache. Instances are meant to be
// created at the composition root and injected where needed; there is no
// package-level cache.
func NewTTLCache[V any]() *TTLCache[V] {
	return &TTLCache[V]{
		items: make(map[string]entry[V]),
	}
}

// now is a small indirection to allow test stubbing.
var now = time.Now

// Get implements Cache.Get. Finding an expired entry removes it as a side
// effect, so a single Get is enough to purge a dead key.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if !e.expiresAt.After(now()) {
		delete(c.items, key)
		return zero, false
	}
	return e.value, true
}

// Set implements Cache.Set. Any previous entry under key is discarded.
// expiresAt is stamped unconditionally, so ttl <= 0 stores an entry that is
// already expired; the next Get on that key misses and purges it.
func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[V]{
		value:     value,
		expiresAt: now().Add(ttl),
	}
}

// Delete implements Cache.Delete. Deleting an absent key returns false.
func (c *TTLCache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	return true
}

// SweepExpired implements Cache.SweepExpired. Hold time is O(n), so this
// belongs on maintenance paths (shutdown), not on the request path.
func (c *TTLCache[V]) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	nowTs := now()
	removed := 0
	for k, e := range c.items {
		if !e.expiresAt.After(nowTs) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Len implements Cache.Len. It counts only non-expired entries.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	nowTs := now()
	count := 0
	for _, e := range c.items {
		if e.expiresAt.After(nowTs) {
			count++
		}
	}
	return count
}

// rawLen returns the entry count including expired entries, for tests that
// observe lazy purging.
func (c *TTLCache[V]) rawLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Ensure TTLCache implements Cache at compile time.
var _ Cache[any] = (*TTLCache[any])(nil)
