package cache

import (
	"sync"
	"time"
)

type entry struct {
	v        any
	storedAt time.Time
}

// TTLCache is the pipeline store: opaque string keys, a single TTL for
// every entry. Expired entries are not evicted on read; a later Set
// overwrites them in place.
type TTLCache struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time
	m   map[string]entry
}

// NewTTLCache creates a cache whose entries live for ttl.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{ttl: ttl, now: time.Now, m: make(map[string]entry)}
}

// Get returns the stored value while the entry is younger than the TTL.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.v, true
}

// Set stores value under key, resetting its age.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	c.m[key] = entry{v: value, storedAt: c.now()}
	c.mu.Unlock()
}
