// utils/ttlcache.go - Small in-process TTL cache
package utils

import (
	"sync"
	"time"
)

// TTLCache is a process-local key/value store with per-entry expiry.
// It backs the JWKS key-set cache and the OAuth state store; both are
// rebuilt on restart, so losing entries is acceptable. A multi-instance
// deployment swaps this for a shared store at the injection point.
type TTLCache[V any] struct {
	mu      sync.Mutex
	entries map[string]ttlEntry[V]
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func NewTTLCache[V any]() *TTLCache[V] {
	return &TTLCache[V]{entries: make(map[string]ttlEntry[V])}
}

// Set stores value under key until now+ttl.
func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ttlEntry[V]{value: value, expiresAt: time.Now().Add(ttl)}
}

// Get returns the live value for key. Expired entries are evicted on read.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Pop removes and returns the live value for key.
func (c *TTLCache[V]) Pop(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
	}
	if !ok || time.Now().After(entry.expiresAt) {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// PurgeExpired drops every expired entry and reports how many were removed.
func (c *TTLCache[V]) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
