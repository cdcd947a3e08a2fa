// Package cache provides a small in-memory LRU cache with per-entry TTL,
// keyed by normalized query text. It fronts the validation/optimization
// pipeline so repeated questions skip both engines.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// DefaultMaxEntries bounds the cache when the caller gives no size.
const DefaultMaxEntries = 1000

// DefaultTTL expires entries when the caller gives no TTL.
const DefaultTTL = time.Hour

// Key derives the cache key for a query: the SHA-256 of its lower-cased,
// trimmed text. Queries differing only in case or surrounding whitespace
// share an entry.
func Key(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Statistics reports cache effectiveness counters.
type Statistics struct {
	Hits      int `json:"hits" yaml:"hits"`
	Misses    int `json:"misses" yaml:"misses"`
	Evictions int `json:"evictions" yaml:"evictions"`
	Entries   int `json:"entries" yaml:"entries"`
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// Cache is a mutex-guarded LRU with TTL. Safe for concurrent use.
type Cache[V any] struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	order      *list.List // front = most recently used
	items      map[string]*list.Element
	stats      Statistics
	now        func() time.Time
}

// New creates a cache holding at most maxEntries values for at most ttl
// each. Non-positive arguments fall back to the defaults.
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		maxEntries: maxEntries,
		ttl:        ttl,
		order:      list.New(),
		items:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Get returns the cached value for key and whether it was present and fresh.
// Expired entries are removed on access.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return zero, false
	}
	ent := el.Value.(*entry[V])
	if c.now().After(ent.expiresAt) {
		c.removeElement(el)
		c.stats.Misses++
		return zero, false
	}
	c.order.MoveToFront(el)
	c.stats.Hits++
	return ent.value, true
}

// Set stores the value under key, evicting the least recently used entry
// when the cache is full.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry[V])
		ent.value = value
		ent.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxEntries {
		if back := c.order.Back(); back != nil {
			c.removeElement(back)
			c.stats.Evictions++
		}
	}

	el := c.order.PushFront(&entry[V]{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	})
	c.items[key] = el
}

// Invalidate drops every entry whose original key matches exactly, or the
// whole cache when key is empty.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key == "" {
		c.order.Init()
		c.items = make(map[string]*list.Element)
		return
	}
	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// Statistics returns a copy of the counters plus the current entry count.
func (c *Cache[V]) Statistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := c.stats
	stats.Entries = c.order.Len()
	return stats
}

func (c *Cache[V]) removeElement(el *list.Element) {
	ent := el.Value.(*entry[V])
	delete(c.items, ent.key)
	c.order.Remove(el)
}
