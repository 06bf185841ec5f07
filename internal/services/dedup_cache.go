package services

import (
	"container/list"
	"sync"
	"time"

	"github.com/codyseavey/dataset-ingest/internal/metrics"
)

// DedupCache is a bounded recently-seen filter: a capacity-limited LRU map
// whose entries carry a fixed expiry stamped at insertion. It answers
// "was this key accepted within the window", not "how often".
//
// Expiry is lazy: expired entries are treated as absent on lookup and removed
// then, with no background timer. The TTL is never refreshed by lookups or
// by duplicate hits, so a key falls out of the window a fixed time after it
// was first accepted.
//
// The cache is intentionally approximate. Two racing requests for the same
// key can both miss before either marks it; callers bound that race by
// calling MarkSeen immediately after the check, before the write is issued.
type DedupCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List // front = most recently used
}

type dedupEntry struct {
	key       string
	expiresAt time.Time
}

func NewDedupCache(capacity int, ttl time.Duration) *DedupCache {
	if capacity <= 0 {
		capacity = 50000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DedupCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// SeenRecently reports whether key was marked within the TTL window.
// A live hit counts as a touch for LRU ordering but does not extend expiry.
func (c *DedupCache) SeenRecently(key string) bool {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	ent := elem.Value.(*dedupEntry)
	if now.After(ent.expiresAt) {
		c.removeLocked(elem)
		return false
	}
	c.order.MoveToFront(elem)
	return true
}

// MarkSeen records key as seen now, evicting the least-recently-used entry
// if the cache is full. Marking an already-live key refreshes its LRU
// position but keeps the original expiry.
func (c *DedupCache) MarkSeen(key string) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*dedupEntry)
		if now.After(ent.expiresAt) {
			ent.expiresAt = now.Add(c.ttl)
		}
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			debugLog("Dedup cache full (%d), evicting LRU key", c.capacity)
			c.removeLocked(oldest)
		}
	}

	elem := c.order.PushFront(&dedupEntry{key: key, expiresAt: now.Add(c.ttl)})
	c.items[key] = elem
	metrics.DedupCacheSize.Set(float64(len(c.items)))
}

// Len returns the current entry count, including not-yet-collected expired
// entries.
func (c *DedupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *DedupCache) removeLocked(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*dedupEntry).key)
	metrics.DedupCacheSize.Set(float64(len(c.items)))
}
