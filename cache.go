package duoskema

import (
	"container/list"
	"sync"
	"time"
)

// Cache memoizes compiled schema pairs by content signature. Implementations
// must be safe for concurrent use: compilation is a pure function of its
// inputs, so a lost check-then-insert race costs duplicate work, never
// correctness.
type Cache interface {
	Get(key string) (*CompiledPair, bool)
	Set(key string, pair *CompiledPair)
	Clear()
}

// memoryCache is a bounded LRU with an optional TTL. Entries move to the
// front on hit; eviction pops the back.
type memoryCache struct {
	mu         sync.Mutex
	data       map[string]*list.Element
	lru        *list.List
	maxEntries int
	ttl        time.Duration
}

type cacheEntry struct {
	key  string
	pair *CompiledPair
	at   time.Time
}

// NewMemoryCache returns a bounded in-memory cache. maxEntries <= 0 means
// unbounded; ttl <= 0 disables expiry.
func NewMemoryCache(maxEntries int, ttl time.Duration) Cache {
	return &memoryCache{
		data:       make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

func (c *memoryCache) Get(key string) (*CompiledPair, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.data[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*cacheEntry)
	if c.ttl > 0 && time.Since(e.at) > c.ttl {
		c.lru.Remove(el)
		delete(c.data, key)
		return nil, false
	}
	c.lru.MoveToFront(el)
	return e.pair, true
}

func (c *memoryCache) Set(key string, pair *CompiledPair) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.data[key]; ok {
		e := el.Value.(*cacheEntry)
		e.pair = pair
		e.at = time.Now()
		c.lru.MoveToFront(el)
		return
	}
	c.data[key] = c.lru.PushFront(&cacheEntry{key: key, pair: pair, at: time.Now()})
	if c.maxEntries > 0 {
		for c.lru.Len() > c.maxEntries {
			oldest := c.lru.Back()
			if oldest == nil {
				break
			}
			c.lru.Remove(oldest)
			delete(c.data, oldest.Value.(*cacheEntry).key)
		}
	}
}

func (c *memoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]*list.Element)
	c.lru.Init()
}

// defaultCache is the process-wide cache used when Options.Cache is nil.
// Bounded, unlike the unbounded process-lifetime map it replaces.
var defaultCache = NewMemoryCache(1024, 0)

// ClearCache drops every entry from the default process-wide cache.
func ClearCache() { defaultCache.Clear() }
