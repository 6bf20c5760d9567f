package storage

import (
	"container/list"
	"sync"
	"time"
)

type cacheItem struct {
	key       string
	value     interface{}
	timestamp time.Time
	element   *list.Element
}

// MemoryCache is an LRU cache with optional TTL. The report service uses it
// to bound repeat external lookups within one process lifetime; correctness
// never depends on a hit.
type MemoryCache struct {
	maxSize int
	items   map[string]*cacheItem
	lruList *list.List
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewMemoryCache creates a cache of maxSize entries; ttl of zero disables
// expiry.
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 128
	}
	return &MemoryCache{
		maxSize: maxSize,
		items:   make(map[string]*cacheItem),
		lruList: list.New(),
		ttl:     ttl,
	}
}

// Set adds or refreshes an entry, evicting the least recently used entry
// when full.
func (mc *MemoryCache) Set(key string, value interface{}) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := time.Now()
	if item, exists := mc.items[key]; exists {
		item.value = value
		item.timestamp = now
		mc.lruList.MoveToFront(item.element)
		return
	}

	if len(mc.items) >= mc.maxSize {
		mc.evictOldest()
	}

	item := &cacheItem{key: key, value: value, timestamp: now}
	item.element = mc.lruList.PushFront(item)
	mc.items[key] = item
}

// Get returns the cached value when present and unexpired.
func (mc *MemoryCache) Get(key string) (interface{}, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	item, exists := mc.items[key]
	if !exists {
		return nil, false
	}

	if mc.ttl > 0 && time.Since(item.timestamp) > mc.ttl {
		mc.removeItem(item)
		return nil, false
	}

	mc.lruList.MoveToFront(item.element)
	return item.value, true
}

// Len returns the live entry count.
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.items)
}

func (mc *MemoryCache) evictOldest() {
	oldest := mc.lruList.Back()
	if oldest != nil {
		mc.removeItem(oldest.Value.(*cacheItem))
	}
}

func (mc *MemoryCache) removeItem(item *cacheItem) {
	mc.lruList.Remove(item.element)
	delete(mc.items, item.key)
}
