package nominatim

import (
	"context"
	"sync"

	"github.com/pocketwx/pocketwx/internal/domain"
)

// ReversePlacer is the reverse geocoding surface the cache wraps.
type ReversePlacer interface {
	ReversePlace(ctx context.Context, lat, lon float64) (domain.Location, error)
}

// CachedReverse wraps a ReversePlacer with an in-memory LRU cache keyed
// by the coordinate identity key. The same spot is reverse-geocoded at
// most once per process; only successes are cached so transient
// failures can be retried.
type CachedReverse struct {
	inner ReversePlacer
	cache *lruCache

	onLookup func(result string) // result: "hit" or "miss"
}

// NewCachedReverse creates a cache decorator around a reverse geocoder.
// onLookup, when non-nil, is invoked per lookup for metrics.
func NewCachedReverse(inner ReversePlacer, maxEntries int, onLookup func(result string)) *CachedReverse {
	return &CachedReverse{
		inner:    inner,
		cache:    newLRUCache(maxEntries),
		onLookup: onLookup,
	}
}

func (c *CachedReverse) ReversePlace(ctx context.Context, lat, lon float64) (domain.Location, error) {
	key := domain.CoordinateKey(lat, lon)
	if loc, ok := c.cache.get(key); ok {
		c.lookup("hit")
		return loc, nil
	}
	c.lookup("miss")

	loc, err := c.inner.ReversePlace(ctx, lat, lon)
	if err != nil {
		return loc, err
	}
	c.cache.put(key, loc)
	return loc, nil
}

func (c *CachedReverse) lookup(result string) {
	if c.onLookup != nil {
		c.onLookup(result)
	}
}

// lruCache is a simple thread-safe LRU cache for resolved locations.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Location
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Location{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
