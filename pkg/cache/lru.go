package cache

import (
	"container/list"
	"sync"

	"github.com/enola-dev/enola-sub007/errors"
)

type lruEntry[V any] struct {
	key   string
	value V
}

// lruCache keeps at most maxSize entries. The front of order is the most
// recently used entry.
type lruCache[V any] struct {
	instrumented
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List
	evict   EvictCallback[V]
}

// NewLRU creates a cache holding at most maxSize entries.
func NewLRU[V any](maxSize int, options ...Option[V]) (Cache[V], error) {
	if maxSize <= 0 {
		return nil, errors.Invalidf(errors.ErrInvalidConfig, "cache", "NewLRU", "max size %d", maxSize)
	}
	opts := applyOptions(options)
	stats, metrics, err := opts.instruments("NewLRU")
	if err != nil {
		return nil, err
	}
	return &lruCache[V]{
		instrumented: instrumented{stats: stats, metrics: metrics},
		maxSize:      maxSize,
		items:        make(map[string]*list.Element),
		order:        list.New(),
		evict:        opts.evict,
	}, nil
}

// Get marks key as recently used.
func (c *lruCache[V]) Get(key string) (V, bool) {
	var v V
	c.mu.Lock()
	el, ok := c.items[key]
	if ok {
		c.order.MoveToFront(el)
		v = el.Value.(*lruEntry[V]).value
	}
	c.mu.Unlock()

	if ok {
		c.hit()
	} else {
		c.miss()
	}
	return v, ok
}

func (c *lruCache[V]) Set(key string, value V) (bool, error) {
	if err := validateKey("Set", key); err != nil {
		return false, err
	}

	var evicted []lruEntry[V]
	c.mu.Lock()
	el, existed := c.items[key]
	if existed {
		el.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(el)
	} else {
		c.items[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
		for len(c.items) > c.maxSize {
			evicted = append(evicted, c.removeLocked(c.order.Back()))
		}
	}
	n := len(c.items)
	c.mu.Unlock()

	c.set()
	c.resized(n)
	for _, e := range evicted {
		c.evicted()
		if c.evict != nil {
			c.evict(e.key, e.value)
		}
	}
	return !existed, nil
}

func (c *lruCache[V]) Delete(key string) (bool, error) {
	if err := validateKey("Delete", key); err != nil {
		return false, err
	}
	c.mu.Lock()
	el, ok := c.items[key]
	var e lruEntry[V]
	if ok {
		e = c.removeLocked(el)
	}
	n := len(c.items)
	c.mu.Unlock()
	if !ok {
		return false, nil
	}

	c.deleted()
	c.resized(n)
	if c.evict != nil {
		c.evict(e.key, e.value)
	}
	return true, nil
}

// Clear calls the eviction callback from least to most recently used.
func (c *lruCache[V]) Clear() error {
	c.mu.Lock()
	var old []lruEntry[V]
	if c.evict != nil {
		old = make([]lruEntry[V], 0, len(c.items))
		for el := c.order.Back(); el != nil; el = el.Prev() {
			old = append(old, *el.Value.(*lruEntry[V]))
		}
	}
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.mu.Unlock()

	c.resized(0)
	for _, e := range old {
		c.evict(e.key, e.value)
	}
	return nil
}

func (c *lruCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns the keys most recently used first.
func (c *lruCache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.items))
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*lruEntry[V]).key)
	}
	return keys
}

func (c *lruCache[V]) Stats() *Statistics { return c.stats }

func (c *lruCache[V]) Close() error { return nil }

// removeLocked unlinks el. c.mu must be held.
func (c *lruCache[V]) removeLocked(el *list.Element) lruEntry[V] {
	e := el.Value.(*lruEntry[V])
	delete(c.items, e.key)
	c.order.Remove(el)
	return *e
}
