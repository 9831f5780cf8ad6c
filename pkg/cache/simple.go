package cache

import (
	"sync"
)

// simpleCache holds entries until they are deleted.
type simpleCache[V any] struct {
	instrumented
	mu    sync.RWMutex
	items map[string]V
	evict EvictCallback[V]
}

// NewSimple creates an unbounded cache.
func NewSimple[V any](options ...Option[V]) (Cache[V], error) {
	opts := applyOptions(options)
	stats, metrics, err := opts.instruments("NewSimple")
	if err != nil {
		return nil, err
	}
	return &simpleCache[V]{
		instrumented: instrumented{stats: stats, metrics: metrics},
		items:        make(map[string]V),
		evict:        opts.evict,
	}, nil
}

func (c *simpleCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		c.hit()
	} else {
		c.miss()
	}
	return v, ok
}

func (c *simpleCache[V]) Set(key string, value V) (bool, error) {
	if err := validateKey("Set", key); err != nil {
		return false, err
	}
	c.mu.Lock()
	_, existed := c.items[key]
	c.items[key] = value
	n := len(c.items)
	c.mu.Unlock()

	c.set()
	c.resized(n)
	return !existed, nil
}

func (c *simpleCache[V]) Delete(key string) (bool, error) {
	if err := validateKey("Delete", key); err != nil {
		return false, err
	}
	c.mu.Lock()
	v, ok := c.items[key]
	delete(c.items, key)
	n := len(c.items)
	c.mu.Unlock()
	if !ok {
		return false, nil
	}

	c.deleted()
	c.resized(n)
	if c.evict != nil {
		c.evict(key, v)
	}
	return true, nil
}

func (c *simpleCache[V]) Clear() error {
	c.mu.Lock()
	old := c.items
	c.items = make(map[string]V)
	c.mu.Unlock()

	c.resized(0)
	if c.evict != nil {
		for k, v := range old {
			c.evict(k, v)
		}
	}
	return nil
}

func (c *simpleCache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *simpleCache[V]) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}

func (c *simpleCache[V]) Stats() *Statistics { return c.stats }

func (c *simpleCache[V]) Close() error { return nil }
