package cache

import (
	"github.com/enola-dev/enola-sub007/errors"
)

// Cache is a string-keyed cache of V.
type Cache[V any] interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (V, bool)

	// Set stores value under key. It reports true when the key was new.
	Set(key string, value V) (bool, error)

	// Delete removes key. It reports true when the key was present.
	Delete(key string) (bool, error)

	// Clear removes every entry, calling the eviction callback for each.
	Clear() error

	Size() int

	// Keys returns the current keys. LRU caches return them most recent first.
	Keys() []string

	// Stats returns the statistics of the cache, nil for a disabled cache.
	Stats() *Statistics

	Close() error
}

// EvictCallback is called with each entry leaving the cache, outside the
// cache's lock.
type EvictCallback[V any] func(key string, value V)

// NewNoop returns a cache that never holds anything. NewFromConfig returns it
// when caching is disabled.
func NewNoop[V any]() Cache[V] {
	return noopCache[V]{}
}

type noopCache[V any] struct{}

func (noopCache[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}

func (noopCache[V]) Set(string, V) (bool, error) { return false, nil }
func (noopCache[V]) Delete(string) (bool, error) { return false, nil }
func (noopCache[V]) Clear() error                { return nil }
func (noopCache[V]) Size() int                   { return 0 }
func (noopCache[V]) Keys() []string              { return nil }
func (noopCache[V]) Stats() *Statistics          { return nil }
func (noopCache[V]) Close() error                { return nil }

func validateKey(method, key string) error {
	if key == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "cache", method, "empty key")
	}
	return nil
}
