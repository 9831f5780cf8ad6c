package cache

import (
	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/metric"
)

// Option configures a cache.
type Option[V any] func(*cacheOptions[V])

type cacheOptions[V any] struct {
	registry *metric.MetricsRegistry
	// component labels the exported metrics
	component string
	evict     EvictCallback[V]
}

// WithMetrics exports the cache statistics to registry, labelled with
// component. A nil registry or empty component leaves metrics off.
func WithMetrics[V any](registry *metric.MetricsRegistry, component string) Option[V] {
	return func(o *cacheOptions[V]) {
		if registry == nil || component == "" {
			return
		}
		o.registry = registry
		o.component = component
	}
}

// WithEvictionCallback sets the function called for entries that are
// evicted, deleted or cleared.
func WithEvictionCallback[V any](fn EvictCallback[V]) Option[V] {
	return func(o *cacheOptions[V]) {
		o.evict = fn
	}
}

func applyOptions[V any](options []Option[V]) *cacheOptions[V] {
	o := &cacheOptions[V]{}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// instruments builds the shared stats and optional metrics of a new cache.
func (o *cacheOptions[V]) instruments(method string) (*Statistics, *cacheMetrics, error) {
	if o.registry == nil {
		return NewStatistics(), nil, nil
	}
	m, err := newCacheMetrics(o.registry, o.component)
	if err != nil {
		return nil, nil, errors.WrapTransient(err, "cache", method, "metrics registration")
	}
	return NewStatistics(), m, nil
}
