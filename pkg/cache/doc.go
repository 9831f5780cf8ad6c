// Package cache provides generic, thread-safe in-process caches.
//
// Two eviction policies are available:
//
//   - Simple keeps entries until they are deleted. The memory Thing store
//     uses it as its backing map.
//   - LRU holds a bounded number of entries and evicts the least recently
//     used one. The kind resolver uses it to remember IRI resolutions.
//
// # Statistics and Metrics
//
// Every cache keeps Statistics (hits, misses, sets, deletes, evictions and
// size). WithMetrics additionally exports them as enola_cache_* series
// labelled with a component name:
//
//	reg := metric.NewMetricsRegistry()
//	c, err := cache.NewLRU[kind.Resolution](512, cache.WithMetrics[kind.Resolution](reg, "kind_resolver"))
//
// A second cache registered under the same component fails, because its
// series would collide.
//
// # Configuration
//
// Config is the "cache" section of the configuration file. NewFromConfig
// returns a no-op cache when Enabled is false, so callers never branch on
// whether caching is on:
//
//	{"enabled": true, "strategy": "lru", "max_size": 1024}
//
// # Eviction Callbacks
//
// WithEvictionCallback observes entries leaving the cache through eviction,
// Delete or Clear. Callbacks run after the cache lock is released and may
// call back into the cache.
package cache
