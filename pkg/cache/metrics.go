package cache

import (
	"github.com/enola-dev/enola-sub007/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// cacheMetrics mirrors Statistics as Prometheus series labelled by component.
type cacheMetrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	sets      prometheus.Counter
	deletes   prometheus.Counter
	evictions prometheus.Counter
	size      prometheus.Gauge
}

func newCacheMetrics(registry *metric.MetricsRegistry, component string) (*cacheMetrics, error) {
	labels := prometheus.Labels{"component": component}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "enola",
			Subsystem:   "cache",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	m := &cacheMetrics{
		hits:      counter("hits_total", "Cache lookups that found an entry"),
		misses:    counter("misses_total", "Cache lookups that found nothing"),
		sets:      counter("sets_total", "Cache writes"),
		deletes:   counter("deletes_total", "Cache entries removed explicitly"),
		evictions: counter("evictions_total", "Cache entries evicted for space"),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "enola",
			Subsystem:   "cache",
			Name:        "size",
			Help:        "Entries currently cached",
			ConstLabels: labels,
		}),
	}

	counters := []struct {
		name string
		c    prometheus.Counter
	}{
		{"cache_hits", m.hits},
		{"cache_misses", m.misses},
		{"cache_sets", m.sets},
		{"cache_deletes", m.deletes},
		{"cache_evictions", m.evictions},
	}
	for _, c := range counters {
		if err := registry.RegisterCounter(component, c.name, c.c); err != nil {
			return nil, err
		}
	}
	if err := registry.RegisterGauge(component, "cache_size", m.size); err != nil {
		return nil, err
	}
	return m, nil
}

// instrumented pairs the always-on Statistics with optional metrics so the
// cache implementations record each event once.
type instrumented struct {
	stats   *Statistics
	metrics *cacheMetrics
}

func (i instrumented) hit() {
	i.stats.Hit()
	if i.metrics != nil {
		i.metrics.hits.Inc()
	}
}

func (i instrumented) miss() {
	i.stats.Miss()
	if i.metrics != nil {
		i.metrics.misses.Inc()
	}
}

func (i instrumented) set() {
	i.stats.Set()
	if i.metrics != nil {
		i.metrics.sets.Inc()
	}
}

func (i instrumented) deleted() {
	i.stats.Delete()
	if i.metrics != nil {
		i.metrics.deletes.Inc()
	}
}

func (i instrumented) evicted() {
	i.stats.Eviction()
	if i.metrics != nil {
		i.metrics.evictions.Inc()
	}
}

func (i instrumented) resized(n int) {
	i.stats.UpdateSize(int64(n))
	if i.metrics != nil {
		i.metrics.size.Set(float64(n))
	}
}
