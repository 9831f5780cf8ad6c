package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/enola-dev/enola-sub007/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// Pool runs a fixed number of workers that apply a processor to queued items.
type Pool[T any] struct {
	workers   int
	queueSize int
	processor func(context.Context, T) error
	onError   func(T, error)

	queue   chan T
	wg      sync.WaitGroup
	metrics *poolMetrics
	// runCtx is the context given to Start; blocking submits give up when it ends
	runCtx context.Context

	// mu guards the lifecycle flags. Submitters hold it shared so Stop
	// cannot close the queue under them.
	mu      sync.RWMutex
	started bool
	stopped bool

	submitted atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64

	registry   *metric.MetricsRegistry
	name       string
	metricsErr error
}

type poolMetrics struct {
	queueDepth prometheus.Gauge
	submitted  prometheus.Counter
	processed  *prometheus.CounterVec
	dropped    prometheus.Counter
	duration   *prometheus.HistogramVec
}

// Option configures a Pool.
type Option[T any] func(*Pool[T])

// WithMetricsRegistry exports the pool's counters as enola_worker_* series
// labelled pool=name.
func WithMetricsRegistry[T any](registry *metric.MetricsRegistry, name string) Option[T] {
	return func(p *Pool[T]) {
		p.registry = registry
		p.name = name
	}
}

// WithErrorHandler sets a function called with every item whose processing
// failed. It runs on the worker goroutine.
func WithErrorHandler[T any](fn func(T, error)) Option[T] {
	return func(p *Pool[T]) {
		p.onError = fn
	}
}

// NewPool creates a pool. Non-positive workers or queueSize fall back to 4
// workers and a queue of 256. A nil processor panics.
func NewPool[T any](workers, queueSize int, processor func(context.Context, T) error, opts ...Option[T]) *Pool[T] {
	if processor == nil {
		panic(ErrNilProcessor)
	}
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	p := &Pool[T]{
		workers:   workers,
		queueSize: queueSize,
		processor: processor,
		queue:     make(chan T, queueSize),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry != nil && p.name != "" {
		p.metrics, p.metricsErr = newPoolMetrics(p.registry, p.name)
	}
	return p
}

func newPoolMetrics(registry *metric.MetricsRegistry, name string) (*poolMetrics, error) {
	labels := prometheus.Labels{"pool": name}
	m := &poolMetrics{
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "enola", Subsystem: "worker", Name: "queue_depth",
			Help: "Items waiting in the worker pool queue", ConstLabels: labels,
		}),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "enola", Subsystem: "worker", Name: "submitted_total",
			Help: "Items accepted by the worker pool", ConstLabels: labels,
		}),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enola", Subsystem: "worker", Name: "processed_total",
			Help: "Items processed by the worker pool", ConstLabels: labels,
		}, []string{"status"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "enola", Subsystem: "worker", Name: "dropped_total",
			Help: "Items rejected because the queue was full", ConstLabels: labels,
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "enola", Subsystem: "worker", Name: "processing_duration_seconds",
			Help:        "Time spent processing one item",
			Buckets:     []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			ConstLabels: labels,
		}, []string{"status"}),
	}

	const component = "worker_pool"
	if err := registry.RegisterGauge(component, name+"_queue_depth", m.queueDepth); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, name+"_submitted", m.submitted); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(component, name+"_processed", m.processed); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(component, name+"_dropped", m.dropped); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec(component, name+"_duration", m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// Start launches the workers. They stop when ctx ends or after Stop.
// Start fails when metrics registration failed in NewPool.
func (p *Pool[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.metricsErr != nil {
		return p.metricsErr
	}
	if p.started {
		return ErrPoolAlreadyStarted
	}
	p.runCtx = ctx
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(ctx)
	}
	p.started = true
	return nil
}

// Submit queues work without blocking. It fails with ErrQueueFull when the
// queue has no free slot.
func (p *Pool[T]) Submit(work T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.acceptingLocked(); err != nil {
		return err
	}
	select {
	case p.queue <- work:
		p.accepted()
		return nil
	default:
		p.dropped.Add(1)
		if p.metrics != nil {
			p.metrics.dropped.Inc()
		}
		return ErrQueueFull
	}
}

// SubmitWait queues work, waiting for a free slot until ctx or the pool's
// run context ends.
func (p *Pool[T]) SubmitWait(ctx context.Context, work T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.acceptingLocked(); err != nil {
		return err
	}
	select {
	case p.queue <- work:
		p.accepted()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.runCtx.Done():
		return p.runCtx.Err()
	}
}

func (p *Pool[T]) acceptingLocked() error {
	if !p.started {
		return ErrPoolNotStarted
	}
	if p.stopped {
		return ErrPoolStopped
	}
	return nil
}

func (p *Pool[T]) accepted() {
	p.submitted.Add(1)
	if p.metrics != nil {
		p.metrics.submitted.Inc()
		p.metrics.queueDepth.Set(float64(len(p.queue)))
	}
}

// Stop closes the queue and waits up to timeout for queued items to be
// processed.
func (p *Pool[T]) Stop(timeout time.Duration) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil
	}
	if !p.stopped {
		p.stopped = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
		return ErrStopTimeout
	}
}

// PoolStats is a snapshot of the pool counters.
type PoolStats struct {
	Workers    int   `json:"workers"`
	QueueSize  int   `json:"queue_size"`
	QueueDepth int   `json:"queue_depth"`
	Submitted  int64 `json:"submitted"`
	Processed  int64 `json:"processed"`
	Failed     int64 `json:"failed"`
	Dropped    int64 `json:"dropped"`
}

func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		Workers:    p.workers,
		QueueSize:  p.queueSize,
		QueueDepth: len(p.queue),
		Submitted:  p.submitted.Load(),
		Processed:  p.processed.Load(),
		Failed:     p.failed.Load(),
		Dropped:    p.dropped.Load(),
	}
}

func (p *Pool[T]) work(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-p.queue:
			if !ok {
				return
			}
			p.process(ctx, item)
		}
	}
}

func (p *Pool[T]) process(ctx context.Context, item T) {
	start := time.Now()
	err := p.processor(ctx, item)

	p.processed.Add(1)
	status := "ok"
	if err != nil {
		status = "error"
		p.failed.Add(1)
		if p.onError != nil {
			p.onError(item, err)
		}
	}
	if p.metrics != nil {
		p.metrics.processed.WithLabelValues(status).Inc()
		p.metrics.duration.WithLabelValues(status).Observe(time.Since(start).Seconds())
		p.metrics.queueDepth.Set(float64(len(p.queue)))
	}
}
