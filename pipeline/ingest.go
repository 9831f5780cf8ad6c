package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/pkg/worker"
	"github.com/enola-dev/enola-sub007/store"
)

// IngestReport is the outcome of one Ingest call.
type IngestReport struct {
	Stored int
	// Skipped counts items dropped unprocessed after an abort or cancel.
	Skipped  int
	Failures []Failure
}

// Ingester converts streams of inputs and puts the results into a store.
// All Ingest calls share one bounded worker pool, started on first use and
// stopped by Close.
type Ingester[In any] struct {
	name     string
	convert  Converter[In]
	store    store.Store
	settings settings

	once     sync.Once
	pool     *worker.Pool[*job[In]]
	startErr error
}

// run is the state of one Ingest call.
type run struct {
	ctx    context.Context
	cancel context.CancelFunc
	policy Policy
	wg     sync.WaitGroup

	mu     sync.Mutex
	report IngestReport
	first  error
}

type job[In any] struct {
	run   *run
	index int
	in    In
}

// NewIngester creates an Ingester writing to st.
func NewIngester[In any](name string, convert Converter[In], st store.Store, opts ...Option) *Ingester[In] {
	return &Ingester[In]{name: name, convert: convert, store: st, settings: newSettings(opts)}
}

func (g *Ingester[In]) start() error {
	g.once.Do(func() {
		opts := []worker.Option[*job[In]]{
			worker.WithErrorHandler(func(j *job[In], err error) {
				g.settings.logger.Debug("ingest item failed", "pipeline", g.name, "index", j.index, "class", errors.Classify(err).String(), "error", err)
			}),
		}
		if g.settings.registry != nil {
			opts = append(opts, worker.WithMetricsRegistry[*job[In]](g.settings.registry, g.name))
		}
		g.pool = worker.NewPool(g.settings.workers, g.settings.queueSize, g.process, opts...)
		g.startErr = g.pool.Start(context.Background())
	})
	return g.startErr
}

func (g *Ingester[In]) process(_ context.Context, j *job[In]) error {
	r := j.run
	defer r.wg.Done()
	if r.ctx.Err() != nil {
		r.mu.Lock()
		r.report.Skipped++
		r.mu.Unlock()
		return nil
	}

	started := time.Now()
	t, err := g.convert(r.ctx, j.in)
	g.settings.metrics().RecordConversion(g.name, g.settings.direction, started, err)
	if err == nil {
		err = g.store.Put(r.ctx, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		r.report.Stored++
		return nil
	}
	f := Failure{Index: j.index, Err: err}
	r.report.Failures = append(r.report.Failures, f)
	// A fatal error, such as a full store, ends the run under either policy.
	if (r.policy == AbortOnFirst || errors.IsFatal(err)) && r.first == nil {
		r.first = f
		r.cancel()
	}
	return err
}

// Ingest consumes inputs until the channel closes or ctx ends and waits for
// every accepted item. Items are numbered in arrival order. With
// AbortOnFirst the first failure stops intake, queued items are skipped,
// and the failure is returned. A fatal failure does the same under
// SkipAndContinue.
func (g *Ingester[In]) Ingest(ctx context.Context, inputs <-chan In) (IngestReport, error) {
	if err := g.start(); err != nil {
		return IngestReport{}, err
	}
	s := g.settings
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	r := &run{ctx: runCtx, cancel: cancel, policy: s.policy}

	received := 0
	var intakeErr error
intake:
	for {
		select {
		case <-runCtx.Done():
			break intake
		case in, ok := <-inputs:
			if !ok {
				break intake
			}
			r.wg.Add(1)
			if err := g.pool.SubmitWait(runCtx, &job[In]{run: r, index: received, in: in}); err != nil {
				r.wg.Done()
				intakeErr = err
				break intake
			}
			received++
		}
	}
	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	report := r.report
	sortFailures(report.Failures)

	m := s.metrics()
	m.RecordBatchItems(g.name, "ok", report.Stored)
	m.RecordBatchItems(g.name, "failed", len(report.Failures))
	m.RecordBatchItems(g.name, "skipped", report.Skipped)

	switch {
	case r.first != nil:
		s.logger.Error("ingest aborted", "pipeline", g.name, "stored", report.Stored, "error", r.first)
		return report, r.first
	case ctx.Err() != nil:
		return report, ctx.Err()
	case intakeErr != nil:
		return report, intakeErr
	}
	s.logger.Info("ingest finished", "pipeline", g.name, "stored", report.Stored, "failed", len(report.Failures))
	return report, nil
}

// Close stops the worker pool, waiting up to timeout for it to drain.
func (g *Ingester[In]) Close(timeout time.Duration) error {
	if g.pool == nil {
		return nil
	}
	return g.pool.Stop(timeout)
}
