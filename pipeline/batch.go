package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
	"golang.org/x/sync/errgroup"
)

// Converter turns one input into a Thing.
type Converter[In any] func(ctx context.Context, in In) (thing.Thing, error)

// Failure is an input that could not be handled.
type Failure struct {
	Index int
	Err   error
}

func (f Failure) Error() string { return fmt.Sprintf("item %d: %v", f.Index, f.Err) }

func (f Failure) Unwrap() error { return f.Err }

// Report is the outcome of a Batch run.
type Report struct {
	// Things holds the converted items in input order; failed items are
	// left out.
	Things   []thing.Thing
	Failures []Failure
}

// Batch converts slices of inputs concurrently.
type Batch[In any] struct {
	name     string
	convert  Converter[In]
	settings settings
}

// NewBatch creates a Batch. name labels its metrics and log lines.
func NewBatch[In any](name string, convert Converter[In], opts ...Option) *Batch[In] {
	return &Batch[In]{name: name, convert: convert, settings: newSettings(opts)}
}

// Run converts inputs. With SkipAndContinue the error is nil and failures
// are listed in the report; with AbortOnFirst the first failure is returned
// as a Failure and the report holds what finished before it. Cancelling ctx
// stops the run in both modes.
func (b *Batch[In]) Run(ctx context.Context, inputs []In) (Report, error) {
	s := b.settings
	m := s.metrics()

	results := make([]thing.Thing, len(inputs))
	done := make([]bool, len(inputs))
	var (
		mu       sync.Mutex
		failures []Failure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			t, err := b.convert(gctx, in)
			m.RecordConversion(b.name, s.direction, started, err)
			if err == nil {
				results[i], done[i] = t, true
				return nil
			}

			f := Failure{Index: i, Err: err}
			if s.policy == AbortOnFirst {
				return f
			}
			s.logger.Warn("skipping item", "pipeline", b.name, "index", i, "class", errors.Classify(err).String(), "error", err)
			mu.Lock()
			failures = append(failures, f)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	report := Report{Failures: failures}
	for i, ok := range done {
		if ok {
			report.Things = append(report.Things, results[i])
		}
	}
	sortFailures(report.Failures)

	m.RecordBatchItems(b.name, "ok", len(report.Things))
	m.RecordBatchItems(b.name, "failed", len(report.Failures))
	if err != nil {
		aborted := 0
		var f Failure
		if stderrors.As(err, &f) {
			aborted = 1
		}
		m.RecordBatchItems(b.name, "failed", aborted)
		m.RecordBatchItems(b.name, "skipped", len(inputs)-len(report.Things)-len(report.Failures)-aborted)
		s.logger.Error("batch aborted", "pipeline", b.name, "converted", len(report.Things), "error", err)
		return report, err
	}
	s.logger.Debug("batch finished", "pipeline", b.name, "converted", len(report.Things), "failed", len(report.Failures))
	return report, nil
}

func sortFailures(fs []Failure) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].Index < fs[j].Index })
}
