// Package worker provides a generic worker pool with a bounded queue.
//
// A Pool runs a fixed number of goroutines that apply one processor function
// to queued items. The pipeline Ingester uses it to convert and store Things
// concurrently while keeping memory bounded by the queue size:
//
//	pool := worker.NewPool(8, 256, func(ctx context.Context, t thing.Thing) error {
//		return st.Put(ctx, t)
//	}, worker.WithErrorHandler(func(t thing.Thing, err error) {
//		logger.Warn("store failed", "iri", t.IRI(), "error", err)
//	}))
//	if err := pool.Start(ctx); err != nil {
//		return err
//	}
//	defer pool.Stop(30 * time.Second)
//
// # Submitting
//
// Submit never blocks and returns ErrQueueFull when the queue has no free
// slot, leaving the caller to decide whether to drop or retry. SubmitWait
// blocks until a slot frees up or either the caller's context or the Start
// context ends.
//
// # Shutdown
//
// Stop closes the queue; workers finish what is already queued and exit.
// Cancelling the Start context makes workers exit without draining. Items
// submitted after Stop fail with ErrPoolStopped.
//
// # Observability
//
// Stats always reports submitted, processed, failed and dropped counts.
// WithMetricsRegistry also exports enola_worker_* series with a pool label.
package worker
