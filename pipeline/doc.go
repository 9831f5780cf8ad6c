// Package pipeline converts many inputs to Things concurrently.
//
// Batch converts a slice and returns the Things in input order. Ingester
// reads a channel and puts each Thing into a store.Store through a bounded
// worker pool. Both take a Converter, typically a closure over a message or
// graph codec:
//
//	b := pipeline.NewBatch("proto", func(ctx context.Context, m proto.Message) (thing.Thing, error) {
//		return codec.ToThing(m)
//	}, pipeline.WithWorkers(8))
//	report, err := b.Run(ctx, messages)
//
// A failed item either lands in the report's Failures (SkipAndContinue, the
// default) or ends the run (AbortOnFirst). Failures carry the index of their
// input, so callers can report which record was bad.
package pipeline
