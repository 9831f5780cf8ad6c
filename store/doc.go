// Package store persists Things by IRI.
//
// Three backends implement Store:
//
//   - Memory holds Things in process, backed by a pkg/cache simple cache.
//   - SQLite keeps one row per Thing in a things table, using the pure Go
//     ncruces driver.
//   - KV writes to a NATS JetStream key-value bucket. Keys are the base64url
//     form of the IRI, and transient failures are retried with pkg/retry.
//
// The SQLite and KV backends serialize Things as document JSON, so rows and
// bucket values are readable with ordinary tools.
//
// Open picks a backend from Config and wraps it with Instrument, which
// counts every operation in enola_store_operations_total:
//
//	s, err := store.Open(ctx, store.Config{Backend: "sqlite", SQLitePath: "things.db"}, reg.CoreMetrics(), logger)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
// Get reports a missing IRI with errors.ErrKeyNotFound; Delete of a missing
// IRI succeeds.
package store
