// Package metric provides the Prometheus registry shared by the stores, the
// batch pipelines and the caches.
//
// # Core Metrics
//
// NewMetricsRegistry registers:
//
//	enola_conversions_total{codec,direction,status}
//	enola_conversion_duration_seconds{codec,direction}
//	enola_store_operations_total{backend,operation,status}
//	enola_pipeline_items_total{pipeline,outcome}
//
// plus the Go runtime and process collectors. Record through CoreMetrics:
//
//	started := time.Now()
//	t, err := codec.ToThing(iri, msg)
//	registry.CoreMetrics().RecordConversion("message", metric.DirectionDecode, started, err)
//
// The recorders accept a nil *Metrics and do nothing, so components can be
// built without a registry.
//
// # Component Metrics
//
// Components register their own collectors through the MetricsRegistrar
// interface. Keys are "component.metric"; registering a key twice fails with
// an Invalid error:
//
//	err := registry.RegisterCounterVec("kind-resolver", "lookups", lookups)
//
// # Export
//
// There is no HTTP endpoint. WriteText dumps the registry in the Prometheus
// text format, which the CLI does on exit with --metrics.
package metric
