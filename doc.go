// Package enola converts Things, property graphs keyed by IRI, between
// protobuf messages, RDF quads and YAML or JSON documents.
//
// # Packages
//
//	thing       immutable Things and the Value variants they hold
//	datatype    datatype codecs, text recognition and the built-in vocabularies
//	router      IRI template matching and expansion
//	kind        named IRI templates loaded from a catalog, with cached resolution
//	message     protobuf messages to Things and back, driven by descriptors
//	graph       Things to RDF quads and back, N-Quads reading and writing
//	document    the YAML and JSON document form of a Thing
//	store       Thing persistence in memory, SQLite or a NATS KV bucket
//	pipeline    concurrent batch conversion and ingestion into a store
//	config      layered JSON configuration with ENOLA_* overrides
//	health      component health checks and aggregation
//	metric      Prometheus metrics for conversions, stores and batches
//	errors      classified errors: invalid, transient, fatal
//
// The enola command in cmd/enola exposes these as subcommands.
//
// # Errors
//
// Every package reports failures through the errors package. Callers branch
// on the class, not the message:
//
//	t, err := codec.ToThing(iri, msg)
//	switch {
//	case errors.IsInvalid(err):
//		// bad input, do not retry
//	case errors.IsTransient(err):
//		// retry with backoff
//	}
package enola
