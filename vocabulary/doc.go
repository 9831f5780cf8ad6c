// Package vocabulary provides the IRIs shared across Enola.
//
// # Full IRIs Everywhere
//
// Thing properties are keyed by full IRIs. CURIEs ("rdfs:label", "xsd:int")
// are a display convenience: Expand and Compact convert at the CLI and document
// boundaries, never inside the codecs.
//
// # Synthesized IRIs
//
// The protobuf codec invents IRIs for message fields and enum values under the
// "enola:" scheme:
//
//	enola:/<message-full-name>/<field-number>
//	enola:/<enum-full-name>/<value-name>
//
// The scheme text is a persistence contract. Data written with it is read back
// by ParseFieldIRI in the message package, so it must not change.
//
// # Well-Known Properties
//
// WellKnown returns a Registry describing standard properties and the role they
// play in the typed views over a Thing:
//
//	labels := vocabulary.WellKnown().ByRole(vocabulary.RoleLabel)
//	// [rdfs:label skos:prefLabel schema:name dc:title] in priority order
//
// Custom registries are built with functional options:
//
//	reg := vocabulary.NewRegistry()
//	reg.Register("https://example.org/title",
//	    vocabulary.WithRole(vocabulary.RoleLabel, 0),
//	    vocabulary.WithDatatype(vocabulary.XsdString))
//
// Registry is safe for concurrent use. The constants are plain strings.
package vocabulary
