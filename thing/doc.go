// Package thing is the generic entity model: a Thing is an IRI plus
// IRI-keyed properties whose values come from a closed set of variants.
//
// # Values
//
// Value is sealed. The variants are StringValue, LinkValue, LiteralValue,
// StructValue, ListValue and Unset. Multiplicity is always a ListValue;
// a property never maps to a raw collection.
//
// # Construction
//
// Things are immutable and backed by a persistent hash map, so derived
// copies share structure:
//
//	b := thing.NewBuilder("https://example.org/alice")
//	b.Set(vocabulary.RdfsLabel, thing.String("Alice"))
//	b.Add(vocabulary.RdfType, thing.Link("https://schema.org/Person"))
//	alice, err := b.Build()
//
//	older := alice.With("https://example.org/age", thing.Literal("42", vocabulary.XsdInt))
//
// # Access
//
// Get returns Unset for an absent key; Lookup distinguishes absence from an
// explicit Unset. Typed views (Label, Description, Types, MessageType) are
// free functions reading well-known properties.
//
// # Thread Safety
//
// Thing and Value are safe to share between goroutines. Builder is not.
package thing
