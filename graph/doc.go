// Package graph converts Things to RDF quads and back, using the term types
// of github.com/cayleygraph/quad.
//
// # Encoding
//
// Each property of a Thing becomes one quad with the Thing as subject:
//
//	StringValue   plain literal          "Alice"
//	LiteralValue  typed literal          "42"^^<xsd:int>
//	LinkValue     IRI object             <https://example.org/bob>
//	StructValue   the nested subject     <iri> or _:<uuid>, plus its quads
//	ListValue     RDF collection head    rdf:first / rdf:rest / rdf:nil
//	Unset         nothing
//
// The quad pointing at a struct carries the graph label
// vocabulary.GraphNested. That keeps a struct apart from a link to the same
// IRI, and keeps a struct without properties, which has no quads of its own.
//
// Anonymous structs and collection cells get blank node ids derived with
// UUIDv5, from the struct's content and from (subject, predicate, index)
// respectively. Encoding the same Thing twice gives identical quads.
//
// # Decoding
//
// Quads are grouped by subject. Decode rebuilds one Thing: objects reached
// through a nested quad, and blank nodes, become StructValues; any other IRI
// object is a LinkValue, even when the graph describes it. A subject nothing
// contains is a root, and Decode fails with ErrMultipleRoots when there are
// several. A reference back into the subject being decoded becomes a
// LinkValue so cycles terminate.
//
// DecodeAll returns one Thing per IRI subject, in which IRI objects are
// always links, plus the blank subjects nothing references. Only blank
// nodes are nested.
//
// A predicate repeated on one subject decodes to a ListValue in quad order.
// Typed literals keep their datatype when the Repository knows it and the
// text parses; xsd:string, language-tagged and unknown-datatype literals
// decode to StringValue. The object rdf:nil decodes to an empty list.
//
//	codec := graph.NewCodec(nil)
//	quads, err := codec.Encode(alice)
//	back, err := codec.Decode(quads)
//
// ReadNQuads and WriteNQuads move quads in and out of N-Quads text.
package graph
