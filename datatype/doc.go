// Package datatype is the registry of typed text codecs.
//
// A Datatype[T] converts between lexical text and Go values of type T and
// optionally carries a sniffing pattern. A Repository keeps datatypes in
// registration order, which is also their priority:
//
//	repo := datatype.MustBuiltin()
//	dt, err := repo.Match("2024-01-15")   // xsd:date
//	v, err := repo.Decode("42", vocabulary.XsdInt) // int32(42)
//	lit, err := repo.Encode(uuid.New())    // enola:uuid literal
//
// Match is first-match-wins, never best-match. Builtin registers the XSD
// vocabulary, then the Enola extensions, then the protobuf well-known types;
// a pattern that also matches texts of an earlier datatype is shadowed
// without warning. Timestamp, for example, is never sniffed because
// xsd:dateTime accepts the same texts first.
//
// Errors: ErrNoMatch from Match, ErrUnknownDatatype and ErrMalformedValue
// from Decode, ErrNoDatatypeForType from Encode.
//
// Register every datatype before sharing a Repository between goroutines.
package datatype
