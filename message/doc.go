// Package message converts protobuf messages to Things and back.
//
// # Property keys
//
// Each populated field becomes one property keyed by its message full name
// and field number:
//
//	enola:/dev.enola.Person/3
//
// Keys follow field numbers, not names. Renaming a field keeps stored Things
// readable; renumbering it does not. Enum values become links:
//
//	enola:/dev.enola.Person.Status/ACTIVE
//
// # Values
//
//   - string fields: StringValue
//   - other scalars: LiteralValue through the datatype Repository
//     (int32 as xsd:int, int64 as xsd:long, bytes as xsd:base64Binary, ...),
//     or a StringValue of the canonical text when the Repository has no
//     datatype for the Go type
//   - google.protobuf.Timestamp and Duration: LiteralValue
//   - other messages: anonymous StructValue
//   - repeated fields: ListValue in source order
//   - map fields: ListValue of entry structs ordered by key
//   - enums: LinkValue
//
// Every Thing carries the message full name under
// https://enola.dev/proto/message, which tells message-derived Things apart
// from graph-derived ones.
//
// # Decoding
//
// FromThing is the structural inverse of ToThing and never coerces, apart
// from reading back the StringValue form of datatype-less scalars. Unknown
// fields and extensions of the source message are not converted.
//
//	codec := message.NewCodec(nil, resolver)
//	t, err := codec.ToThing("https://example.org/alice", person)
//	out, err := resolver.NewMessage("dev.enola.Person")
//	err = codec.FromThing(t, out)
package message
