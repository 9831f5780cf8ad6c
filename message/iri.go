package message

import (
	"strconv"
	"strings"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/vocabulary"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// iriPrefix starts every synthesized field and enum value IRI. The textual
// form is shared with previously persisted data and must not change.
const iriPrefix = vocabulary.EnolaScheme + "/"

// FieldIRI returns the property key of a message field:
// "enola:/<message-full-name>/<field-number>". Keys depend on the field
// number, not its name, so renaming a field keeps existing data readable.
func FieldIRI(message protoreflect.FullName, number protoreflect.FieldNumber) string {
	return iriPrefix + string(message) + "/" + strconv.FormatInt(int64(number), 10)
}

// ParseFieldIRI is the inverse of FieldIRI. Any other text fails with
// ErrMalformedValue.
func ParseFieldIRI(iri string) (protoreflect.FullName, protoreflect.FieldNumber, error) {
	name, last, ok := split(iri)
	if !ok {
		return "", 0, errors.Invalidf(errors.ErrMalformedValue, "Message", "ParseFieldIRI", "field IRI %q", iri)
	}
	n, err := strconv.ParseInt(last, 10, 32)
	// Only the canonical decimal form round-trips through FieldIRI
	if err != nil || !protoreflect.FieldNumber(n).IsValid() || strconv.FormatInt(n, 10) != last {
		return "", 0, errors.Invalidf(errors.ErrMalformedValue, "Message", "ParseFieldIRI", "field number in %q", iri)
	}
	return name, protoreflect.FieldNumber(n), nil
}

// EnumValueIRI returns the link target of an enum value:
// "enola:/<enum-full-name>/<value-name>".
func EnumValueIRI(enum protoreflect.FullName, value protoreflect.Name) string {
	return iriPrefix + string(enum) + "/" + string(value)
}

// ParseEnumValueIRI is the inverse of EnumValueIRI.
func ParseEnumValueIRI(iri string) (protoreflect.FullName, protoreflect.Name, error) {
	name, last, ok := split(iri)
	if !ok || !protoreflect.Name(last).IsValid() {
		return "", "", errors.Invalidf(errors.ErrMalformedValue, "Message", "ParseEnumValueIRI", "enum value IRI %q", iri)
	}
	return name, protoreflect.Name(last), nil
}

// split cuts "enola:/<full-name>/<last>" into its two parts.
func split(iri string) (protoreflect.FullName, string, bool) {
	rest, ok := strings.CutPrefix(iri, iriPrefix)
	if !ok {
		return "", "", false
	}
	i := strings.LastIndexByte(rest, '/')
	if i <= 0 || i == len(rest)-1 {
		return "", "", false
	}
	name := protoreflect.FullName(rest[:i])
	if !name.IsValid() {
		return "", "", false
	}
	return name, rest[i+1:], true
}
