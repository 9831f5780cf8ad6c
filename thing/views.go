package thing

import (
	"github.com/enola-dev/enola-sub007/vocabulary"
)

// Label returns the first human-readable name found under the well-known
// label properties, in priority order (rdfs:label, skos:prefLabel,
// schema:name, dc:title).
func Label(t Thing) (string, bool) {
	return firstText(t, vocabulary.WellKnown().ByRole(vocabulary.RoleLabel))
}

// Description returns the first description found under the well-known
// description properties.
func Description(t Thing) (string, bool) {
	return firstText(t, vocabulary.WellKnown().ByRole(vocabulary.RoleDescription))
}

// Types returns the rdf:type links of t, in order.
func Types(t Thing) []string {
	var out []string
	for _, key := range vocabulary.WellKnown().ByRole(vocabulary.RoleType) {
		out = append(out, links(t.Get(key))...)
	}
	return out
}

// MessageType returns the protobuf message full name recorded in the header
// property by the message codec.
func MessageType(t Thing) (string, bool) {
	if v, ok := t.Get(vocabulary.ProtoMessage).(StringValue); ok {
		return v.Text, true
	}
	return "", false
}

func firstText(t Thing, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := text(t.Get(key)); ok {
			return s, true
		}
	}
	return "", false
}

// text accepts plain strings, xsd:string literals and the first textual
// element of a list.
func text(v Value) (string, bool) {
	switch v := v.(type) {
	case StringValue:
		return v.Text, true
	case LiteralValue:
		if v.Datatype == vocabulary.XsdString || v.Datatype == vocabulary.RdfLangString {
			return v.Text, true
		}
	case ListValue:
		for _, item := range v.Items {
			if s, ok := text(item); ok {
				return s, true
			}
		}
	}
	return "", false
}

func links(v Value) []string {
	switch v := v.(type) {
	case LinkValue:
		return []string{v.IRI}
	case StructValue:
		if !v.Thing.IsBlank() {
			return []string{v.Thing.IRI()}
		}
	case ListValue:
		var out []string
		for _, item := range v.Items {
			out = append(out, links(item)...)
		}
		return out
	}
	return nil
}
