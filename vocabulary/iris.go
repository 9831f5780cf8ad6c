// Package vocabulary provides the IRI constants, CURIE prefixes and the
// well-known property registry shared by the value model and the codecs.
package vocabulary

import (
	"regexp"
	"sort"
	"strings"
)

// Base IRI constants for the Enola vocabulary
const (
	EnolaBase = "https://enola.dev/"

	// EnolaScheme prefixes synthesized IRIs for message fields and enum values,
	// e.g. "enola:/dev.enola.Person/3". Persisted data depends on this exact text.
	EnolaScheme = "enola:"

	// ProtoMessage is the header property naming the protobuf message type a
	// Thing was converted from.
	ProtoMessage = EnolaBase + "proto/message"

	// GraphNested labels the quads linking a Thing to a struct nested in it,
	// telling them apart from plain links to the same node.
	GraphNested = EnolaBase + "graph/nested"

	// ProtoNamespace holds the third-party datatypes derived from protobuf
	// well-known types.
	ProtoNamespace = "https://protobuf.dev/reference/protobuf/google.protobuf/#"
)

var schemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)

// IsAbsolute reports whether s starts with an IRI scheme ("https:", "enola:", "urn:").
func IsAbsolute(s string) bool {
	return schemeRe.MatchString(s)
}

// prefixes maps CURIE prefixes to namespaces for display at the CLI boundary.
var prefixes = map[string]string{
	"rdf":    RDFNamespace,
	"rdfs":   RDFSNamespace,
	"xsd":    XSDNamespace,
	"owl":    OWLNamespace,
	"skos":   SKOSNamespace,
	"dc":     DCNamespace,
	"schema": SchemaNamespace,
	"enola":  EnolaBase,
	"pb":     ProtoNamespace,
}

// Prefixes returns a copy of the CURIE prefix table.
func Prefixes() map[string]string {
	out := make(map[string]string, len(prefixes))
	for k, v := range prefixes {
		out[k] = v
	}
	return out
}

// Expand turns a CURIE such as "rdfs:label" into a full IRI. Anything that is
// not a known prefix is returned unchanged, so full IRIs pass through.
//
// "enola:" followed by "/" is the synthesized-IRI scheme, not a CURIE, and is
// left as is.
func Expand(curie string) string {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok || strings.HasPrefix(local, "/") {
		return curie
	}
	if ns, found := prefixes[prefix]; found {
		return ns + local
	}
	return curie
}

// Compact is the inverse of Expand: it shortens iri with the longest matching
// namespace. IRIs outside every known namespace are returned unchanged.
func Compact(iri string) string {
	best := ""
	bestPrefix := ""
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		ns := prefixes[prefix]
		if strings.HasPrefix(iri, ns) && len(ns) > len(best) {
			best = ns
			bestPrefix = prefix
		}
	}
	if best == "" || len(iri) == len(best) {
		return iri
	}
	return bestPrefix + ":" + iri[len(best):]
}

// LocalName returns the part of iri after the last '#' or '/'.
//
// Examples:
//   - "http://www.w3.org/2000/01/rdf-schema#label" -> "label"
//   - "https://schema.org/name" -> "name"
//   - "urn:isbn:123" -> "urn:isbn:123"
func LocalName(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	return iri
}
