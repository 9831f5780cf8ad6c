package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		curie    string
		expected string
	}{
		{
			name:     "rdfs prefix",
			curie:    "rdfs:label",
			expected: RdfsLabel,
		},
		{
			name:     "xsd prefix",
			curie:    "xsd:dateTime",
			expected: XsdDateTime,
		},
		{
			name:     "full IRI passes through",
			curie:    "https://schema.org/name",
			expected: "https://schema.org/name",
		},
		{
			name:     "synthesized field IRI is not a CURIE",
			curie:    "enola:/dev.enola.Person/3",
			expected: "enola:/dev.enola.Person/3",
		},
		{
			name:     "enola CURIE",
			curie:    "enola:uuid",
			expected: "https://enola.dev/uuid",
		},
		{
			name:     "unknown prefix",
			curie:    "foo:bar",
			expected: "foo:bar",
		},
		{
			name:     "no colon",
			curie:    "label",
			expected: "label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Expand(tt.curie))
		})
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name     string
		iri      string
		expected string
	}{
		{"rdf type", RdfType, "rdf:type"},
		{"xsd integer", XsdInteger, "xsd:integer"},
		{"proto header", ProtoMessage, "enola:proto/message"},
		{"namespace itself stays", RDFSNamespace, RDFSNamespace},
		{"unknown namespace", "https://example.org/x", "https://example.org/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compact(tt.iri))
		})
	}
}

func TestCompactExpandRoundTrip(t *testing.T) {
	for _, iri := range []string{RdfsLabel, SkosPrefLabel, DcTitle, SchemaName, XsdBase64Binary} {
		assert.Equal(t, iri, Expand(Compact(iri)), iri)
	}
}

func TestIsAbsolute(t *testing.T) {
	assert.True(t, IsAbsolute("https://example.org/a"))
	assert.True(t, IsAbsolute("enola:/x.Y/1"))
	assert.True(t, IsAbsolute("urn:isbn:0451450523"))
	assert.False(t, IsAbsolute("/relative/path"))
	assert.False(t, IsAbsolute("1abc:def"))
	assert.False(t, IsAbsolute(""))
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "label", LocalName(RdfsLabel))
	assert.Equal(t, "name", LocalName(SchemaName))
	assert.Equal(t, "urn:isbn:123", LocalName("urn:isbn:123"))
	assert.Equal(t, "https://example.org/", LocalName("https://example.org/"))
}

func TestWellKnownRoles(t *testing.T) {
	reg := WellKnown()

	assert.Equal(t, []string{RdfsLabel, SkosPrefLabel, SchemaName, DcTitle}, reg.ByRole(RoleLabel))
	assert.Equal(t, []string{RdfsComment, SchemaDescription, DcDescription, SkosDefinition}, reg.ByRole(RoleDescription))
	assert.Equal(t, []string{RdfType}, reg.ByRole(RoleType))

	meta, ok := reg.Lookup(ProtoMessage)
	assert.True(t, ok)
	assert.Equal(t, RoleHeader, meta.Role)
	assert.Equal(t, XsdString, meta.Datatype)
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	reg.Register("https://example.org/b", WithRole(RoleLabel, 1))
	reg.Register("https://example.org/a", WithRole(RoleLabel, 1))
	reg.Register("https://example.org/c", WithRole(RoleLabel, 0), WithDescription("first"))

	assert.Equal(t, []string{
		"https://example.org/c",
		"https://example.org/a",
		"https://example.org/b",
	}, reg.ByRole(RoleLabel))
	assert.Empty(t, reg.ByRole(RoleType))

	// Re-registration overwrites
	reg.Register("https://example.org/c")
	meta, ok := reg.Lookup("https://example.org/c")
	assert.True(t, ok)
	assert.Equal(t, RoleNone, meta.Role)
	assert.Empty(t, meta.Description)

	assert.Len(t, reg.List(), 3)
	_, ok = reg.Lookup("https://example.org/missing")
	assert.False(t, ok)
}
