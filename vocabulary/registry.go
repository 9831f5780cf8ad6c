package vocabulary

import (
	"sort"
	"sync"
)

// Role defines what a well-known property means to the typed views over a Thing.
type Role string

const (
	// RoleNone is a property without view semantics.
	RoleNone Role = ""

	// RoleLabel marks human-readable display names (rdfs:label, skos:prefLabel,
	// schema:name, dc:title). Labels are never used to identify entities.
	RoleLabel Role = "label"

	// RoleDescription marks longer human-readable text (rdfs:comment, dc:description).
	RoleDescription Role = "description"

	// RoleType marks class membership links (rdf:type).
	RoleType Role = "type"

	// RoleHeader marks bookkeeping properties written by a codec, such as the
	// protobuf message type header.
	RoleHeader Role = "header"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// PropertyMetadata describes a well-known property IRI.
type PropertyMetadata struct {
	IRI         string
	Description string
	// Datatype is the datatype IRI literal values of this property usually carry.
	Datatype string
	Role     Role
	// Priority orders properties sharing a role; lower wins.
	Priority int
}

// Option is a functional option for configuring property registration.
type Option func(*PropertyMetadata)

// WithDescription sets the human-readable description of the property.
func WithDescription(desc string) Option {
	return func(m *PropertyMetadata) {
		m.Description = desc
	}
}

// WithDatatype sets the datatype IRI usually carried by the property's literals.
func WithDatatype(iri string) Option {
	return func(m *PropertyMetadata) {
		m.Datatype = iri
	}
}

// WithRole assigns a view role; priority resolves conflicts between several
// properties of the same role (lower number = higher priority).
//
// Example:
//
//	Register(RdfsLabel, WithRole(RoleLabel, 0))
func WithRole(role Role, priority int) Option {
	return func(m *PropertyMetadata) {
		m.Role = role
		m.Priority = priority
	}
}

// Registry holds property metadata keyed by IRI. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	properties map[string]PropertyMetadata
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{properties: make(map[string]PropertyMetadata)}
}

// Register stores metadata for iri, overwriting any earlier registration.
func (r *Registry) Register(iri string, opts ...Option) {
	meta := PropertyMetadata{IRI: iri}
	for _, opt := range opts {
		opt(&meta)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.properties[iri] = meta
}

// Lookup returns a copy of the metadata registered for iri.
func (r *Registry) Lookup(iri string) (PropertyMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.properties[iri]
	return meta, ok
}

// ByRole lists the IRIs registered with role, highest priority first. Ties are
// ordered by IRI so the result is deterministic.
func (r *Registry) ByRole(role Role) []string {
	r.mu.RLock()
	metas := make([]PropertyMetadata, 0)
	for _, meta := range r.properties {
		if meta.Role == role {
			metas = append(metas, meta)
		}
	}
	r.mu.RUnlock()

	sort.Slice(metas, func(i, j int) bool {
		if metas[i].Priority != metas[j].Priority {
			return metas[i].Priority < metas[j].Priority
		}
		return metas[i].IRI < metas[j].IRI
	})

	iris := make([]string, len(metas))
	for i, meta := range metas {
		iris[i] = meta.IRI
	}
	return iris
}

// List returns every registered IRI in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	iris := make([]string, 0, len(r.properties))
	for iri := range r.properties {
		iris = append(iris, iri)
	}
	sort.Strings(iris)
	return iris
}

var wellKnown = newWellKnown()

// WellKnown returns the registry pre-populated with the standard properties
// the typed Thing views understand.
func WellKnown() *Registry {
	return wellKnown
}

func newWellKnown() *Registry {
	r := NewRegistry()

	r.Register(RdfsLabel,
		WithDescription("Human-readable name"),
		WithDatatype(XsdString),
		WithRole(RoleLabel, 0))
	r.Register(SkosPrefLabel,
		WithDescription("Preferred lexical label"),
		WithDatatype(XsdString),
		WithRole(RoleLabel, 1))
	r.Register(SchemaName,
		WithDescription("Name of the item"),
		WithDatatype(XsdString),
		WithRole(RoleLabel, 2))
	r.Register(DcTitle,
		WithDescription("Name given to the resource"),
		WithDatatype(XsdString),
		WithRole(RoleLabel, 3))

	r.Register(RdfsComment,
		WithDescription("Human-readable description"),
		WithDatatype(XsdString),
		WithRole(RoleDescription, 0))
	r.Register(SchemaDescription,
		WithDescription("Description of the item"),
		WithDatatype(XsdString),
		WithRole(RoleDescription, 1))
	r.Register(DcDescription,
		WithDescription("Account of the resource"),
		WithDatatype(XsdString),
		WithRole(RoleDescription, 2))
	r.Register(SkosDefinition,
		WithDescription("Statement of the meaning of a concept"),
		WithDatatype(XsdString),
		WithRole(RoleDescription, 3))

	r.Register(RdfType,
		WithDescription("Class membership"),
		WithRole(RoleType, 0))

	r.Register(ProtoMessage,
		WithDescription("Fully-qualified protobuf message type a Thing was converted from"),
		WithDatatype(XsdString),
		WithRole(RoleHeader, 0))

	return r
}
