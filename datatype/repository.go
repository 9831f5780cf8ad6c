package datatype

import (
	"reflect"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
)

// Repository is an ordered, append-only list of datatypes.
//
// Registration order is the matching priority: Match returns the first
// datatype whose pattern matches, and Encode the first whose Go type fits.
// A more specific pattern must therefore be registered before a general one
// that also matches its texts. The repository cannot detect two patterns
// shadowing each other.
//
// A Repository is built then frozen: finish every Register call before
// sharing it between goroutines. Reads take no locks.
type Repository struct {
	codecs []Codec
	byIRI  map[string]Codec
}

// NewRepository returns a repository holding codecs in the given order.
func NewRepository(codecs ...Codec) (*Repository, error) {
	r := &Repository{byIRI: make(map[string]Codec)}
	for _, c := range codecs {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends c. A second datatype with the same IRI is rejected.
func (r *Repository) Register(c Codec) error {
	if c == nil || c.IRI() == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "Repository", "Register", "datatype without IRI")
	}
	if r.byIRI == nil {
		r.byIRI = make(map[string]Codec)
	}
	if _, dup := r.byIRI[c.IRI()]; dup {
		return errors.Invalidf(errors.ErrInvalidData, "Repository", "Register", "duplicate datatype %s", c.IRI())
	}
	r.codecs = append(r.codecs, c)
	r.byIRI[c.IRI()] = c
	return nil
}

// Match returns the first registered datatype whose pattern matches the full
// text. ErrNoMatch is returned when none does; callers usually fall back to a
// plain string.
func (r *Repository) Match(text string) (Codec, error) {
	for _, c := range r.codecs {
		if c.Matches(text) {
			return c, nil
		}
	}
	return nil, errors.Invalidf(errors.ErrNoMatch, "Repository", "Match", "datatype for %q", text)
}

// Lookup returns the datatype registered under iri.
func (r *Repository) Lookup(iri string) (Codec, bool) {
	c, ok := r.byIRI[iri]
	return c, ok
}

// Decode parses text with the datatype identified by iri.
func (r *Repository) Decode(text, iri string) (any, error) {
	c, ok := r.byIRI[iri]
	if !ok {
		return nil, errors.Invalidf(errors.ErrUnknownDatatype, "Repository", "Decode", "datatype %s", iri)
	}
	return c.Decode(text)
}

// Encode renders v with the first registered datatype claiming v's dynamic
// type.
func (r *Repository) Encode(v any) (thing.LiteralValue, error) {
	if v == nil {
		return thing.LiteralValue{}, errors.WrapInvalid(errors.ErrNoDatatypeForType, "Repository", "Encode", "nil value")
	}
	for _, c := range r.codecs {
		if text, ok := c.Encode(v); ok {
			return thing.Literal(text, c.IRI()), nil
		}
	}
	return thing.LiteralValue{}, errors.Invalidf(errors.ErrNoDatatypeForType, "Repository", "Encode",
		"type %s", reflect.TypeOf(v))
}

// Validate checks that lit's text parses under its datatype.
func (r *Repository) Validate(lit thing.LiteralValue) error {
	_, err := r.Decode(lit.Text, lit.Datatype)
	return err
}

// IRIs lists the registered datatype IRIs in priority order.
func (r *Repository) IRIs() []string {
	out := make([]string, len(r.codecs))
	for i, c := range r.codecs {
		out[i] = c.IRI()
	}
	return out
}

// Codecs returns the registered datatypes in priority order.
func (r *Repository) Codecs() []Codec {
	out := make([]Codec, len(r.codecs))
	copy(out, r.codecs)
	return out
}

// Len returns the number of registered datatypes.
func (r *Repository) Len() int { return len(r.codecs) }
