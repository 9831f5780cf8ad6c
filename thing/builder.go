package thing

import (
	"github.com/enola-dev/enola-sub007/errors"
)

// Builder accumulates properties before producing an immutable Thing. A
// Builder is not safe for concurrent use.
type Builder struct {
	iri   string
	props map[string]Value
	err   error
}

// NewBuilder starts a Thing with the given IRI. Use an empty IRI together
// with BuildBlank for anonymous structs.
func NewBuilder(iri string) *Builder {
	return &Builder{iri: iri, props: make(map[string]Value)}
}

// IRI sets the IRI of the Thing being built.
func (b *Builder) IRI(iri string) *Builder {
	b.iri = iri
	return b
}

// Set stores v under key, replacing any previous value. A nil value or empty
// key makes Build fail.
func (b *Builder) Set(key string, v Value) *Builder {
	if key == "" {
		b.fail(errors.WrapInvalid(errors.ErrInvalidData, "Builder", "Set", "empty property key"))
		return b
	}
	if !validValue(v) {
		b.fail(errors.Invalidf(errors.ErrInvalidData, "Builder", "Set", "nil value for %s", key))
		return b
	}
	b.props[key] = v
	return b
}

// Add appends v under key. An absent key becomes a one-element ListValue, an
// existing ListValue grows, and any other existing value becomes the first
// element of a new list.
func (b *Builder) Add(key string, v Value) *Builder {
	existing, ok := b.props[key]
	switch {
	case !ok:
		return b.Set(key, List(v))
	default:
		if list, isList := existing.(ListValue); isList {
			items := make([]Value, len(list.Items), len(list.Items)+1)
			copy(items, list.Items)
			return b.Set(key, List(append(items, v)...))
		}
		return b.Set(key, List(existing, v))
	}
}

// Delete removes key.
func (b *Builder) Delete(key string) *Builder {
	delete(b.props, key)
	return b
}

// Get returns the value currently stored under key, if any.
func (b *Builder) Get(key string) (Value, bool) {
	v, ok := b.props[key]
	return v, ok
}

// Len returns the number of properties set so far.
func (b *Builder) Len() int { return len(b.props) }

// Build produces the Thing. It fails if the IRI is empty or a Set was rejected.
func (b *Builder) Build() (Thing, error) {
	if b.err != nil {
		return Thing{}, b.err
	}
	return New(b.iri, b.props)
}

// BuildBlank produces an anonymous Thing, ignoring any IRI set on the builder.
func (b *Builder) BuildBlank() (Thing, error) {
	if b.err != nil {
		return Thing{}, b.err
	}
	return NewBlank(b.props)
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
