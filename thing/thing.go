package thing

import (
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/enola-dev/enola-sub007/errors"
)

// Thing is an entity: an IRI plus IRI-keyed properties. Things are
// immutable; With and Without return structurally shared copies.
//
// The zero Thing is an anonymous Thing without properties.
type Thing struct {
	iri   string
	props *immutable.Map[string, Value]
}

var (
	keyHasher = immutable.NewHasher("")
	noProps   = immutable.NewMap[string, Value](keyHasher)
)

// New creates a Thing. The IRI must not be empty and no property may hold a
// nil Value.
func New(iri string, props map[string]Value) (Thing, error) {
	if iri == "" {
		return Thing{}, errors.WrapInvalid(errors.ErrInvalidData, "Thing", "New", "empty IRI")
	}
	return newThing(iri, props, "New")
}

// NewBlank creates an anonymous Thing for use inside a StructValue.
func NewBlank(props map[string]Value) (Thing, error) {
	return newThing("", props, "NewBlank")
}

func newThing(iri string, props map[string]Value, method string) (Thing, error) {
	for k, v := range props {
		if k == "" {
			return Thing{}, errors.WrapInvalid(errors.ErrInvalidData, "Thing", method, "empty property key")
		}
		if !validValue(v) {
			return Thing{}, errors.Invalidf(errors.ErrInvalidData, "Thing", method, "nil value for %s", k)
		}
	}
	b := immutable.NewMapBuilder[string, Value](keyHasher)
	for k, v := range props {
		b.Set(k, v)
	}
	return Thing{iri: iri, props: b.Map()}, nil
}

// MustNew is New for fixtures and constants; it panics on error.
func MustNew(iri string, props map[string]Value) Thing {
	t, err := New(iri, props)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Thing) store() *immutable.Map[string, Value] {
	if t.props == nil {
		return noProps
	}
	return t.props
}

// IRI returns the entity's identifier; empty for anonymous Things.
func (t Thing) IRI() string { return t.iri }

// IsBlank reports whether the Thing is anonymous.
func (t Thing) IsBlank() bool { return t.iri == "" }

// Len returns the number of properties.
func (t Thing) Len() int { return t.store().Len() }

// Lookup returns the value stored under key and whether the key is present.
// An explicit Unset is present.
func (t Thing) Lookup(key string) (Value, bool) {
	return t.store().Get(key)
}

// Get returns the value stored under key, or Unset when the key is absent.
func (t Thing) Get(key string) Value {
	if v, ok := t.Lookup(key); ok {
		return v
	}
	return Unset{}
}

// Has reports whether key is present.
func (t Thing) Has(key string) bool {
	_, ok := t.store().Get(key)
	return ok
}

// Keys returns the property keys in sorted order.
func (t Thing) Keys() []string {
	keys := make([]string, 0, t.Len())
	itr := t.store().Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn for each property in sorted key order until fn returns false.
func (t Thing) Range(fn func(key string, v Value) bool) {
	for _, k := range t.Keys() {
		v, _ := t.Lookup(k)
		if !fn(k, v) {
			return
		}
	}
}

// Properties returns a copy of the property map.
func (t Thing) Properties() map[string]Value {
	out := make(map[string]Value, t.Len())
	itr := t.store().Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		out[k] = v
	}
	return out
}

// With returns a copy of t with key set to v. A nil v is stored as Unset.
func (t Thing) With(key string, v Value) Thing {
	if !validValue(v) {
		v = Unset{}
	}
	return Thing{iri: t.iri, props: t.store().Set(key, v)}
}

// Without returns a copy of t without key.
func (t Thing) Without(key string) Thing {
	return Thing{iri: t.iri, props: t.store().Delete(key)}
}

// WithIRI returns a copy of t under another IRI, sharing the properties.
func (t Thing) WithIRI(iri string) Thing {
	return Thing{iri: iri, props: t.props}
}

// Equal reports whether both Things have the same IRI and value-wise equal
// properties, independent of insertion order.
func (t Thing) Equal(other Thing) bool {
	if t.iri != other.iri || t.Len() != other.Len() {
		return false
	}
	itr := t.store().Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		ov, ok := other.Lookup(k)
		if !ok || !equal(v, ov) {
			return false
		}
	}
	return true
}

// String renders the Thing with sorted keys, recursively:
//
//	<https://example.org/x> {<p1>: "a"; <p2>: [<y>, "b"^^<dt>]}
//
// Anonymous Things render as "_".
func (t Thing) String() string {
	var sb strings.Builder
	if t.iri == "" {
		sb.WriteString("_")
	} else {
		sb.WriteString("<" + t.iri + ">")
	}
	sb.WriteString(" {")
	for i, k := range t.Keys() {
		if i > 0 {
			sb.WriteString("; ")
		}
		v, _ := t.Lookup(k)
		sb.WriteString("<" + k + ">: " + render(v))
	}
	sb.WriteString("}")
	return sb.String()
}

// ToBuilder returns a Builder pre-populated with t's IRI and properties.
func (t Thing) ToBuilder() *Builder {
	b := NewBuilder(t.iri)
	b.props = t.Properties()
	return b
}
