package thing

import (
	"strconv"
	"strings"
)

// Value is the closed set of property value shapes. Exactly one of
// StringValue, LinkValue, LiteralValue, StructValue, ListValue or Unset is
// held; other packages cannot add variants.
//
// Callers switch on the concrete type:
//
//	switch v := t.Get(key).(type) {
//	case thing.StringValue:
//	case thing.LinkValue:
//	...
//	}
type Value interface {
	// String renders the value deterministically, for debugging and snapshots.
	String() string
	// Equal reports structural equality with another value.
	Equal(Value) bool

	isValue()
}

// StringValue is plain text without a datatype.
type StringValue struct {
	Text string
}

// LinkValue references another entity by IRI.
type LinkValue struct {
	IRI string
}

// LiteralValue is a typed scalar: lexical text plus the IRI of its datatype.
type LiteralValue struct {
	Text     string
	Datatype string
}

// StructValue nests an entity. The nested Thing may be anonymous.
type StructValue struct {
	Thing Thing
}

// ListValue is an ordered, possibly heterogeneous, sequence of values.
type ListValue struct {
	Items []Value
}

// Unset is an explicit "no value", distinct from an absent key.
type Unset struct{}

// String returns a StringValue.
func String(text string) StringValue { return StringValue{Text: text} }

// Link returns a LinkValue.
func Link(iri string) LinkValue { return LinkValue{IRI: iri} }

// Literal returns a LiteralValue.
func Literal(text, datatype string) LiteralValue {
	return LiteralValue{Text: text, Datatype: datatype}
}

// Struct returns a StructValue.
func Struct(t Thing) StructValue { return StructValue{Thing: t} }

// List returns a ListValue holding items in order.
func List(items ...Value) ListValue { return ListValue{Items: items} }

func (StringValue) isValue()  {}
func (LinkValue) isValue()    {}
func (LiteralValue) isValue() {}
func (StructValue) isValue()  {}
func (ListValue) isValue()    {}
func (Unset) isValue()        {}

func (v StringValue) String() string { return strconv.Quote(v.Text) }

func (v LinkValue) String() string { return "<" + v.IRI + ">" }

func (v LiteralValue) String() string {
	return strconv.Quote(v.Text) + "^^<" + v.Datatype + ">"
}

func (v StructValue) String() string { return v.Thing.String() }

func (v ListValue) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range v.Items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(render(item))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (Unset) String() string { return "unset" }

func (v StringValue) Equal(other Value) bool {
	o, ok := other.(StringValue)
	return ok && o == v
}

func (v LinkValue) Equal(other Value) bool {
	o, ok := other.(LinkValue)
	return ok && o == v
}

func (v LiteralValue) Equal(other Value) bool {
	o, ok := other.(LiteralValue)
	return ok && o == v
}

func (v StructValue) Equal(other Value) bool {
	o, ok := other.(StructValue)
	return ok && v.Thing.Equal(o.Thing)
}

func (v ListValue) Equal(other Value) bool {
	o, ok := other.(ListValue)
	if !ok || len(o.Items) != len(v.Items) {
		return false
	}
	for i := range v.Items {
		if !equal(v.Items[i], o.Items[i]) {
			return false
		}
	}
	return true
}

func (Unset) Equal(other Value) bool {
	_, ok := other.(Unset)
	return ok
}

// Kind names the variant, e.g. "string" or "list". Useful in error messages.
func Kind(v Value) string {
	switch v.(type) {
	case StringValue:
		return "string"
	case LinkValue:
		return "link"
	case LiteralValue:
		return "literal"
	case StructValue:
		return "struct"
	case ListValue:
		return "list"
	case Unset:
		return "unset"
	case nil:
		return "nil"
	default:
		return "unknown"
	}
}

func equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func render(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}

// validValue rejects nil anywhere in a value tree.
func validValue(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case ListValue:
		for _, item := range v.Items {
			if !validValue(item) {
				return false
			}
		}
	}
	return true
}
