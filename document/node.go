package document

import (
	"sort"
	"strconv"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
)

// Node is the serialized form of a Thing. An empty IRI marks an anonymous
// Thing.
type Node struct {
	IRI        string          `json:"iri,omitempty" yaml:"iri,omitempty"`
	Properties map[string]Term `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Term is the serialized form of a Value. Exactly one of its variant fields
// is set; Datatype accompanies Literal.
type Term struct {
	String   *string `json:"string,omitempty" yaml:"string,omitempty"`
	Link     *string `json:"link,omitempty" yaml:"link,omitempty"`
	Literal  *string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Datatype string  `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Struct   *Node   `json:"struct,omitempty" yaml:"struct,omitempty"`
	List     *[]Term `json:"list,omitempty" yaml:"list,omitempty"`
	Unset    bool    `json:"unset,omitempty" yaml:"unset,omitempty"`
}

// FromThing converts t to its serialized form.
func FromThing(t thing.Thing) Node {
	n := Node{IRI: t.IRI()}
	if t.Len() == 0 {
		return n
	}
	n.Properties = make(map[string]Term, t.Len())
	t.Range(func(key string, v thing.Value) bool {
		n.Properties[key] = termOf(v)
		return true
	})
	return n
}

func termOf(v thing.Value) Term {
	switch v := v.(type) {
	case thing.StringValue:
		return Term{String: &v.Text}
	case thing.LinkValue:
		return Term{Link: &v.IRI}
	case thing.LiteralValue:
		return Term{Literal: &v.Text, Datatype: v.Datatype}
	case thing.StructValue:
		n := FromThing(v.Thing)
		return Term{Struct: &n}
	case thing.ListValue:
		items := make([]Term, len(v.Items))
		for i, item := range v.Items {
			items[i] = termOf(item)
		}
		return Term{List: &items}
	}
	return Term{Unset: true}
}

// Thing converts n back to a Thing. Terms that set no variant, or more than
// one, fail with ErrVariantMismatch.
func (n Node) Thing() (thing.Thing, error) {
	return n.thing("")
}

func (n Node) thing(path string) (thing.Thing, error) {
	keys := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := thing.NewBuilder(n.IRI)
	for _, k := range keys {
		v, err := n.Properties[k].value(path + "/" + k)
		if err != nil {
			return thing.Thing{}, err
		}
		b.Set(k, v)
	}
	if n.IRI == "" {
		return b.BuildBlank()
	}
	return b.Build()
}

func (t Term) value(path string) (thing.Value, error) {
	set := 0
	for _, on := range []bool{t.String != nil, t.Link != nil, t.Literal != nil, t.Struct != nil, t.List != nil, t.Unset} {
		if on {
			set++
		}
	}
	if set != 1 {
		return nil, errors.Invalidf(errors.ErrVariantMismatch, "document", "Decode",
			"%s: want exactly one of string, link, literal, struct, list, unset; got %d", path, set)
	}
	if t.Datatype != "" && t.Literal == nil {
		return nil, errors.Invalidf(errors.ErrMalformedValue, "document", "Decode", "%s: datatype without literal", path)
	}

	switch {
	case t.String != nil:
		return thing.String(*t.String), nil
	case t.Link != nil:
		if *t.Link == "" {
			return nil, errors.Invalidf(errors.ErrMalformedValue, "document", "Decode", "%s: empty link", path)
		}
		return thing.Link(*t.Link), nil
	case t.Literal != nil:
		if t.Datatype == "" {
			return nil, errors.Invalidf(errors.ErrMalformedValue, "document", "Decode", "%s: literal without datatype", path)
		}
		return thing.Literal(*t.Literal, t.Datatype), nil
	case t.Struct != nil:
		nested, err := t.Struct.thing(path)
		if err != nil {
			return nil, err
		}
		return thing.Struct(nested), nil
	case t.List != nil:
		items := make([]thing.Value, len(*t.List))
		for i, item := range *t.List {
			v, err := item.value(path + "[" + strconv.Itoa(i) + "]")
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return thing.List(items...), nil
	}
	return thing.Unset{}, nil
}
