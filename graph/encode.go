package graph

import (
	"strconv"

	"github.com/cayleygraph/quad"
	"github.com/enola-dev/enola-sub007/datatype"
	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/enola-dev/enola-sub007/vocabulary"
	"github.com/google/uuid"
)

// blankSpace is the UUIDv5 namespace of synthesized blank node ids.
var blankSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(vocabulary.EnolaBase+"graph/blank"))

var (
	rdfFirst = quad.IRI(vocabulary.RdfFirst)
	rdfRest  = quad.IRI(vocabulary.RdfRest)
	rdfNil   = quad.IRI(vocabulary.RdfNil)

	nestedLabel = quad.IRI(vocabulary.GraphNested)
)

// Codec converts Things to triples and back.
//
// Encoding is deterministic: properties are visited in key order and blank
// node ids are derived from content, so encoding the same Thing twice yields
// the same quads.
type Codec struct {
	repo *datatype.Repository
}

// NewCodec creates a Codec. A nil repo means datatype.MustBuiltin().
func NewCodec(repo *datatype.Repository) *Codec {
	if repo == nil {
		repo = datatype.MustBuiltin()
	}
	return &Codec{repo: repo}
}

// Repository returns the datatypes that decide which typed literals decode
// to LiteralValue.
func (c *Codec) Repository() *datatype.Repository { return c.repo }

// Encode converts t and everything nested in it to quads. An anonymous t
// gets a blank node subject.
func (c *Codec) Encode(t thing.Thing) ([]quad.Quad, error) {
	e := newEmitter()
	if _, err := e.thing(t); err != nil {
		return nil, err
	}
	return e.quads, nil
}

// EncodeAll encodes several Things into one quad set. Quads shared between
// Things, such as an anonymous struct nested in two of them, are emitted
// once.
func (c *Codec) EncodeAll(things []thing.Thing) ([]quad.Quad, error) {
	e := newEmitter()
	for _, t := range things {
		if _, err := e.thing(t); err != nil {
			return nil, err
		}
	}
	return e.quads, nil
}

type emitter struct {
	quads []quad.Quad
	seen  map[string]struct{}
}

func newEmitter() *emitter {
	return &emitter{seen: make(map[string]struct{})}
}

func (e *emitter) emit(q quad.Quad) {
	k := q.NQuad()
	if _, dup := e.seen[k]; dup {
		return
	}
	e.seen[k] = struct{}{}
	e.quads = append(e.quads, q)
}

// subject returns the node naming t.
func subject(t thing.Thing) quad.Value {
	if t.IsBlank() {
		return quad.BNode(uuid.NewSHA1(blankSpace, []byte(t.String())).String())
	}
	return quad.IRI(t.IRI())
}

// cell returns the id of the index-th cell of the list held by (s, p).
func cell(s, p quad.Value, index int) quad.BNode {
	name := s.String() + " " + p.String() + " " + strconv.Itoa(index)
	return quad.BNode(uuid.NewSHA1(blankSpace, []byte(name)).String())
}

func (e *emitter) thing(t thing.Thing) (quad.Value, error) {
	s := subject(t)
	for _, key := range t.Keys() {
		q, ok, err := e.object(s, quad.IRI(key), t.Get(key))
		if err != nil {
			return nil, err
		}
		if ok {
			e.emit(q)
		}
	}
	return s, nil
}

// object returns the quad standing for v as the object of (s, p), emitting
// the quads it needs first. A struct is labelled nested. ok is false for
// Unset, which has no graph form.
func (e *emitter) object(s, p quad.Value, v thing.Value) (quad.Quad, bool, error) {
	q := quad.Quad{Subject: s, Predicate: p}
	switch v := v.(type) {
	case thing.StringValue:
		q.Object = quad.String(v.Text)
	case thing.LiteralValue:
		q.Object = quad.TypedString{Value: quad.String(v.Text), Type: quad.IRI(v.Datatype)}
	case thing.LinkValue:
		q.Object = quad.IRI(v.IRI)
	case thing.StructValue:
		o, err := e.thing(v.Thing)
		if err != nil {
			return q, false, err
		}
		q.Object, q.Label = o, nestedLabel
	case thing.ListValue:
		o, err := e.list(s, p, v.Items)
		if err != nil {
			return q, false, err
		}
		q.Object = o
	case thing.Unset:
		return q, false, nil
	default:
		return q, false, errors.Invalidf(errors.ErrVariantMismatch, "Codec", "Encode", "%s value of %s", thing.Kind(v), p)
	}
	return q, true, nil
}

// list writes items as an RDF collection and returns its head. Unset items
// have no graph form and are dropped.
func (e *emitter) list(s, p quad.Value, items []thing.Value) (quad.Value, error) {
	firsts := make([]quad.Quad, 0, len(items))
	for _, item := range items {
		q, ok, err := e.object(cell(s, p, len(firsts)), rdfFirst, item)
		if err != nil {
			return nil, err
		}
		if ok {
			firsts = append(firsts, q)
		}
	}
	if len(firsts) == 0 {
		return rdfNil, nil
	}
	for i, q := range firsts {
		e.emit(q)
		var rest quad.Value = rdfNil
		if i+1 < len(firsts) {
			rest = firsts[i+1].Subject
		}
		e.emit(quad.Quad{Subject: q.Subject, Predicate: rdfRest, Object: rest})
	}
	return firsts[0].Subject, nil
}
