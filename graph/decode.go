package graph

import (
	"sort"

	"github.com/cayleygraph/quad"
	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/enola-dev/enola-sub007/vocabulary"
)

// node collects the outgoing edges of one subject in quad order.
type node struct {
	term  quad.Value
	edges []edge
}

type edge struct {
	predicate string
	object    quad.Value
	// nested marks the edge to a struct, as opposed to a plain link
	nested bool
}

// index groups quads by subject.
type index struct {
	nodes map[string]*node
	order []string
	// flat keeps every IRI subject a Thing of its own
	flat bool
}

func newIndex(quads []quad.Quad, flat bool) (*index, error) {
	ix := &index{nodes: make(map[string]*node), flat: flat}
	for _, q := range quads {
		if q.Subject == nil || q.Predicate == nil || q.Object == nil {
			return nil, errors.Invalidf(errors.ErrMalformedValue, "Codec", "Decode", "incomplete quad %v", q)
		}
		switch q.Subject.(type) {
		case quad.IRI, quad.BNode:
		default:
			return nil, errors.Invalidf(errors.ErrMalformedValue, "Codec", "Decode", "subject %s", q.Subject)
		}
		p, ok := q.Predicate.(quad.IRI)
		if !ok {
			return nil, errors.Invalidf(errors.ErrMalformedValue, "Codec", "Decode", "predicate %s", q.Predicate)
		}

		k := q.Subject.String()
		n, seen := ix.nodes[k]
		if !seen {
			n = &node{term: q.Subject}
			ix.nodes[k] = n
			ix.order = append(ix.order, k)
		}
		n.edges = append(n.edges, edge{
			predicate: string(p),
			object:    q.Object,
			nested:    isNested(q.Label),
		})
	}
	return ix, nil
}

func isNested(label quad.Value) bool {
	iri, ok := label.(quad.IRI)
	return ok && iri == nestedLabel
}

// contains reports whether e puts its object inside the subject's Thing:
// blank nodes always, IRIs only through a nested edge and not when flat.
func (ix *index) contains(e edge) bool {
	switch e.object.(type) {
	case quad.BNode:
		return true
	case quad.IRI:
		return e.nested && !ix.flat
	}
	return false
}

// isCell reports whether n is a cell of an RDF collection.
func (n *node) isCell() bool {
	if _, blank := n.term.(quad.BNode); !blank {
		return false
	}
	_, ok := n.first(vocabulary.RdfFirst)
	return ok
}

func (n *node) first(predicate string) (edge, bool) {
	for _, e := range n.edges {
		if e.predicate == predicate {
			return e, true
		}
	}
	return edge{}, false
}

// roots returns the subjects that decode to top-level Things: those no
// other subject contains, then one representative per unreferenced cycle.
// When flat, every IRI subject is a root.
func (ix *index) roots() []string {
	contained := make(map[string]bool)
	for k, n := range ix.nodes {
		for _, e := range n.edges {
			if ix.contains(e) && e.object.String() != k {
				contained[e.object.String()] = true
			}
		}
	}

	var roots []string
	reached := make(map[string]bool)
	for _, k := range ix.order {
		n := ix.nodes[k]
		if n.isCell() {
			continue
		}
		_, named := n.term.(quad.IRI)
		if !contained[k] || (ix.flat && named) {
			roots = append(roots, k)
			ix.reach(k, reached)
		}
	}

	rest := make([]string, 0)
	for _, k := range ix.order {
		if !reached[k] && !ix.nodes[k].isCell() {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		if !reached[k] {
			roots = append(roots, k)
			ix.reach(k, reached)
		}
	}
	return roots
}

func (ix *index) reach(k string, reached map[string]bool) {
	if reached[k] {
		return
	}
	reached[k] = true
	n, ok := ix.nodes[k]
	if !ok {
		return
	}
	for _, e := range n.edges {
		if ix.contains(e) {
			ix.reach(e.object.String(), reached)
		}
	}
}

// Decode converts quads holding exactly one root subject. Structs nested by
// the encoder and blank subjects become nested StructValues; other IRI
// objects stay LinkValues, so two described subjects linked to each other
// are two roots. A second root fails with ErrMultipleRoots and an empty
// graph with ErrNoMatch.
func (c *Codec) Decode(quads []quad.Quad) (thing.Thing, error) {
	ix, err := newIndex(quads, false)
	if err != nil {
		return thing.Thing{}, err
	}
	roots := ix.roots()
	switch len(roots) {
	case 0:
		return thing.Thing{}, errors.WrapInvalid(errors.ErrNoMatch, "Codec", "Decode", "graph without subjects")
	case 1:
		return c.decodeRoot(ix, roots[0])
	}
	return thing.Thing{}, errors.Invalidf(errors.ErrMultipleRoots, "Codec", "Decode",
		"%d roots, first %s and %s", len(roots), roots[0], roots[1])
}

// DecodeAll converts the graph to one Thing per IRI subject, with blank
// subjects nested where they are referenced and unreferenced ones returned
// as anonymous Things. IRI objects are LinkValues. Things are sorted by IRI,
// anonymous ones last in blank node order.
func (c *Codec) DecodeAll(quads []quad.Quad) ([]thing.Thing, error) {
	ix, err := newIndex(quads, true)
	if err != nil {
		return nil, err
	}
	roots := ix.roots()
	sort.Slice(roots, func(i, j int) bool { return rootLess(ix, roots[i], roots[j]) })

	out := make([]thing.Thing, 0, len(roots))
	for _, k := range roots {
		t, err := c.decodeRoot(ix, k)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func rootLess(ix *index, a, b string) bool {
	ai, aIRI := ix.nodes[a].term.(quad.IRI)
	bi, bIRI := ix.nodes[b].term.(quad.IRI)
	if aIRI != bIRI {
		return aIRI
	}
	if aIRI {
		return ai < bi
	}
	return a < b
}

func (c *Codec) decodeRoot(ix *index, k string) (thing.Thing, error) {
	d := &decoder{codec: c, ix: ix, path: make(map[string]bool)}
	return d.thing(k)
}

type decoder struct {
	codec *Codec
	ix    *index
	// path holds the subjects being decoded, to break cycles
	path map[string]bool
}

func (d *decoder) thing(k string) (thing.Thing, error) {
	n := d.ix.nodes[k]
	d.path[k] = true
	defer delete(d.path, k)

	values := make(map[string][]thing.Value)
	var keys []string
	for _, e := range n.edges {
		v, err := d.object(e)
		if err != nil {
			return thing.Thing{}, err
		}
		if _, seen := values[e.predicate]; !seen {
			keys = append(keys, e.predicate)
		}
		values[e.predicate] = append(values[e.predicate], v)
	}

	b := thing.NewBuilder("")
	for _, key := range keys {
		if vs := values[key]; len(vs) == 1 {
			b.Set(key, vs[0])
		} else {
			b.Set(key, thing.List(vs...))
		}
	}
	if iri, ok := n.term.(quad.IRI); ok {
		return b.IRI(string(iri)).Build()
	}
	return b.BuildBlank()
}

func (d *decoder) object(e edge) (thing.Value, error) {
	switch o := e.object.(type) {
	case quad.IRI:
		if string(o) == vocabulary.RdfNil {
			return thing.List(), nil
		}
		return d.reference(e)
	case quad.BNode:
		return d.reference(e)
	case quad.String:
		return thing.String(string(o)), nil
	case quad.LangString:
		return thing.String(string(o.Value)), nil
	case quad.TypedString:
		return d.literal(o)
	case typedStringer:
		return d.literal(o.TypedString())
	}
	return nil, errors.Invalidf(errors.ErrVariantMismatch, "Codec", "Decode", "object %T", e.object)
}

// typedStringer is implemented by native quad values such as quad.Int.
type typedStringer interface {
	TypedString() quad.TypedString
}

// reference decodes an IRI or blank node object. An object the subject
// contains becomes a StructValue, empty when the graph does not describe it;
// anything else, and a reference back into the path being decoded, stays a
// LinkValue.
func (d *decoder) reference(e edge) (thing.Value, error) {
	k := e.object.String()
	n, described := d.ix.nodes[k]
	if described && n.isCell() {
		return d.list(n)
	}
	iri, named := e.object.(quad.IRI)
	link := thing.Link(k)
	if named {
		link = thing.Link(string(iri))
	}
	if d.path[k] || !d.ix.contains(e) {
		return link, nil
	}
	if described {
		t, err := d.thing(k)
		if err != nil {
			return nil, err
		}
		return thing.Struct(t), nil
	}
	if named {
		t, err := thing.New(string(iri), nil)
		if err != nil {
			return nil, err
		}
		return thing.Struct(t), nil
	}
	if !e.nested {
		return link, nil
	}
	t, err := thing.NewBlank(nil)
	if err != nil {
		return nil, err
	}
	return thing.Struct(t), nil
}

// list follows an RDF collection from its head cell.
func (d *decoder) list(head *node) (thing.Value, error) {
	var items []thing.Value
	visited := make(map[string]bool)
	n := head
	for {
		k := n.term.String()
		if visited[k] {
			return nil, errors.Invalidf(errors.ErrMalformedValue, "Codec", "Decode", "cyclic list at %s", k)
		}
		visited[k] = true

		first, _ := n.first(vocabulary.RdfFirst)
		item, err := d.object(first)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		rest, ok := n.first(vocabulary.RdfRest)
		if !ok {
			return nil, errors.Invalidf(errors.ErrMalformedValue, "Codec", "Decode", "list cell %s without rdf:rest", k)
		}
		if iri, isIRI := rest.object.(quad.IRI); isIRI && string(iri) == vocabulary.RdfNil {
			return thing.List(items...), nil
		}
		next, described := d.ix.nodes[rest.object.String()]
		if !described || !next.isCell() {
			return nil, errors.Invalidf(errors.ErrMalformedValue, "Codec", "Decode", "list cell %s continues with %s", k, rest.object)
		}
		n = next
	}
}

// literal keeps a typed literal when its datatype is registered and the text
// parses. xsd:string and unregistered datatypes decode to StringValue.
func (d *decoder) literal(ts quad.TypedString) (thing.Value, error) {
	dt := string(ts.Type)
	text := string(ts.Value)
	if dt == vocabulary.XsdString || dt == vocabulary.RdfLangString {
		return thing.String(text), nil
	}
	if _, known := d.codec.repo.Lookup(dt); !known {
		return thing.String(text), nil
	}
	if _, err := d.codec.repo.Decode(text, dt); err != nil {
		return nil, err
	}
	return thing.Literal(text, dt), nil
}
