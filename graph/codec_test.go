package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/enola-dev/enola-sub007/vocabulary"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "https://example.org/alice"
	bob   = "https://example.org/bob"
	knows = "https://example.org/knows"
	tags  = "https://example.org/tags"
	home  = "https://example.org/home"
	road  = "https://example.org/street"
	age   = "https://example.org/age"
)

func mustBlank(t *testing.T, props map[string]thing.Value) thing.Thing {
	t.Helper()
	b, err := thing.NewBlank(props)
	require.NoError(t, err)
	return b
}

func sample(t *testing.T) thing.Thing {
	t.Helper()
	return thing.MustNew(alice, map[string]thing.Value{
		vocabulary.SchemaName: thing.String("Alice"),
		age:                   thing.Literal("42", vocabulary.XsdInt),
		vocabulary.RdfType:    thing.Link("https://schema.org/Person"),
		home:                  thing.Struct(mustBlank(t, map[string]thing.Value{road: thing.String("Main Street")})),
		tags:                  thing.List(thing.String("a"), thing.Literal("2024-01-15", vocabulary.XsdDate), thing.String("a")),
		knows: thing.Struct(thing.MustNew(bob, map[string]thing.Value{
			vocabulary.SchemaName: thing.String("Bob"),
		})),
	})
}

func TestRoundTrip(t *testing.T) {
	codec := NewCodec(nil)
	in := sample(t)

	quads, err := codec.Encode(in)
	require.NoError(t, err)

	out, err := codec.Decode(quads)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestEncodeIsStable(t *testing.T) {
	codec := NewCodec(nil)
	first, err := codec.Encode(sample(t))
	require.NoError(t, err)
	second, err := codec.Encode(sample(t))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeValues(t *testing.T) {
	codec := NewCodec(nil)
	in := thing.MustNew(alice, map[string]thing.Value{
		vocabulary.SchemaName: thing.String("Alice"),
		age:                   thing.Literal("42", vocabulary.XsdInt),
		knows:                 thing.Link(bob),
		tags:                  thing.List(),
		home:                  thing.Unset{},
	})

	quads, err := codec.Encode(in)
	require.NoError(t, err)

	s := quad.IRI(alice)
	want := []quad.Quad{
		{Subject: s, Predicate: quad.IRI(vocabulary.SchemaName), Object: quad.String("Alice")},
		{Subject: s, Predicate: quad.IRI(tags), Object: quad.IRI(vocabulary.RdfNil)},
		{Subject: s, Predicate: quad.IRI(knows), Object: quad.IRI(bob)},
		{Subject: s, Predicate: quad.IRI(age), Object: quad.TypedString{Value: "42", Type: quad.IRI(vocabulary.XsdInt)}},
	}
	assert.ElementsMatch(t, want, quads)
}

func TestEncodeListCollection(t *testing.T) {
	codec := NewCodec(nil)
	in := thing.MustNew(alice, map[string]thing.Value{
		tags: thing.List(thing.String("x"), thing.Unset{}, thing.String("y")),
	})

	quads, err := codec.Encode(in)
	require.NoError(t, err)
	// head link, then two cells with first and rest each
	require.Len(t, quads, 5)

	out, err := codec.Decode(quads)
	require.NoError(t, err)
	assert.True(t, thing.List(thing.String("x"), thing.String("y")).Equal(out.Get(tags)))
}

func TestAnonymousStructsShareIDs(t *testing.T) {
	addr := thing.Struct(mustBlank(t, map[string]thing.Value{road: thing.String("Main Street")}))
	a := thing.MustNew(alice, map[string]thing.Value{home: addr})
	b := thing.MustNew(bob, map[string]thing.Value{home: addr})

	quads, err := NewCodec(nil).EncodeAll([]thing.Thing{a, b})
	require.NoError(t, err)
	// the struct's own quad once, then two home links
	require.Len(t, quads, 3)
	assert.Equal(t, quads[1].Object, quads[2].Object)
}

func TestDecodeBlankRoot(t *testing.T) {
	codec := NewCodec(nil)
	in := mustBlank(t, map[string]thing.Value{road: thing.String("Main Street")})

	quads, err := codec.Encode(in)
	require.NoError(t, err)
	require.Len(t, quads, 1)
	_, blank := quads[0].Subject.(quad.BNode)
	assert.True(t, blank)

	out, err := codec.Decode(quads)
	require.NoError(t, err)
	assert.True(t, out.IsBlank())
	assert.True(t, in.Equal(out))
}

func TestDecodeMultipleRoots(t *testing.T) {
	codec := NewCodec(nil)
	quads := []quad.Quad{
		quad.MakeIRI(alice, knows, bob, ""),
		{Subject: quad.IRI("https://example.org/carol"), Predicate: quad.IRI(vocabulary.SchemaName), Object: quad.String("Carol")},
	}

	_, err := codec.Decode(quads)
	assert.ErrorIs(t, err, errors.ErrMultipleRoots)
	assert.True(t, errors.IsInvalid(err))

	all, err := codec.DecodeAll(quads)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, alice, all[0].IRI())
	assert.Equal(t, "https://example.org/carol", all[1].IRI())
	assert.True(t, thing.Link(bob).Equal(all[0].Get(knows)))
}

func TestDecodeEmpty(t *testing.T) {
	_, err := NewCodec(nil).Decode(nil)
	assert.True(t, errors.IsNoMatch(err))

	all, err := NewCodec(nil).DecodeAll(nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDecodeRepeatedPredicate(t *testing.T) {
	quads := []quad.Quad{
		{Subject: quad.IRI(alice), Predicate: quad.IRI(tags), Object: quad.String("x")},
		{Subject: quad.IRI(alice), Predicate: quad.IRI(tags), Object: quad.String("y")},
		{Subject: quad.IRI(alice), Predicate: quad.IRI(tags), Object: quad.String("z")},
	}
	out, err := NewCodec(nil).Decode(quads)
	require.NoError(t, err)
	assert.True(t, thing.List(thing.String("x"), thing.String("y"), thing.String("z")).Equal(out.Get(tags)))
}

func TestDecodeLiterals(t *testing.T) {
	p := "https://example.org/p"
	tests := []struct {
		name   string
		object quad.Value
		want   thing.Value
	}{
		{"plain", quad.String("hi"), thing.String("hi")},
		{"xsd string", quad.TypedString{Value: "hi", Type: quad.IRI(vocabulary.XsdString)}, thing.String("hi")},
		{"language tagged", quad.LangString{Value: "hallo", Lang: "de"}, thing.String("hallo")},
		{"unknown datatype", quad.TypedString{Value: "7", Type: "https://example.org/number"}, thing.String("7")},
		{"registered datatype", quad.TypedString{Value: "true", Type: quad.IRI(vocabulary.XsdBoolean)}, thing.Literal("true", vocabulary.XsdBoolean)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewCodec(nil).Decode([]quad.Quad{{Subject: quad.IRI(alice), Predicate: quad.IRI(p), Object: tt.object}})
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(out.Get(p)), "got %s", out.Get(p))
		})
	}
}

func TestDecodeMalformedLiteral(t *testing.T) {
	quads := []quad.Quad{{
		Subject:   quad.IRI(alice),
		Predicate: quad.IRI(age),
		Object:    quad.TypedString{Value: "forty", Type: quad.IRI(vocabulary.XsdInt)},
	}}
	_, err := NewCodec(nil).Decode(quads)
	assert.ErrorIs(t, err, errors.ErrMalformedValue)
}

func nested(s, p, o string) quad.Quad {
	return quad.Quad{Subject: quad.IRI(s), Predicate: quad.IRI(p), Object: quad.IRI(o), Label: quad.IRI(vocabulary.GraphNested)}
}

func TestDecodeCycle(t *testing.T) {
	quads := []quad.Quad{
		nested(alice, knows, bob),
		nested(bob, knows, alice),
	}

	out, err := NewCodec(nil).Decode(quads)
	require.NoError(t, err)
	assert.Equal(t, alice, out.IRI())

	inner, ok := out.Get(knows).(thing.StructValue)
	require.True(t, ok, "want struct, got %s", out.Get(knows))
	assert.Equal(t, bob, inner.Thing.IRI())
	assert.True(t, thing.Link(alice).Equal(inner.Thing.Get(knows)))
}

func TestStructAndLinkToSameIRI(t *testing.T) {
	codec := NewCodec(nil)
	in := thing.MustNew(alice, map[string]thing.Value{
		knows: thing.Struct(thing.MustNew(bob, map[string]thing.Value{age: thing.String("x")})),
		home:  thing.Link(bob),
	})

	quads, err := codec.Encode(in)
	require.NoError(t, err)
	out, err := codec.Decode(quads)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestDecodeLinkedSubjectsAreSeparateRoots(t *testing.T) {
	quads := []quad.Quad{
		quad.MakeIRI(alice, knows, bob, ""),
		{Subject: quad.IRI(bob), Predicate: quad.IRI(vocabulary.SchemaName), Object: quad.String("Bob")},
	}
	_, err := NewCodec(nil).Decode(quads)
	assert.ErrorIs(t, err, errors.ErrMultipleRoots)
}

func TestDecodeAllOneThingPerSubject(t *testing.T) {
	codec := NewCodec(nil)
	a := thing.MustNew(alice, map[string]thing.Value{knows: thing.Link(bob)})
	b := thing.MustNew(bob, map[string]thing.Value{age: thing.String("x")})

	quads, err := codec.EncodeAll([]thing.Thing{a, b})
	require.NoError(t, err)
	all, err := codec.DecodeAll(quads)
	require.NoError(t, err)
	if diff := cmp.Diff([]thing.Thing{a, b}, all); diff != "" {
		t.Errorf("DecodeAll mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAllNestsOnlyBlankNodes(t *testing.T) {
	codec := NewCodec(nil)
	addr := thing.Struct(mustBlank(t, map[string]thing.Value{road: thing.String("Main Street")}))
	bobThing := thing.MustNew(bob, map[string]thing.Value{vocabulary.SchemaName: thing.String("Bob")})
	in := thing.MustNew(alice, map[string]thing.Value{
		knows: thing.Struct(bobThing),
		home:  addr,
	})

	quads, err := codec.Encode(in)
	require.NoError(t, err)
	all, err := codec.DecodeAll(quads)
	require.NoError(t, err)

	want := []thing.Thing{
		thing.MustNew(alice, map[string]thing.Value{knows: thing.Link(bob), home: addr}),
		bobThing,
	}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("DecodeAll mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyStructsRoundTrip(t *testing.T) {
	codec := NewCodec(nil)
	in := thing.MustNew(alice, map[string]thing.Value{
		knows: thing.Struct(thing.MustNew(bob, nil)),
		home:  thing.Struct(mustBlank(t, nil)),
	})

	quads, err := codec.Encode(in)
	require.NoError(t, err)
	require.Len(t, quads, 2)

	out, err := codec.Decode(quads)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestNQuadsKeepNesting(t *testing.T) {
	codec := NewCodec(nil)
	in := sample(t)
	quads, err := codec.Encode(in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteNQuads(&buf, quads))
	assert.Contains(t, buf.String(), "<"+vocabulary.GraphNested+"> .")

	read, err := ReadNQuads(&buf)
	require.NoError(t, err)
	out, err := codec.Decode(read)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestDecodeBrokenList(t *testing.T) {
	quads := []quad.Quad{
		{Subject: quad.IRI(alice), Predicate: quad.IRI(tags), Object: quad.BNode("c0")},
		{Subject: quad.BNode("c0"), Predicate: quad.IRI(vocabulary.RdfFirst), Object: quad.String("x")},
	}
	_, err := NewCodec(nil).Decode(quads)
	assert.ErrorIs(t, err, errors.ErrMalformedValue)
}

func TestDecodeRejectsLiteralSubject(t *testing.T) {
	quads := []quad.Quad{{Subject: quad.String("x"), Predicate: quad.IRI(knows), Object: quad.IRI(bob)}}
	_, err := NewCodec(nil).Decode(quads)
	assert.ErrorIs(t, err, errors.ErrMalformedValue)
}

func TestNQuadsRoundTrip(t *testing.T) {
	codec := NewCodec(nil)
	in := thing.MustNew(alice, map[string]thing.Value{
		vocabulary.SchemaName: thing.String("Alice \"Al\""),
		age:                   thing.Literal("42", vocabulary.XsdInt),
		knows:                 thing.Link(bob),
	})
	quads, err := codec.Encode(in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteNQuads(&buf, quads))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	read, err := ReadNQuads(&buf)
	require.NoError(t, err)
	out, err := codec.Decode(read)
	require.NoError(t, err)
	assert.True(t, in.Equal(out), "got %s", out)
}

func TestReadNQuadsList(t *testing.T) {
	doc := `<https://example.org/alice> <https://example.org/tags> _:c0 .
_:c0 <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> "x" .
_:c0 <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> _:c1 .
_:c1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> "2"^^<http://www.w3.org/2001/XMLSchema#integer> .
_:c1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> <http://www.w3.org/1999/02/22-rdf-syntax-ns#nil> .
`
	quads, err := ReadNQuads(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, quads, 5)

	out, err := NewCodec(nil).Decode(quads)
	require.NoError(t, err)
	want := thing.List(thing.String("x"), thing.Literal("2", vocabulary.XsdInteger))
	assert.True(t, want.Equal(out.Get(tags)), "got %s", out.Get(tags))
}

func TestReadNQuadsSyntaxError(t *testing.T) {
	_, err := ReadNQuads(strings.NewReader("<a> <b> .\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrParsingFailed)
	assert.True(t, errors.IsInvalid(err))
}
