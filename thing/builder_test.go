package thing

import (
	"testing"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderAdd(t *testing.T) {
	b := NewBuilder(alice)
	b.Add(knows, Link("https://example.org/bob"))
	b.Add(knows, Link("https://example.org/carol"))

	th := b.mustBuild(t)
	assert.Equal(t, List(Link("https://example.org/bob"), Link("https://example.org/carol")), th.Get(knows))

	// A scalar becomes the first list element
	b = NewBuilder(alice).Set(name, String("Alice")).Add(name, String("Ali"))
	assert.Equal(t, List(String("Alice"), String("Ali")), b.mustBuild(t).Get(name))
}

func TestBuilderAddDoesNotAlias(t *testing.T) {
	shared := List(String("a"))
	b := NewBuilder(alice).Set(name, shared)
	b.Add(name, String("b"))

	assert.Len(t, shared.Items, 1)
	assert.Equal(t, List(String("a"), String("b")), b.mustBuild(t).Get(name))
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder("").Set(name, String("x")).Build()
	assert.ErrorIs(t, err, errors.ErrInvalidData)

	_, err = NewBuilder(alice).Set(name, nil).Build()
	assert.ErrorIs(t, err, errors.ErrInvalidData)
	assert.Contains(t, err.Error(), "Builder.Set")

	_, err = NewBuilder(alice).Set("", String("x")).BuildBlank()
	assert.ErrorIs(t, err, errors.ErrInvalidData)
}

func TestBuilderBlankAndDelete(t *testing.T) {
	b := NewBuilder(alice).Set(name, String("x")).Set(age, Unset{})
	b.Delete(age)

	v, ok := b.Get(name)
	assert.True(t, ok)
	assert.Equal(t, String("x"), v)
	assert.Equal(t, 1, b.Len())

	blank, err := b.BuildBlank()
	require.NoError(t, err)
	assert.True(t, blank.IsBlank())
	assert.Equal(t, 1, blank.Len())
}

func TestBuilderIsReusable(t *testing.T) {
	b := NewBuilder(alice).Set(name, String("first"))
	first := b.mustBuild(t)
	b.Set(name, String("second"))
	second := b.mustBuild(t)

	assert.Equal(t, String("first"), first.Get(name))
	assert.Equal(t, String("second"), second.Get(name))
}

func TestToBuilder(t *testing.T) {
	th := MustNew(alice, map[string]Value{name: String("Alice")})
	copied := th.ToBuilder().IRI("https://example.org/alice2").mustBuild(t)

	assert.Equal(t, "https://example.org/alice2", copied.IRI())
	assert.Equal(t, th.Get(name), copied.Get(name))
}
