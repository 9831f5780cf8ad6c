package kind

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/pkg/cache"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/enola-dev/enola-sub007/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
kinds:
  - name: book
    iri: https://example.org/book/{isbn}
    message: example.Book
    label: Book
  - name: chapter
    iri: https://example.org/book/{isbn}/chapter/{n}
  - name: shelf
    iri: https://example.org/shelves
`

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := ReadCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	return c
}

func TestReadCatalog(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, 3, c.Len())

	names := make([]string, 0, c.Len())
	for _, k := range c.Kinds() {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{"book", "chapter", "shelf"}, names)

	book, ok := c.Kind("book")
	require.True(t, ok)
	assert.Equal(t, "example.Book", book.Message)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))
	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, errors.ErrConfigNotFound)
}

func TestNewCatalogErrors(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
	}{
		{"no name", []Kind{{IRI: "https://example.org/{x}"}}},
		{"duplicate name", []Kind{{Name: "a", IRI: "https://example.org/a/{x}"}, {Name: "a", IRI: "https://example.org/b/{x}"}}},
		{"duplicate template", []Kind{{Name: "a", IRI: "https://example.org/{x}"}, {Name: "b", IRI: "https://example.org/{x}"}}},
		{"malformed template", []Kind{{Name: "a", IRI: "https://example.org/{x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.kinds...)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}

	_, err := ReadCatalog(strings.NewReader("kinds:\n  - name: a\n    template: x\n"))
	assert.True(t, errors.IsInvalid(err), "unknown yaml key")
}

func TestResolve(t *testing.T) {
	r, err := NewResolver(testCatalog(t))
	require.NoError(t, err)

	tests := []struct {
		iri      string
		kind     string
		captures map[string]string
	}{
		{"https://example.org/book/978-3", "book", map[string]string{"isbn": "978-3"}},
		{"https://example.org/book/978-3/chapter/7", "chapter", map[string]string{"isbn": "978-3", "n": "7"}},
		{"https://example.org/shelves", "shelf", map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			res, ok := r.Resolve(tt.iri)
			require.True(t, ok)
			assert.Equal(t, tt.kind, res.Kind.Name)
			assert.Equal(t, tt.iri, res.IRI)
			if len(tt.captures) == 0 {
				assert.Empty(t, res.Captures)
			} else {
				assert.Equal(t, tt.captures, res.Captures)
			}
		})
	}

	_, ok := r.Resolve("https://example.org/author/1")
	assert.False(t, ok)
}

func TestResolveUsesCache(t *testing.T) {
	c, err := cache.NewLRU[Resolution](2)
	require.NoError(t, err)
	r, err := NewResolver(testCatalog(t), WithCache(c))
	require.NoError(t, err)

	r.Resolve("https://example.org/book/1")
	r.Resolve("https://example.org/book/1")
	r.Resolve("https://example.org/nothing")

	assert.Equal(t, int64(1), c.Stats().Hits())
	assert.Equal(t, 1, c.Size(), "misses are not cached")
}

func TestExpand(t *testing.T) {
	r, err := NewResolver(testCatalog(t), WithCache(cache.NewNoop[Resolution]()))
	require.NoError(t, err)

	iri, err := r.Expand("chapter", map[string]string{"isbn": "978 3", "n": "2"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/book/978%203/chapter/2", iri)

	_, err = r.Expand("author", nil)
	assert.True(t, errors.IsNoMatch(err))

	_, err = r.Expand("book", nil)
	assert.True(t, errors.IsInvalid(err))
}

func TestResolutionThing(t *testing.T) {
	r, err := NewResolver(testCatalog(t))
	require.NoError(t, err)
	res, ok := r.Resolve("https://example.org/book/42")
	require.True(t, ok)

	got, err := res.Thing()
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/book/42", got.IRI())
	assert.Equal(t, []string{TypeIRI("book")}, thing.Types(got))
	label, _ := thing.Label(got)
	assert.Equal(t, "Book", label)
	msg, _ := thing.MessageType(got)
	assert.Equal(t, "example.Book", msg)
	assert.True(t, thing.String("42").Equal(got.Get(TypeIRI("book")+"#isbn")))
	assert.Equal(t, vocabulary.EnolaBase+"kind/book", TypeIRI("book"))
}
