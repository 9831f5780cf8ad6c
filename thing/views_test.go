package thing

import (
	"testing"

	"github.com/enola-dev/enola-sub007/vocabulary"
	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]Value
		want  string
		found bool
	}{
		{
			name:  "rdfs label",
			props: map[string]Value{vocabulary.RdfsLabel: String("Alice")},
			want:  "Alice",
			found: true,
		},
		{
			name: "rdfs label wins over schema name",
			props: map[string]Value{
				vocabulary.SchemaName: String("schema"),
				vocabulary.RdfsLabel:  String("rdfs"),
			},
			want:  "rdfs",
			found: true,
		},
		{
			name:  "xsd string literal",
			props: map[string]Value{vocabulary.DcTitle: Literal("Title", vocabulary.XsdString)},
			want:  "Title",
			found: true,
		},
		{
			name:  "first textual list element",
			props: map[string]Value{vocabulary.SkosPrefLabel: List(Link("https://x"), String("pref"))},
			want:  "pref",
			found: true,
		},
		{
			name:  "typed literal is not a label",
			props: map[string]Value{vocabulary.RdfsLabel: Literal("42", vocabulary.XsdInt)},
		},
		{
			name:  "no label",
			props: map[string]Value{name: String("x")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Label(MustNew(alice, tt.props))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescription(t *testing.T) {
	th := MustNew(alice, map[string]Value{
		vocabulary.DcDescription: String("dc"),
		vocabulary.RdfsComment:   String("comment"),
	})
	got, ok := Description(th)
	assert.True(t, ok)
	assert.Equal(t, "comment", got)
}

func TestTypes(t *testing.T) {
	named := MustNew("https://schema.org/Person", nil)
	th := MustNew(alice, map[string]Value{
		vocabulary.RdfType: List(Link("https://schema.org/Thing"), Struct(named)),
	})
	assert.Equal(t, []string{"https://schema.org/Thing", "https://schema.org/Person"}, Types(th))
	assert.Empty(t, Types(MustNew(alice, nil)))
}

func TestMessageType(t *testing.T) {
	th := MustNew(alice, map[string]Value{vocabulary.ProtoMessage: String("dev.enola.Person")})
	got, ok := MessageType(th)
	assert.True(t, ok)
	assert.Equal(t, "dev.enola.Person", got)

	_, ok = MessageType(MustNew(alice, nil))
	assert.False(t, ok)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "string", Kind(String("x")))
	assert.Equal(t, "link", Kind(Link("x")))
	assert.Equal(t, "literal", Kind(Literal("1", vocabulary.XsdInt)))
	assert.Equal(t, "struct", Kind(Struct(Thing{})))
	assert.Equal(t, "list", Kind(List()))
	assert.Equal(t, "unset", Kind(Unset{}))
	assert.Equal(t, "nil", Kind(nil))
}
