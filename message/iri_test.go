package message

import (
	"testing"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
)

func TestFieldIRI(t *testing.T) {
	iri := FieldIRI("dev.enola.Person", 3)
	assert.Equal(t, "enola:/dev.enola.Person/3", iri)

	name, number, err := ParseFieldIRI(iri)
	require.NoError(t, err)
	assert.Equal(t, protoreflect.FullName("dev.enola.Person"), name)
	assert.Equal(t, protoreflect.FieldNumber(3), number)
}

func TestParseFieldIRIMalformed(t *testing.T) {
	for _, iri := range []string{
		"",
		"https://example.org/dev.enola.Person/3",
		"enola:dev.enola.Person/3",
		"enola:/dev.enola.Person",
		"enola:/dev.enola.Person/",
		"enola:/dev.enola.Person/x",
		"enola:/dev.enola.Person/0",
		"enola:/dev.enola.Person/-1",
		"enola:/dev.enola.Person/03",
		"enola:/dev.enola.Person/+3",
		"enola:/dev.enola.Person/536870912",
		"enola:/dev..Person/3",
		"enola:/3",
	} {
		_, _, err := ParseFieldIRI(iri)
		assert.ErrorIs(t, err, errors.ErrMalformedValue, iri)
	}
}

func TestEnumValueIRI(t *testing.T) {
	iri := EnumValueIRI("dev.enola.Status", "ACTIVE")
	assert.Equal(t, "enola:/dev.enola.Status/ACTIVE", iri)

	enum, value, err := ParseEnumValueIRI(iri)
	require.NoError(t, err)
	assert.Equal(t, protoreflect.FullName("dev.enola.Status"), enum)
	assert.Equal(t, protoreflect.Name("ACTIVE"), value)

	for _, bad := range []string{"enola:/dev.enola.Status/", "enola:/dev.enola.Status/1X-Y", "urn:x"} {
		_, _, err := ParseEnumValueIRI(bad)
		assert.ErrorIs(t, err, errors.ErrMalformedValue, bad)
	}
}
