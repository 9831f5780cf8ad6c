package message

import (
	"testing"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/testutil"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

func TestResolverFromSet(t *testing.T) {
	data, err := proto.Marshal(testutil.PersonDescriptorSet())
	require.NoError(t, err)

	r, err := ParseDescriptorSet(data)
	require.NoError(t, err)

	fd, err := r.FindFieldByNumber(testutil.PersonType, testutil.FieldBorn)
	require.NoError(t, err)
	assert.Equal(t, protoreflect.Name("born"), fd.Name())
	assert.Equal(t, protoreflect.FullName("google.protobuf.Timestamp"), fd.Message().FullName())

	ev, err := r.FindEnumValue(testutil.StatusType, "RETIRED")
	require.NoError(t, err)
	assert.Equal(t, protoreflect.EnumNumber(2), ev.Number())

	m, err := r.NewMessage(testutil.PersonType)
	require.NoError(t, err)
	assert.Equal(t, testutil.PersonType, m.Descriptor().FullName())
}

func TestResolverLookupFailures(t *testing.T) {
	r := NewResolver(testutil.PersonFiles(t))

	_, err := r.FindMessage("dev.enola.test.Missing")
	assert.ErrorIs(t, err, errors.ErrUnknownField)

	_, err = r.FindMessage(testutil.StatusType)
	assert.ErrorIs(t, err, errors.ErrUnknownField)

	_, err = r.FindFieldByNumber(testutil.PersonType, 100)
	assert.ErrorIs(t, err, errors.ErrUnknownField)

	_, err = r.FindEnumValue(testutil.PersonType, "ACTIVE")
	assert.ErrorIs(t, err, errors.ErrUnknownField)

	_, err = r.FindEnumValue(testutil.StatusType, "PAUSED")
	assert.ErrorIs(t, err, errors.ErrUnknownField)
}

func TestParseDescriptorSetInvalid(t *testing.T) {
	_, err := ParseDescriptorSet([]byte{0xff, 0xff})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	set := testutil.PersonDescriptorSet()
	set.File[0].Dependency = append(set.File[0].Dependency, "missing/dep.proto")
	_, err = NewResolverFromSet(set)
	require.Error(t, err)
}

func TestCodecWithSetResolver(t *testing.T) {
	r, err := NewResolverFromSet(testutil.PersonDescriptorSet())
	require.NoError(t, err)
	codec := NewCodec(nil, r)

	in, err := r.NewMessage(testutil.PersonType)
	require.NoError(t, err)
	testutil.Set(t, in, "name", protoreflect.ValueOfString("Carol"))
	testutil.Set(t, in, "status", protoreflect.ValueOfEnum(2))

	th, err := codec.ToThing(alice, in)
	require.NoError(t, err)
	name, _ := thing.MessageType(th)
	assert.Equal(t, string(testutil.PersonType), name)

	out, err := r.NewMessage(testutil.PersonType)
	require.NoError(t, err)
	require.NoError(t, codec.FromThing(th, out))
	assert.True(t, proto.Equal(in, out))
}
