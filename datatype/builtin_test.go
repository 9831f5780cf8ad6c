package datatype

import (
	"math"
	"math/big"
	"net/netip"
	"net/url"
	"testing"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/vocabulary"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestBuiltinOrder(t *testing.T) {
	repo := MustBuiltin()

	assert.Equal(t, []string{
		vocabulary.XsdBoolean,
		vocabulary.XsdDate,
		vocabulary.XsdDateTime,
		vocabulary.XsdInteger,
		vocabulary.XsdDouble,
		vocabulary.XsdInt,
		vocabulary.XsdLong,
		vocabulary.XsdUnsignedInt,
		vocabulary.XsdUnsignedLong,
		vocabulary.XsdFloat,
		vocabulary.XsdBase64Binary,
		vocabulary.XsdAnyURI,
		vocabulary.EnolaBase + "uuid",
		vocabulary.EnolaBase + "ipAddress",
		vocabulary.EnolaBase + "semver",
		vocabulary.ProtoNamespace + "timestamp",
		vocabulary.ProtoNamespace + "duration",
	}, repo.IRIs())
}

func TestBuiltinSubset(t *testing.T) {
	// Name order does not change concatenation order
	repo, err := Builtin(VocabularyProtobuf, VocabularyXSD)
	require.NoError(t, err)
	iris := repo.IRIs()
	assert.Equal(t, vocabulary.XsdBoolean, iris[0])
	assert.Equal(t, vocabulary.ProtoNamespace+"duration", iris[len(iris)-1])
	_, ok := repo.Lookup(UUID.IRI())
	assert.False(t, ok)

	_, err = Builtin("nope")
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
	assert.True(t, errors.IsInvalid(err))
}

func TestBuiltinMatch(t *testing.T) {
	repo := MustBuiltin()

	tests := []struct {
		text string
		want string
	}{
		{"true", vocabulary.XsdBoolean},
		{"2024-01-15", vocabulary.XsdDate},
		{"20240115", vocabulary.XsdDate}, // date shadows integer
		{"2024-01-15T10:30:00Z", vocabulary.XsdDateTime},
		{"2024-01-15T10:30:00.5+02:00", vocabulary.XsdDateTime},
		{"42", vocabulary.XsdInteger},
		{"-7", vocabulary.XsdInteger},
		{"3.14", vocabulary.XsdDouble},
		{"1e10", vocabulary.XsdDouble},
		{"INF", vocabulary.XsdDouble},
		{"123e4567-e89b-12d3-a456-426614174000", vocabulary.EnolaBase + "uuid"},
		{"192.168.1.1", vocabulary.EnolaBase + "ipAddress"},
		{"::1", vocabulary.EnolaBase + "ipAddress"},
		{"1.2.3", vocabulary.EnolaBase + "semver"},
		{"1.2.3-rc.1+build.5", vocabulary.EnolaBase + "semver"},
		{"1.5s", vocabulary.ProtoNamespace + "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := repo.Match(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.IRI())
		})
	}

	for _, text := range []string{"hello", "TRUE", "12:30", "2024-01"} {
		_, err := repo.Match(text)
		assert.True(t, errors.IsNoMatch(err), text)
	}
}

func TestBuiltinDecode(t *testing.T) {
	repo := MustBuiltin()

	tests := []struct {
		name string
		text string
		iri  string
		want any
	}{
		{"boolean", "1", vocabulary.XsdBoolean, true},
		{"date", "2024-02-29", vocabulary.XsdDate, Date{Year: 2024, Month: time.February, Day: 29}},
		{"compact date", "20240229", vocabulary.XsdDate, Date{Year: 2024, Month: time.February, Day: 29}},
		{"dateTime", "2024-01-15T10:30:00Z", vocabulary.XsdDateTime, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"integer", "+123456789012345678901234567890", vocabulary.XsdInteger, mustBig("123456789012345678901234567890")},
		{"int", "-5", vocabulary.XsdInt, int32(-5)},
		{"long", "9000000000", vocabulary.XsdLong, int64(9000000000)},
		{"unsignedInt", "5", vocabulary.XsdUnsignedInt, uint32(5)},
		{"unsignedLong", "18446744073709551615", vocabulary.XsdUnsignedLong, uint64(math.MaxUint64)},
		{"float", "1.5", vocabulary.XsdFloat, float32(1.5)},
		{"double", "-INF", vocabulary.XsdDouble, math.Inf(-1)},
		{"base64", "aGk=", vocabulary.XsdBase64Binary, []byte("hi")},
		{"uuid", "123e4567-e89b-12d3-a456-426614174000", UUID.IRI(), uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")},
		{"ip", "10.0.0.1", IPAddress.IRI(), netip.MustParseAddr("10.0.0.1")},
		{"semver", "1.2.3-rc.1", SemanticVersion.IRI(), Semver("1.2.3-rc.1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Decode(tt.text, tt.iri)
			require.NoError(t, err)
			if want, ok := tt.want.(*big.Int); ok {
				assert.Zero(t, want.Cmp(got.(*big.Int)))
				return
			}
			if want, ok := tt.want.(time.Time); ok {
				assert.True(t, want.Equal(got.(time.Time)))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltinMalformed(t *testing.T) {
	repo := MustBuiltin()

	tests := []struct {
		text string
		iri  string
	}{
		{"yes", vocabulary.XsdBoolean},
		{"2023-02-29", vocabulary.XsdDate},
		{"2024-1-15", vocabulary.XsdDate},
		{"noon", vocabulary.XsdDateTime},
		{"1.5", vocabulary.XsdInteger},
		{"3000000000", vocabulary.XsdInt},
		{"-1", vocabulary.XsdUnsignedInt},
		{"Inf", vocabulary.XsdDouble},
		{"0x1p-2", vocabulary.XsdDouble},
		{"!!", vocabulary.XsdBase64Binary},
		{"not-a-uuid", UUID.IRI()},
		{"300.1.1.1", IPAddress.IRI()},
		{"1.2", SemanticVersion.IRI()},
		{"2024-01-15T10:30:00", Timestamp.IRI()},
		{"5m", Duration.IRI()},
	}

	for _, tt := range tests {
		t.Run(tt.text+" as "+vocabulary.LocalName(tt.iri), func(t *testing.T) {
			_, err := repo.Decode(tt.text, tt.iri)
			assert.ErrorIs(t, err, errors.ErrMalformedValue)
		})
	}
}

func TestBuiltinEncode(t *testing.T) {
	repo := MustBuiltin()
	u, err := url.Parse("https://enola.dev/")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value any
		text  string
		iri   string
	}{
		{"bool", false, "false", vocabulary.XsdBoolean},
		{"date", Date{Year: 2024, Month: time.January, Day: 5}, "2024-01-05", vocabulary.XsdDate},
		{"time", time.Date(2024, 1, 15, 10, 30, 0, 500, time.UTC), "2024-01-15T10:30:00.0000005Z", vocabulary.XsdDateTime},
		{"big", big.NewInt(7), "7", vocabulary.XsdInteger},
		{"float64", 0.25, "0.25", vocabulary.XsdDouble},
		{"int32", int32(-3), "-3", vocabulary.XsdInt},
		{"int64", int64(3), "3", vocabulary.XsdLong},
		{"uint32", uint32(3), "3", vocabulary.XsdUnsignedInt},
		{"uint64", uint64(3), "3", vocabulary.XsdUnsignedLong},
		{"float32", float32(2.5), "2.5", vocabulary.XsdFloat},
		{"nan", math.NaN(), "NaN", vocabulary.XsdDouble},
		{"bytes", []byte("hi"), "aGk=", vocabulary.XsdBase64Binary},
		{"url", u, "https://enola.dev/", vocabulary.XsdAnyURI},
		{"uuid", uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"), "123e4567-e89b-12d3-a456-426614174000", UUID.IRI()},
		{"ip", netip.MustParseAddr("::1"), "::1", IPAddress.IRI()},
		{"semver", Semver("2.0.0"), "2.0.0", SemanticVersion.IRI()},
		{"timestamp", timestamppb.New(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)), "2024-01-15T00:00:00Z", Timestamp.IRI()},
		{"duration", durationpb.New(1500 * time.Millisecond), "1.5s", Duration.IRI()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, err := repo.Encode(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.text, lit.Text)
			assert.Equal(t, tt.iri, lit.Datatype)
		})
	}

	_, err = repo.Encode(struct{}{})
	assert.ErrorIs(t, err, errors.ErrNoDatatypeForType)
	_, err = repo.Encode(42)
	assert.ErrorIs(t, err, errors.ErrNoDatatypeForType)
}

func TestDurationText(t *testing.T) {
	tests := []struct {
		text  string
		secs  int64
		nanos int32
	}{
		{"0s", 0, 0},
		{"3s", 3, 0},
		{"-1.5s", -1, -500000000},
		{"-0.000000001s", 0, -1},
		{"1.000000001s", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, err := Duration.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.secs, d.GetSeconds())
			assert.Equal(t, tt.nanos, d.GetNanos())
			assert.Equal(t, tt.text, Duration.Format(d))
		})
	}
}

func TestSemverCompare(t *testing.T) {
	assert.Equal(t, -1, Semver("1.2.3").Compare("1.10.0"))
	assert.Equal(t, 1, Semver("1.0.0").Compare("1.0.0-rc.1"))
	assert.Equal(t, 0, Semver("1.0.0+a").Compare("1.0.0+b"))
}

func TestPatternsAndDates(t *testing.T) {
	repo := MustBuiltin()
	for _, c := range repo.Codecs() {
		if c.Pattern() == nil {
			continue
		}
		assert.NotPanics(t, func() { c.Matches("") }, c.IRI())
	}

	d := Date{Year: 2000, Month: time.December, Day: 31}
	assert.Equal(t, time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC), d.Time())
	parsed, err := ParseDate(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, parsed)
}

func mustBig(s string) *big.Int {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return i
}
