package message

import (
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// A scalar whose Go type no registered datatype claims is carried as a plain
// string in its canonical text form, and parsed back by field kind.

func (c *Codec) encodeNative(native any) (thing.Value, error) {
	lit, err := c.repo.Encode(native)
	if stderrors.Is(err, errors.ErrNoDatatypeForType) {
		return thing.String(opaqueText(native)), nil
	}
	if err != nil {
		return nil, err
	}
	return lit, nil
}

// opaque reports whether fd's values pass through as strings.
func (c *Codec) opaque(fd protoreflect.FieldDescriptor) bool {
	zero := zeroNative(fd)
	if zero == nil {
		return false
	}
	_, err := c.repo.Encode(zero)
	return stderrors.Is(err, errors.ErrNoDatatypeForType)
}

func opaqueText(native any) string {
	switch x := native.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []byte:
		return base64.StdEncoding.EncodeToString(x)
	case *timestamppb.Timestamp:
		return x.AsTime().Format(time.RFC3339Nano)
	case *durationpb.Duration:
		return x.AsDuration().String()
	}
	return fmt.Sprint(native)
}

// zeroNative is a value of the Go type fd's values encode from, or nil for
// kinds that never reach the datatype repository.
func zeroNative(fd protoreflect.FieldDescriptor) any {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return false
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return int32(0)
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return int64(0)
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return uint32(0)
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return uint64(0)
	case protoreflect.FloatKind:
		return float32(0)
	case protoreflect.DoubleKind:
		return float64(0)
	case protoreflect.BytesKind:
		return []byte{}
	case protoreflect.MessageKind, protoreflect.GroupKind:
		switch fd.Message().FullName() {
		case timestampName:
			return &timestamppb.Timestamp{}
		case durationName:
			return &durationpb.Duration{}
		}
	}
	return nil
}

// parseOpaque is the inverse of opaqueText for fd's kind. Well-known types
// come back as their native message, the rest as a protoreflect value.
func parseOpaque(fd protoreflect.FieldDescriptor, text string) (any, error) {
	v, err := parseKind(fd, text)
	if err != nil {
		return nil, errors.Invalidf(errors.ErrMalformedValue, "Codec", "FromThing",
			"%s: %q: %v", fd.FullName(), text, err)
	}
	return v, nil
}

func parseKind(fd protoreflect.FieldDescriptor, text string) (any, error) {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		b, err := strconv.ParseBool(text)
		return protoreflect.ValueOfBool(b), err
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		n, err := strconv.ParseInt(text, 10, 32)
		return protoreflect.ValueOfInt32(int32(n)), err
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		n, err := strconv.ParseInt(text, 10, 64)
		return protoreflect.ValueOfInt64(n), err
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		n, err := strconv.ParseUint(text, 10, 32)
		return protoreflect.ValueOfUint32(uint32(n)), err
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		n, err := strconv.ParseUint(text, 10, 64)
		return protoreflect.ValueOfUint64(n), err
	case protoreflect.FloatKind:
		f, err := strconv.ParseFloat(text, 32)
		return protoreflect.ValueOfFloat32(float32(f)), err
	case protoreflect.DoubleKind:
		f, err := strconv.ParseFloat(text, 64)
		return protoreflect.ValueOfFloat64(f), err
	case protoreflect.BytesKind:
		b, err := base64.StdEncoding.DecodeString(text)
		return protoreflect.ValueOfBytes(b), err
	case protoreflect.MessageKind, protoreflect.GroupKind:
		switch fd.Message().FullName() {
		case timestampName:
			ts, err := time.Parse(time.RFC3339Nano, text)
			return timestamppb.New(ts), err
		case durationName:
			d, err := time.ParseDuration(text)
			return durationpb.New(d), err
		}
	}
	return nil, fmt.Errorf("no text form for %s", fd.Kind())
}
