package message

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	timestampName protoreflect.FullName = "google.protobuf.Timestamp"
	durationName  protoreflect.FullName = "google.protobuf.Duration"
)

// Both well-known types carry seconds in field 1 and nanos in field 2.
const (
	secondsField protoreflect.FieldNumber = 1
	nanosField   protoreflect.FieldNumber = 2
)

func isWellKnown(name protoreflect.FullName) bool {
	return name == timestampName || name == durationName
}

// wellKnownToNative reads Timestamp and Duration by field number, so it works
// for generated and dynamic messages alike.
func wellKnownToNative(m protoreflect.Message) (any, bool) {
	md := m.Descriptor()
	if !isWellKnown(md.FullName()) {
		return nil, false
	}
	secs, nanos := wellKnownParts(m)
	if md.FullName() == timestampName {
		return &timestamppb.Timestamp{Seconds: secs, Nanos: nanos}, true
	}
	return &durationpb.Duration{Seconds: secs, Nanos: nanos}, true
}

func wellKnownParts(m protoreflect.Message) (int64, int32) {
	fields := m.Descriptor().Fields()
	var secs int64
	var nanos int32
	if fd := fields.ByNumber(secondsField); fd != nil {
		secs = m.Get(fd).Int()
	}
	if fd := fields.ByNumber(nanosField); fd != nil {
		nanos = int32(m.Get(fd).Int())
	}
	return secs, nanos
}

// nativeToWellKnown writes a decoded Timestamp or Duration into m.
func nativeToWellKnown(native any, m protoreflect.Message) error {
	md := m.Descriptor()
	var secs int64
	var nanos int32
	switch v := native.(type) {
	case *timestamppb.Timestamp:
		if md.FullName() != timestampName {
			return fmt.Errorf("timestamp literal for %s", md.FullName())
		}
		secs, nanos = v.GetSeconds(), v.GetNanos()
	case *durationpb.Duration:
		if md.FullName() != durationName {
			return fmt.Errorf("duration literal for %s", md.FullName())
		}
		secs, nanos = v.GetSeconds(), v.GetNanos()
	default:
		return fmt.Errorf("%T literal for %s", native, md.FullName())
	}

	fields := md.Fields()
	if secs != 0 {
		m.Set(fields.ByNumber(secondsField), protoreflect.ValueOfInt64(secs))
	}
	if nanos != 0 {
		m.Set(fields.ByNumber(nanosField), protoreflect.ValueOfInt32(nanos))
	}
	return nil
}
