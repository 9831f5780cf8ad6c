package testutil

import (
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	// Registers the well-known types the fixture file imports.
	_ "google.golang.org/protobuf/types/known/durationpb"
	_ "google.golang.org/protobuf/types/known/timestamppb"
)

// Message types declared by the fixture file "enola/test/person.proto".
const (
	PersonType  protoreflect.FullName = "dev.enola.test.Person"
	AddressType protoreflect.FullName = "dev.enola.test.Address"
	StatusType  protoreflect.FullName = "dev.enola.test.Status"
)

// Person field numbers.
const (
	FieldName      protoreflect.FieldNumber = 1
	FieldAge       protoreflect.FieldNumber = 2
	FieldID        protoreflect.FieldNumber = 3
	FieldVisits    protoreflect.FieldNumber = 4
	FieldFollowers protoreflect.FieldNumber = 5
	FieldScore     protoreflect.FieldNumber = 6
	FieldRatio     protoreflect.FieldNumber = 7
	FieldActive    protoreflect.FieldNumber = 8
	FieldAvatar    protoreflect.FieldNumber = 9
	FieldStatus    protoreflect.FieldNumber = 10
	FieldHome      protoreflect.FieldNumber = 11
	FieldNicknames protoreflect.FieldNumber = 12
	FieldAddresses protoreflect.FieldNumber = 13
	FieldBorn      protoreflect.FieldNumber = 14
	FieldUptime    protoreflect.FieldNumber = 15
	FieldRatings   protoreflect.FieldNumber = 16
	FieldHistory   protoreflect.FieldNumber = 17
)

func field(name string, number protoreflect.FieldNumber, typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(int32(number)),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
		JsonName: proto.String(name),
	}
	if typeName != "" {
		f.TypeName = proto.String(typeName)
	}
	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

// PersonFile returns the fixture file descriptor, equivalent to:
//
//	syntax = "proto3";
//	package dev.enola.test;
//	enum Status { STATUS_UNSPECIFIED = 0; ACTIVE = 1; RETIRED = 2; }
//	message Address { string street = 1; int32 number = 2; }
//	message Person {
//	  string name = 1; int32 age = 2; int64 id = 3; uint32 visits = 4;
//	  uint64 followers = 5; float score = 6; double ratio = 7; bool active = 8;
//	  bytes avatar = 9; Status status = 10; Address home = 11;
//	  repeated string nicknames = 12; repeated Address addresses = 13;
//	  google.protobuf.Timestamp born = 14; google.protobuf.Duration uptime = 15;
//	  map<string, int32> ratings = 16; repeated Status history = 17;
//	}
func PersonFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String("enola/test/person.proto"),
		Package:    proto.String("dev.enola.test"),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"google/protobuf/timestamp.proto", "google/protobuf/duration.proto"},
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Status"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("STATUS_UNSPECIFIED"), Number: proto.Int32(0)},
				{Name: proto.String("ACTIVE"), Number: proto.Int32(1)},
				{Name: proto.String("RETIRED"), Number: proto.Int32(2)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Address"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("street", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
					field("number", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32, ""),
				},
			},
			{
				Name: proto.String("Person"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("name", FieldName, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
					field("age", FieldAge, descriptorpb.FieldDescriptorProto_TYPE_INT32, ""),
					field("id", FieldID, descriptorpb.FieldDescriptorProto_TYPE_INT64, ""),
					field("visits", FieldVisits, descriptorpb.FieldDescriptorProto_TYPE_UINT32, ""),
					field("followers", FieldFollowers, descriptorpb.FieldDescriptorProto_TYPE_UINT64, ""),
					field("score", FieldScore, descriptorpb.FieldDescriptorProto_TYPE_FLOAT, ""),
					field("ratio", FieldRatio, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, ""),
					field("active", FieldActive, descriptorpb.FieldDescriptorProto_TYPE_BOOL, ""),
					field("avatar", FieldAvatar, descriptorpb.FieldDescriptorProto_TYPE_BYTES, ""),
					field("status", FieldStatus, descriptorpb.FieldDescriptorProto_TYPE_ENUM, ".dev.enola.test.Status"),
					field("home", FieldHome, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".dev.enola.test.Address"),
					repeated(field("nicknames", FieldNicknames, descriptorpb.FieldDescriptorProto_TYPE_STRING, "")),
					repeated(field("addresses", FieldAddresses, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".dev.enola.test.Address")),
					field("born", FieldBorn, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".google.protobuf.Timestamp"),
					field("uptime", FieldUptime, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".google.protobuf.Duration"),
					repeated(field("ratings", FieldRatings, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".dev.enola.test.Person.RatingsEntry")),
					repeated(field("history", FieldHistory, descriptorpb.FieldDescriptorProto_TYPE_ENUM, ".dev.enola.test.Status")),
				},
				NestedType: []*descriptorpb.DescriptorProto{{
					Name: proto.String("RatingsEntry"),
					Field: []*descriptorpb.FieldDescriptorProto{
						field("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
						field("value", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32, ""),
					},
					Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
				}},
			},
		},
	}
}

// PersonDescriptorSet wraps PersonFile in a FileDescriptorSet. The
// well-known type files are not included.
func PersonDescriptorSet() *descriptorpb.FileDescriptorSet {
	return &descriptorpb.FileDescriptorSet{File: []*descriptorpb.FileDescriptorProto{PersonFile()}}
}

// PersonFiles returns a private registry holding the fixture file.
func PersonFiles(t testing.TB) *protoregistry.Files {
	t.Helper()
	fd, err := protodesc.NewFile(PersonFile(), protoregistry.GlobalFiles)
	if err != nil {
		t.Fatalf("build fixture descriptor: %v", err)
	}
	files := new(protoregistry.Files)
	if err := files.RegisterFile(fd); err != nil {
		t.Fatalf("register fixture descriptor: %v", err)
	}
	return files
}

// NewMessage returns an empty dynamic message of the named fixture type.
func NewMessage(t testing.TB, files *protoregistry.Files, name protoreflect.FullName) *dynamicpb.Message {
	t.Helper()
	d, err := files.FindDescriptorByName(name)
	if err != nil {
		t.Fatalf("find %s: %v", name, err)
	}
	md, ok := d.(protoreflect.MessageDescriptor)
	if !ok {
		t.Fatalf("%s is not a message", name)
	}
	return dynamicpb.NewMessage(md)
}

// Set assigns a singular field by name.
func Set(t testing.TB, m protoreflect.Message, name protoreflect.Name, v protoreflect.Value) {
	t.Helper()
	m.Set(mustField(t, m, name), v)
}

// Append adds v to a repeated field by name.
func Append(t testing.TB, m protoreflect.Message, name protoreflect.Name, v protoreflect.Value) {
	t.Helper()
	m.Mutable(mustField(t, m, name)).List().Append(v)
}

// SetMessage fills a new value for a message field and assigns it.
func SetMessage(t testing.TB, m protoreflect.Message, name protoreflect.Name, fill func(protoreflect.Message)) {
	t.Helper()
	fd := mustField(t, m, name)
	v := m.NewField(fd)
	fill(v.Message())
	m.Set(fd, v)
}

// AppendMessage fills a new element for a repeated message field and appends it.
func AppendMessage(t testing.TB, m protoreflect.Message, name protoreflect.Name, fill func(protoreflect.Message)) {
	t.Helper()
	list := m.Mutable(mustField(t, m, name)).List()
	v := list.NewElement()
	fill(v.Message())
	list.Append(v)
}

// Field returns the descriptor of a field by name.
func Field(t testing.TB, m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	t.Helper()
	return mustField(t, m, name)
}

func mustField(t testing.TB, m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	t.Helper()
	fd := m.Descriptor().Fields().ByName(name)
	if fd == nil {
		t.Fatalf("%s has no field %s", m.Descriptor().FullName(), name)
	}
	return fd
}
