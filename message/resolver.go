package message

import (
	"github.com/enola-dev/enola-sub007/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Resolver looks up message schema by name. Failures wrap ErrUnknownField.
type Resolver interface {
	FindFieldByNumber(message protoreflect.FullName, number protoreflect.FieldNumber) (protoreflect.FieldDescriptor, error)
	FindEnumValue(enum protoreflect.FullName, value protoreflect.Name) (protoreflect.EnumValueDescriptor, error)
}

// FilesResolver resolves against a protoregistry.Files.
type FilesResolver struct {
	files *protoregistry.Files
}

// NewResolver wraps files; nil means protoregistry.GlobalFiles, which holds
// every message type compiled into the binary.
func NewResolver(files *protoregistry.Files) *FilesResolver {
	if files == nil {
		files = protoregistry.GlobalFiles
	}
	return &FilesResolver{files: files}
}

// NewResolverFromSet builds a private registry from a FileDescriptorSet, as
// written by `protoc --descriptor_set_out --include_imports`. Files must come
// after their dependencies; dependencies missing from the set, such as the
// well-known types, are taken from protoregistry.GlobalFiles.
func NewResolverFromSet(set *descriptorpb.FileDescriptorSet) (*FilesResolver, error) {
	files := new(protoregistry.Files)
	deps := chain{files, protoregistry.GlobalFiles}
	for _, fdp := range set.GetFile() {
		fd, err := protodesc.NewFile(fdp, deps)
		if err != nil {
			return nil, errors.WrapInvalid(err, "FilesResolver", "NewResolverFromSet", "build "+fdp.GetName())
		}
		if err := files.RegisterFile(fd); err != nil {
			return nil, errors.WrapInvalid(err, "FilesResolver", "NewResolverFromSet", "register "+fdp.GetName())
		}
	}
	return &FilesResolver{files: files}, nil
}

// ParseDescriptorSet reads a binary FileDescriptorSet.
func ParseDescriptorSet(data []byte) (*FilesResolver, error) {
	set := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, set); err != nil {
		return nil, errors.WrapInvalid(err, "FilesResolver", "ParseDescriptorSet", "unmarshal descriptor set")
	}
	return NewResolverFromSet(set)
}

// FindMessage returns the descriptor of a message type.
func (r *FilesResolver) FindMessage(name protoreflect.FullName) (protoreflect.MessageDescriptor, error) {
	d, err := r.files.FindDescriptorByName(name)
	if err != nil {
		return nil, errors.Invalidf(errors.ErrUnknownField, "FilesResolver", "FindMessage", "message %s", name)
	}
	md, ok := d.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, errors.Invalidf(errors.ErrUnknownField, "FilesResolver", "FindMessage", "%s is not a message", name)
	}
	return md, nil
}

// NewMessage returns an empty dynamic message of the named type.
func (r *FilesResolver) NewMessage(name protoreflect.FullName) (*dynamicpb.Message, error) {
	md, err := r.FindMessage(name)
	if err != nil {
		return nil, err
	}
	return dynamicpb.NewMessage(md), nil
}

func (r *FilesResolver) FindFieldByNumber(message protoreflect.FullName, number protoreflect.FieldNumber) (protoreflect.FieldDescriptor, error) {
	md, err := r.FindMessage(message)
	if err != nil {
		return nil, err
	}
	fd := md.Fields().ByNumber(number)
	if fd == nil {
		return nil, errors.Invalidf(errors.ErrUnknownField, "FilesResolver", "FindFieldByNumber", "field %d of %s", number, message)
	}
	return fd, nil
}

func (r *FilesResolver) FindEnumValue(enum protoreflect.FullName, value protoreflect.Name) (protoreflect.EnumValueDescriptor, error) {
	d, err := r.files.FindDescriptorByName(enum)
	if err != nil {
		return nil, errors.Invalidf(errors.ErrUnknownField, "FilesResolver", "FindEnumValue", "enum %s", enum)
	}
	ed, ok := d.(protoreflect.EnumDescriptor)
	if !ok {
		return nil, errors.Invalidf(errors.ErrUnknownField, "FilesResolver", "FindEnumValue", "%s is not an enum", enum)
	}
	ev := ed.Values().ByName(value)
	if ev == nil {
		return nil, errors.Invalidf(errors.ErrUnknownField, "FilesResolver", "FindEnumValue", "value %s of %s", value, enum)
	}
	return ev, nil
}

// chain resolves dependencies from the first registry that knows them.
type chain []*protoregistry.Files

func (c chain) FindFileByPath(path string) (protoreflect.FileDescriptor, error) {
	for _, files := range c {
		if fd, err := files.FindFileByPath(path); err == nil {
			return fd, nil
		}
	}
	return nil, protoregistry.NotFound
}

func (c chain) FindDescriptorByName(name protoreflect.FullName) (protoreflect.Descriptor, error) {
	for _, files := range c {
		if d, err := files.FindDescriptorByName(name); err == nil {
			return d, nil
		}
	}
	return nil, protoregistry.NotFound
}
