package message

import (
	"sort"

	"github.com/enola-dev/enola-sub007/datatype"
	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/enola-dev/enola-sub007/vocabulary"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Codec converts protobuf messages to Things and back.
//
// A Codec holds no mutable state and is safe for concurrent use once its
// Repository and Resolver are no longer modified.
type Codec struct {
	repo     *datatype.Repository
	resolver Resolver
}

// NewCodec creates a Codec. A nil repo means datatype.MustBuiltin() and a nil
// resolver means protoregistry.GlobalFiles.
func NewCodec(repo *datatype.Repository, resolver Resolver) *Codec {
	if repo == nil {
		repo = datatype.MustBuiltin()
	}
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return &Codec{repo: repo, resolver: resolver}
}

// Repository returns the datatypes used for scalar literals.
func (c *Codec) Repository() *datatype.Repository { return c.repo }

// ToThing converts msg into a Thing with the given IRI. Every populated field
// becomes one property keyed by FieldIRI, and the message full name is
// recorded under vocabulary.ProtoMessage.
func (c *Codec) ToThing(iri string, msg proto.Message) (thing.Thing, error) {
	b, err := c.toBuilder(msg.ProtoReflect())
	if err != nil {
		return thing.Thing{}, err
	}
	return b.IRI(iri).Build()
}

func (c *Codec) toBuilder(m protoreflect.Message) (*thing.Builder, error) {
	md := m.Descriptor()
	b := thing.NewBuilder("")
	b.Set(vocabulary.ProtoMessage, thing.String(string(md.FullName())))

	fields := md.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		if !m.Has(fd) {
			continue
		}
		v, err := c.fieldToValue(fd, m.Get(fd))
		if err != nil {
			return nil, err
		}
		b.Set(FieldIRI(md.FullName(), fd.Number()), v)
	}
	return b, nil
}

func (c *Codec) fieldToValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) (thing.Value, error) {
	switch {
	case fd.IsMap():
		return c.mapToValue(fd, v.Map())
	case fd.IsList():
		list := v.List()
		items := make([]thing.Value, list.Len())
		for i := 0; i < list.Len(); i++ {
			item, err := c.singularToValue(fd, list.Get(i))
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return thing.List(items...), nil
	default:
		return c.singularToValue(fd, v)
	}
}

// mapToValue renders a map as a list of entry structs ordered by key, each
// holding the key under field 1 and the value under field 2 of the
// synthetic map entry message.
func (c *Codec) mapToValue(fd protoreflect.FieldDescriptor, mp protoreflect.Map) (thing.Value, error) {
	keys := make([]protoreflect.MapKey, 0, mp.Len())
	mp.Range(func(k protoreflect.MapKey, _ protoreflect.Value) bool {
		keys = append(keys, k)
		return true
	})
	sort.Slice(keys, func(i, j int) bool { return lessMapKey(keys[i], keys[j]) })

	entry := fd.Message()
	items := make([]thing.Value, len(keys))
	for i, k := range keys {
		kv, err := c.singularToValue(fd.MapKey(), k.Value())
		if err != nil {
			return nil, err
		}
		vv, err := c.singularToValue(fd.MapValue(), mp.Get(k))
		if err != nil {
			return nil, err
		}
		t, err := thing.NewBuilder("").
			Set(vocabulary.ProtoMessage, thing.String(string(entry.FullName()))).
			Set(FieldIRI(entry.FullName(), fd.MapKey().Number()), kv).
			Set(FieldIRI(entry.FullName(), fd.MapValue().Number()), vv).
			BuildBlank()
		if err != nil {
			return nil, err
		}
		items[i] = thing.Struct(t)
	}
	return thing.List(items...), nil
}

func lessMapKey(a, b protoreflect.MapKey) bool {
	switch x := a.Interface().(type) {
	case string:
		return x < b.String()
	case bool:
		return !x && b.Bool()
	case int32, int64:
		return a.Int() < b.Int()
	case uint32, uint64:
		return a.Uint() < b.Uint()
	}
	return false
}

func (c *Codec) singularToValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) (thing.Value, error) {
	switch fd.Kind() {
	case protoreflect.StringKind:
		return thing.String(v.String()), nil

	case protoreflect.EnumKind:
		ed := fd.Enum()
		ev := ed.Values().ByNumber(v.Enum())
		if ev == nil {
			return nil, errors.Invalidf(errors.ErrUnknownField, "Codec", "ToThing",
				"value %d of enum %s", v.Enum(), ed.FullName())
		}
		return thing.Link(EnumValueIRI(ed.FullName(), ev.Name())), nil

	case protoreflect.MessageKind, protoreflect.GroupKind:
		if native, ok := wellKnownToNative(v.Message()); ok {
			return c.encodeNative(native)
		}
		b, err := c.toBuilder(v.Message())
		if err != nil {
			return nil, err
		}
		nested, err := b.BuildBlank()
		if err != nil {
			return nil, err
		}
		return thing.Struct(nested), nil

	default:
		return c.encodeNative(v.Interface())
	}
}

// FromThing fills msg from t, the structural inverse of ToThing. Properties
// absent from t, or holding Unset, leave their fields unset. Nothing is
// coerced: a value of the wrong variant or datatype fails with
// ErrVariantMismatch. The one exception mirrors ToThing: a string fills a
// scalar field the Repository has no datatype for.
func (c *Codec) FromThing(t thing.Thing, msg proto.Message) error {
	return c.fromThing(t, msg.ProtoReflect())
}

func (c *Codec) fromThing(t thing.Thing, m protoreflect.Message) error {
	md := m.Descriptor()
	if err := checkHeader(t, md.FullName()); err != nil {
		return err
	}

	for _, key := range t.Keys() {
		if key == vocabulary.ProtoMessage {
			continue
		}
		name, number, err := ParseFieldIRI(key)
		if err != nil {
			return err
		}
		if name != md.FullName() {
			return errors.Invalidf(errors.ErrUnknownField, "Codec", "FromThing",
				"property %s belongs to %s, not %s", key, name, md.FullName())
		}
		resolved, err := c.resolver.FindFieldByNumber(name, number)
		if err != nil {
			return err
		}
		// The resolver is the schema authority; the message's own descriptor
		// is the one protoreflect accepts for Set.
		fd := md.Fields().ByNumber(resolved.Number())
		if fd == nil || fd.FullName() != resolved.FullName() {
			return errors.Invalidf(errors.ErrUnknownField, "Codec", "FromThing", "field %d of %s", number, name)
		}

		v, _ := t.Lookup(key)
		if err := c.setField(m, fd, v); err != nil {
			return err
		}
	}
	return nil
}

func checkHeader(t thing.Thing, want protoreflect.FullName) error {
	h, ok := t.Lookup(vocabulary.ProtoMessage)
	if !ok {
		return nil
	}
	s, isString := h.(thing.StringValue)
	if !isString || s.Text != string(want) {
		return errors.Invalidf(errors.ErrVariantMismatch, "Codec", "FromThing",
			"header %s, want %s", h, want)
	}
	return nil
}

func (c *Codec) setField(m protoreflect.Message, fd protoreflect.FieldDescriptor, v thing.Value) error {
	if _, unset := v.(thing.Unset); unset {
		return nil
	}

	switch {
	case fd.IsMap():
		return c.setMap(m, fd, v)

	case fd.IsList():
		items, ok := v.(thing.ListValue)
		if !ok {
			return mismatch(fd, v)
		}
		list := m.Mutable(fd).List()
		for _, item := range items.Items {
			var elem protoreflect.Value
			if isMessage(fd) {
				elem = list.NewElement()
			}
			pv, err := c.valueToSingular(fd, item, elem)
			if err != nil {
				return err
			}
			list.Append(pv)
		}
		return nil

	default:
		var elem protoreflect.Value
		if isMessage(fd) {
			elem = m.NewField(fd)
		}
		pv, err := c.valueToSingular(fd, v, elem)
		if err != nil {
			return err
		}
		m.Set(fd, pv)
		return nil
	}
}

func (c *Codec) setMap(m protoreflect.Message, fd protoreflect.FieldDescriptor, v thing.Value) error {
	entries, ok := v.(thing.ListValue)
	if !ok {
		return mismatch(fd, v)
	}
	entry := fd.Message()
	keyIRI := FieldIRI(entry.FullName(), fd.MapKey().Number())
	valueIRI := FieldIRI(entry.FullName(), fd.MapValue().Number())

	mp := m.Mutable(fd).Map()
	for _, e := range entries.Items {
		sv, ok := e.(thing.StructValue)
		if !ok {
			return mismatch(fd, e)
		}
		if err := checkHeader(sv.Thing, entry.FullName()); err != nil {
			return err
		}
		for _, k := range sv.Thing.Keys() {
			if k != keyIRI && k != valueIRI && k != vocabulary.ProtoMessage {
				return errors.Invalidf(errors.ErrUnknownField, "Codec", "FromThing", "map entry property %s", k)
			}
		}

		kv, err := c.valueToSingular(fd.MapKey(), sv.Thing.Get(keyIRI), protoreflect.Value{})
		if err != nil {
			return err
		}
		var elem protoreflect.Value
		if isMessage(fd.MapValue()) {
			elem = mp.NewValue()
		}
		vv, err := c.valueToSingular(fd.MapValue(), sv.Thing.Get(valueIRI), elem)
		if err != nil {
			return err
		}
		mp.Set(kv.MapKey(), vv)
	}
	return nil
}

// valueToSingular converts one element. For message kinds elem is a fresh
// message value to fill.
func (c *Codec) valueToSingular(fd protoreflect.FieldDescriptor, v thing.Value, elem protoreflect.Value) (protoreflect.Value, error) {
	switch fd.Kind() {
	case protoreflect.StringKind:
		s, ok := v.(thing.StringValue)
		if !ok {
			return protoreflect.Value{}, mismatch(fd, v)
		}
		return protoreflect.ValueOfString(s.Text), nil

	case protoreflect.EnumKind:
		link, ok := v.(thing.LinkValue)
		if !ok {
			return protoreflect.Value{}, mismatch(fd, v)
		}
		enum, name, err := ParseEnumValueIRI(link.IRI)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if enum != fd.Enum().FullName() {
			return protoreflect.Value{}, errors.Invalidf(errors.ErrVariantMismatch, "Codec", "FromThing",
				"%s links to enum %s, want %s", fd.FullName(), enum, fd.Enum().FullName())
		}
		ev, err := c.resolver.FindEnumValue(enum, name)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfEnum(ev.Number()), nil

	case protoreflect.MessageKind, protoreflect.GroupKind:
		if isWellKnown(fd.Message().FullName()) {
			var native any
			var err error
			switch x := v.(type) {
			case thing.LiteralValue:
				native, err = c.decodeLiteral(fd, x)
			case thing.StringValue:
				if !c.opaque(fd) {
					return protoreflect.Value{}, mismatch(fd, v)
				}
				native, err = parseOpaque(fd, x.Text)
			default:
				return protoreflect.Value{}, mismatch(fd, v)
			}
			if err != nil {
				return protoreflect.Value{}, err
			}
			if err := nativeToWellKnown(native, elem.Message()); err != nil {
				return protoreflect.Value{}, errors.Invalidf(errors.ErrVariantMismatch, "Codec", "FromThing",
					"%s: %v", fd.FullName(), err)
			}
			return elem, nil
		}
		sv, ok := v.(thing.StructValue)
		if !ok {
			return protoreflect.Value{}, mismatch(fd, v)
		}
		if err := c.fromThing(sv.Thing, elem.Message()); err != nil {
			return protoreflect.Value{}, err
		}
		return elem, nil

	default:
		if s, ok := v.(thing.StringValue); ok && c.opaque(fd) {
			pv, err := parseOpaque(fd, s.Text)
			if err != nil {
				return protoreflect.Value{}, err
			}
			return pv.(protoreflect.Value), nil
		}
		lit, ok := v.(thing.LiteralValue)
		if !ok {
			return protoreflect.Value{}, mismatch(fd, v)
		}
		native, err := c.decodeLiteral(fd, lit)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if !fitsKind(fd.Kind(), native) {
			return protoreflect.Value{}, errors.Invalidf(errors.ErrVariantMismatch, "Codec", "FromThing",
				"%s is %s, got %s literal", fd.FullName(), fd.Kind(), lit.Datatype)
		}
		return protoreflect.ValueOf(native), nil
	}
}

func (c *Codec) decodeLiteral(fd protoreflect.FieldDescriptor, lit thing.LiteralValue) (any, error) {
	native, err := c.repo.Decode(lit.Text, lit.Datatype)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Codec", "FromThing", "decode "+string(fd.FullName()))
	}
	return native, nil
}

// fitsKind reports whether a decoded literal has exactly the Go type
// protoreflect expects for kind.
func fitsKind(kind protoreflect.Kind, native any) bool {
	switch native.(type) {
	case bool:
		return kind == protoreflect.BoolKind
	case int32:
		return kind == protoreflect.Int32Kind || kind == protoreflect.Sint32Kind || kind == protoreflect.Sfixed32Kind
	case int64:
		return kind == protoreflect.Int64Kind || kind == protoreflect.Sint64Kind || kind == protoreflect.Sfixed64Kind
	case uint32:
		return kind == protoreflect.Uint32Kind || kind == protoreflect.Fixed32Kind
	case uint64:
		return kind == protoreflect.Uint64Kind || kind == protoreflect.Fixed64Kind
	case float32:
		return kind == protoreflect.FloatKind
	case float64:
		return kind == protoreflect.DoubleKind
	case []byte:
		return kind == protoreflect.BytesKind
	}
	return false
}

func isMessage(fd protoreflect.FieldDescriptor) bool {
	return fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind
}

func mismatch(fd protoreflect.FieldDescriptor, v thing.Value) error {
	return errors.Invalidf(errors.ErrVariantMismatch, "Codec", "FromThing",
		"%s (%s) cannot hold a %s value", fd.FullName(), describe(fd), thing.Kind(v))
}

func describe(fd protoreflect.FieldDescriptor) string {
	switch {
	case fd.IsMap():
		return "map"
	case fd.IsList():
		return "repeated " + fd.Kind().String()
	}
	return fd.Kind().String()
}
