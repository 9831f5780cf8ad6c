package datatype

import (
	"reflect"
	"regexp"

	"github.com/enola-dev/enola-sub007/errors"
)

// Codec is a Datatype with its Go type erased, so a Repository can hold
// datatypes of different types in one ordered list.
type Codec interface {
	// IRI identifies the datatype, e.g. xsd:dateTime.
	IRI() string
	// Pattern is the full-text sniffing pattern; nil if the datatype is
	// never inferred from text alone.
	Pattern() *regexp.Regexp
	// Type is the Go type Decode returns and Encode accepts.
	Type() reflect.Type
	// Matches reports whether text fully matches Pattern.
	Matches(text string) bool
	// Decode parses text into a value of Type.
	Decode(text string) (any, error)
	// Encode renders v; ok is false when v is not of Type.
	Encode(v any) (text string, ok bool)
}

// Datatype is a named, bidirectional text codec for values of type T.
type Datatype[T any] struct {
	iri     string
	pattern *regexp.Regexp
	format  func(T) string
	parse   func(string) (T, error)
}

// New creates a Datatype. An empty pattern means the datatype is never sniffed
// by Repository.Match; otherwise the pattern must match the whole text. New
// panics on an invalid pattern, like regexp.MustCompile, since datatypes are
// declared at startup.
func New[T any](iri, pattern string, format func(T) string, parse func(string) (T, error)) *Datatype[T] {
	d := &Datatype[T]{iri: iri, format: format, parse: parse}
	if pattern != "" {
		d.pattern = regexp.MustCompile(`^(?:` + pattern + `)$`)
	}
	return d
}

func (d *Datatype[T]) IRI() string { return d.iri }

func (d *Datatype[T]) Pattern() *regexp.Regexp { return d.pattern }

func (d *Datatype[T]) Type() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (d *Datatype[T]) Matches(text string) bool {
	return d.pattern != nil && d.pattern.MatchString(text)
}

// Parse converts text to T. Failures wrap ErrMalformedValue.
func (d *Datatype[T]) Parse(text string) (T, error) {
	v, err := d.parse(text)
	if err != nil {
		var zero T
		return zero, errors.Invalidf(errors.ErrMalformedValue, "Datatype", "Parse",
			"%q as %s: %v", text, d.iri, err)
	}
	return v, nil
}

// Format renders v as text.
func (d *Datatype[T]) Format(v T) string { return d.format(v) }

func (d *Datatype[T]) Decode(text string) (any, error) {
	return d.Parse(text)
}

func (d *Datatype[T]) Encode(v any) (string, bool) {
	typed, ok := v.(T)
	if !ok {
		return "", false
	}
	return d.format(typed), true
}
