package document

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
	"gopkg.in/yaml.v3"
)

// Format names a text serialization.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatOf picks the format from a file extension. Anything but .json is
// read as YAML, which also accepts JSON.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// Write serializes t to w.
func Write(w io.Writer, format Format, t thing.Thing) error {
	n := FromThing(t)
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(n); err != nil {
			return errors.WrapTransient(err, "document", "Write", "json encode")
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return errors.WrapTransient(err, "document", "Write", "yaml encode")
		}
		if err := enc.Close(); err != nil {
			return errors.WrapTransient(err, "document", "Write", "yaml flush")
		}
		return nil
	}
	return errors.Invalidf(errors.ErrInvalidData, "document", "Write", "unknown format %q", format)
}

// Marshal returns the serialization of t.
func Marshal(format Format, t thing.Thing) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, format, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read parses exactly one YAML or JSON document from r; JSON is read by the
// YAML parser. A stream holding a second document fails with
// ErrMultipleRoots and unknown keys fail with ErrUnknownField.
func Read(r io.Reader) (thing.Thing, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var n Node
	if err := dec.Decode(&n); err != nil {
		if stderrors.Is(err, io.EOF) {
			return thing.Thing{}, errors.WrapInvalid(errors.ErrNoMatch, "document", "Read", "empty document")
		}
		return thing.Thing{}, classify(err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case stderrors.Is(err, io.EOF):
	case err != nil:
		return thing.Thing{}, classify(err)
	default:
		return thing.Thing{}, errors.WrapInvalid(errors.ErrMultipleRoots, "document", "Read", "more than one document")
	}
	return n.Thing()
}

// Unmarshal parses exactly one document from data.
func Unmarshal(data []byte) (thing.Thing, error) {
	return Read(bytes.NewReader(data))
}

// classify maps YAML errors to conversion sentinels. yaml.v3 reports unknown
// keys as a TypeError whose messages mention "not found in type".
func classify(err error) error {
	var te *yaml.TypeError
	if stderrors.As(err, &te) {
		for _, msg := range te.Errors {
			if strings.Contains(msg, "not found in type") {
				return errors.Invalidf(errors.ErrUnknownField, "document", "Read", "%s", msg)
			}
		}
		return errors.Invalidf(errors.ErrMalformedValue, "document", "Read", "%s", strings.Join(te.Errors, "; "))
	}
	return errors.Invalidf(errors.ErrMalformedValue, "document", "Read", "%v", err)
}
