package graph

import (
	stderrors "errors"
	"io"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/enola-dev/enola-sub007/errors"
)

// ReadNQuads parses an N-Quads (or N-Triples) document. Typed literals are
// kept as quad.TypedString so the Codec decides how to decode them.
func ReadNQuads(r io.Reader) ([]quad.Quad, error) {
	qr := nquads.NewReader(r, true)
	defer qr.Close()

	var out []quad.Quad
	for {
		q, err := qr.ReadQuad()
		if stderrors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, errors.Invalidf(errors.ErrParsingFailed, "Graph", "ReadNQuads", "quad %d: %v", len(out)+1, err)
		}
		out = append(out, q)
	}
}

// WriteNQuads writes quads in N-Quads syntax, one per line.
func WriteNQuads(w io.Writer, quads []quad.Quad) error {
	qw := nquads.NewWriter(w)
	for _, q := range quads {
		if err := qw.WriteQuad(q); err != nil {
			return errors.WrapTransient(err, "Graph", "WriteNQuads", "write quad")
		}
	}
	return errors.WrapTransient(qw.Close(), "Graph", "WriteNQuads", "flush")
}
