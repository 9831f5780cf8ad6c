package kind

import (
	"log/slog"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/pkg/cache"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/enola-dev/enola-sub007/vocabulary"
)

// Resolution is the kind an IRI belongs to and the template variables it
// carries.
type Resolution struct {
	IRI      string
	Kind     Kind
	Captures map[string]string
}

// Thing describes the resolved entity: its kind as rdf:type, the kind's
// label and message type, and one property per captured variable under
// the kind's namespace.
func (r Resolution) Thing() (thing.Thing, error) {
	b := thing.NewBuilder(r.IRI).
		Set(vocabulary.RdfType, thing.Link(TypeIRI(r.Kind.Name)))
	if r.Kind.Label != "" {
		b.Set(vocabulary.RdfsLabel, thing.String(r.Kind.Label))
	}
	if r.Kind.Message != "" {
		b.Set(vocabulary.ProtoMessage, thing.String(r.Kind.Message))
	}
	for name, value := range r.Captures {
		b.Set(TypeIRI(r.Kind.Name)+"#"+name, thing.String(value))
	}
	return b.Build()
}

// TypeIRI is the rdf:type given to entities of the named kind.
func TypeIRI(name string) string {
	return vocabulary.EnolaBase + "kind/" + name
}

// Resolver maps IRIs to kinds, caching positive answers.
type Resolver struct {
	catalog *Catalog
	cache   cache.Cache[Resolution]
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache replaces the default 512 entry LRU cache. Pass cache.NewNoop to
// disable caching.
func WithCache(c cache.Cache[Resolution]) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a Resolver over catalog.
func NewResolver(catalog *Catalog, opts ...Option) (*Resolver, error) {
	r := &Resolver{catalog: catalog}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.cache == nil {
		c, err := cache.NewLRU[Resolution](512)
		if err != nil {
			return nil, err
		}
		r.cache = c
	}
	return r, nil
}

// Resolve finds the most specific kind whose template matches iri.
func (r *Resolver) Resolve(iri string) (Resolution, bool) {
	if res, ok := r.cache.Get(iri); ok {
		return res, true
	}
	m, ok := r.catalog.router.Match(iri)
	if !ok {
		r.logger.Debug("no kind for IRI", "iri", iri)
		return Resolution{}, false
	}
	res := Resolution{IRI: iri, Kind: m.Payload, Captures: m.Captures}
	if _, err := r.cache.Set(iri, res); err != nil {
		r.logger.Warn("kind cache write failed", "iri", iri, "error", err)
	}
	return res, true
}

// Expand builds the IRI of an entity of the named kind.
func (r *Resolver) Expand(kindName string, vars map[string]string) (string, error) {
	k, ok := r.catalog.Kind(kindName)
	if !ok {
		return "", errors.Invalidf(errors.ErrNoMatch, "Resolver", "Expand", "unknown kind %q", kindName)
	}
	return r.catalog.router.Expand(k.IRI, vars)
}

// Catalog returns the catalog the resolver answers from.
func (r *Resolver) Catalog() *Catalog { return r.catalog }
