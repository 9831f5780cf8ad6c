package store

import (
	"context"

	"github.com/enola-dev/enola-sub007/pkg/cache"
	"github.com/enola-dev/enola-sub007/thing"
)

// Memory keeps Things in process. Things are immutable, so they are stored
// as they are.
type Memory struct {
	things cache.Cache[thing.Thing]
}

// NewMemory creates an empty in-memory store. Options may add cache metrics.
func NewMemory(options ...cache.Option[thing.Thing]) (*Memory, error) {
	c, err := cache.NewSimple(options...)
	if err != nil {
		return nil, err
	}
	return &Memory{things: c}, nil
}

func (m *Memory) Put(_ context.Context, t thing.Thing) error {
	iri, err := keyOf("Put", t)
	if err != nil {
		return err
	}
	_, err = m.things.Set(iri, t)
	return err
}

func (m *Memory) Get(_ context.Context, iri string) (thing.Thing, error) {
	if err := checkIRI("Get", iri); err != nil {
		return thing.Thing{}, err
	}
	t, ok := m.things.Get(iri)
	if !ok {
		return thing.Thing{}, notFound("Get", iri)
	}
	return t, nil
}

func (m *Memory) Delete(_ context.Context, iri string) error {
	if err := checkIRI("Delete", iri); err != nil {
		return err
	}
	_, err := m.things.Delete(iri)
	return err
}

func (m *Memory) List(_ context.Context, prefix string) ([]string, error) {
	return withPrefix(m.things.Keys(), prefix), nil
}

func (m *Memory) Close() error { return m.things.Close() }
