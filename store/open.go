package store

import (
	"context"
	"log/slog"

	"github.com/enola-dev/enola-sub007/metric"
	"github.com/enola-dev/enola-sub007/thing"
)

// Open creates the store config selects. Operations are counted in
// metrics, which may be nil.
func Open(ctx context.Context, cfg Config, metrics *metric.Metrics, logger *slog.Logger) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case BackendMemory:
		s, err = NewMemory()
	case BackendSQLite:
		s, err = OpenSQLite(ctx, cfg.SQLitePath)
	case BackendNATS:
		s, err = ConnectKV(ctx, cfg.NATSURL, cfg.Bucket, WithKVLogger(logger))
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "backend", cfg.Backend)
	return Instrument(s, cfg.Backend, metrics), nil
}

// Instrument counts every operation of s in metrics under backend. A nil
// metrics returns s unchanged.
func Instrument(s Store, backend string, metrics *metric.Metrics) Store {
	if metrics == nil {
		return s
	}
	return &instrumented{Store: s, backend: backend, metrics: metrics}
}

type instrumented struct {
	Store
	backend string
	metrics *metric.Metrics
}

func (s *instrumented) Put(ctx context.Context, t thing.Thing) error {
	err := s.Store.Put(ctx, t)
	s.metrics.RecordStoreOperation(s.backend, "put", err)
	return err
}

func (s *instrumented) Get(ctx context.Context, iri string) (thing.Thing, error) {
	t, err := s.Store.Get(ctx, iri)
	s.metrics.RecordStoreOperation(s.backend, "get", err)
	return t, err
}

func (s *instrumented) Delete(ctx context.Context, iri string) error {
	err := s.Store.Delete(ctx, iri)
	s.metrics.RecordStoreOperation(s.backend, "delete", err)
	return err
}

func (s *instrumented) List(ctx context.Context, prefix string) ([]string, error) {
	iris, err := s.Store.List(ctx, prefix)
	s.metrics.RecordStoreOperation(s.backend, "list", err)
	return iris, err
}
