package store

import (
	"context"
	"sort"
	"strings"

	"github.com/enola-dev/enola-sub007/document"
	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
)

// Store persists Things by IRI. Implementations are safe for concurrent use.
type Store interface {
	// Put replaces whatever is stored under t's IRI. Anonymous Things are
	// rejected.
	Put(ctx context.Context, t thing.Thing) error

	// Get fails with errors.ErrKeyNotFound when nothing is stored under iri.
	Get(ctx context.Context, iri string) (thing.Thing, error)

	// Delete is idempotent.
	Delete(ctx context.Context, iri string) error

	// List returns the stored IRIs starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	Close() error
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendNATS   = "nats"
)

// Config is the "store" section of the configuration file.
type Config struct {
	Backend string `json:"backend"`
	// SQLitePath is the database file of the sqlite backend.
	SQLitePath string `json:"sqlite_path,omitempty"`
	// NATSURL and Bucket locate the key-value bucket of the nats backend.
	NATSURL string `json:"nats_url,omitempty"`
	Bucket  string `json:"bucket,omitempty"`
}

// DefaultConfig selects the memory backend.
func DefaultConfig() Config {
	return Config{Backend: BackendMemory, Bucket: "enola_things"}
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.WrapInvalid(errors.ErrMissingConfig, "store", "Validate", "sqlite_path is required for sqlite")
		}
		return nil
	case BackendNATS:
		if c.NATSURL == "" || c.Bucket == "" {
			return errors.WrapInvalid(errors.ErrMissingConfig, "store", "Validate", "nats_url and bucket are required for nats")
		}
		return nil
	}
	return errors.Invalidf(errors.ErrInvalidConfig, "store", "Validate", "unknown backend %q", c.Backend)
}

func keyOf(method string, t thing.Thing) (string, error) {
	if t.IsBlank() {
		return "", errors.WrapInvalid(errors.ErrInvalidData, "store", method, "anonymous thing has no key")
	}
	return t.IRI(), nil
}

func encode(method string, t thing.Thing) ([]byte, error) {
	if _, err := keyOf(method, t); err != nil {
		return nil, err
	}
	return document.Marshal(document.JSON, t)
}

func decode(method, iri string, data []byte) (thing.Thing, error) {
	t, err := document.Unmarshal(data)
	if err != nil {
		return thing.Thing{}, errors.WrapFatal(errors.ErrDataCorrupted, "store", method, "stored document for "+iri+": "+err.Error())
	}
	return t, nil
}

func notFound(method, iri string) error {
	return errors.Invalidf(errors.ErrKeyNotFound, "store", method, "%s", iri)
}

func checkIRI(method, iri string) error {
	if iri == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "store", method, "empty IRI")
	}
	return nil
}

// withPrefix filters and sorts iris in place.
func withPrefix(iris []string, prefix string) []string {
	out := iris[:0]
	for _, iri := range iris {
		if strings.HasPrefix(iri, prefix) {
			out = append(out, iri)
		}
	}
	sort.Strings(out)
	return out
}
