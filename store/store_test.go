package store

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/metric"
	"github.com/enola-dev/enola-sub007/pkg/retry"
	"github.com/enola-dev/enola-sub007/testutil"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/enola-dev/enola-sub007/vocabulary"
	"github.com/google/go-cmp/cmp"
	"github.com/nats-io/nats.go"
	"github.com/ncruces/go-sqlite3"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	mem, err := NewMemory()
	require.NoError(t, err)
	sq, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "things.db"))
	require.NoError(t, err)
	return map[string]Store{
		BackendMemory: mem,
		BackendSQLite: sq,
		BackendNATS:   NewKV(testutil.NewMockKV("things"), WithRetry(fastRetry())),
	}
}

const tags = "https://example.org/tags"

func person(iri, name string) thing.Thing {
	return thing.MustNew(iri, map[string]thing.Value{
		vocabulary.SchemaName: thing.String(name),
		vocabulary.RdfType:    thing.Link("https://schema.org/Person"),
		tags:                  thing.List(thing.String("a"), thing.Literal("7", vocabulary.XsdInt)),
	})
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			alice := person("https://example.org/people/alice", "Alice")
			bob := person("https://example.org/people/bob", "Bob")
			book := person("https://example.org/books/1", "Dune")
			for _, th := range []thing.Thing{bob, book, alice} {
				require.NoError(t, s.Put(ctx, th))
			}

			got, err := s.Get(ctx, alice.IRI())
			require.NoError(t, err)
			if diff := cmp.Diff(alice, got); diff != "" {
				t.Errorf("Get mismatch (-want +got):\n%s", diff)
			}

			renamed := alice.With(vocabulary.SchemaName, thing.String("Alicia"))
			require.NoError(t, s.Put(ctx, renamed))
			got, err = s.Get(ctx, alice.IRI())
			require.NoError(t, err)
			assert.True(t, renamed.Equal(got), "put replaces")

			iris, err := s.List(ctx, "https://example.org/people/")
			require.NoError(t, err)
			assert.Equal(t, []string{alice.IRI(), bob.IRI()}, iris)

			all, err := s.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, all, 3)

			require.NoError(t, s.Delete(ctx, bob.IRI()))
			require.NoError(t, s.Delete(ctx, bob.IRI()), "delete is idempotent")
			_, err = s.Get(ctx, bob.IRI())
			assert.ErrorIs(t, err, errors.ErrKeyNotFound)
			assert.False(t, errors.IsTransient(err))

			none, err := s.List(ctx, "https://example.org/nobody/")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestStoreRejectsAnonymousThings(t *testing.T) {
	ctx := context.Background()
	blank, err := thing.NewBlank(map[string]thing.Value{vocabulary.SchemaName: thing.String("x")})
	require.NoError(t, err)

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			assert.True(t, errors.IsInvalid(s.Put(ctx, blank)))
			_, err := s.Get(ctx, "")
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestKVRetriesTransientErrors(t *testing.T) {
	ctx := context.Background()
	bucket := testutil.NewMockKV("things")
	var retries int
	cfg := fastRetry()
	cfg.OnRetry = func(int, error, time.Duration) { retries++ }
	s := NewKV(bucket, WithRetry(cfg))

	bucket.FailNext, bucket.Err = 2, nats.ErrTimeout
	require.NoError(t, s.Put(ctx, person("https://example.org/a", "A")))
	assert.Equal(t, 2, retries)
	assert.Equal(t, 3, bucket.Calls())

	bucket.FailNext = 5
	_, err := s.Get(ctx, "https://example.org/a")
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err))
	assert.ErrorIs(t, err, errors.ErrConnectionTimeout)
	assert.ErrorIs(t, err, nats.ErrTimeout)
}

func TestBackendFailureSentinels(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      error
		transient bool
	}{
		{"nats timeout", nats.ErrTimeout, errors.ErrConnectionTimeout, true},
		{"deadline", context.DeadlineExceeded, errors.ErrConnectionTimeout, true},
		{"connection closed", nats.ErrConnectionClosed, errors.ErrConnectionLost, true},
		{"disconnected", nats.ErrDisconnected, errors.ErrConnectionLost, true},
		{"no servers", nats.ErrNoServers, errors.ErrNoConnection, true},
		{"sqlite busy", sqlite3.BUSY, errors.ErrStorageUnavailable, true},
		{"anything else", stderrors.New("boom"), errors.ErrStorageUnavailable, true},
		{"sqlite full", sqlite3.FULL, errors.ErrStorageFull, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := backendFailure(tt.err, "SQLite", "Put", "upsert")
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.transient, errors.IsTransient(err))
			assert.Equal(t, !tt.transient, errors.IsFatal(err))
		})
	}
	assert.NoError(t, backendFailure(nil, "KV", "Get", "get"))
}

func TestKVKeys(t *testing.T) {
	iri := "https://example.org/people/alice?x=1#me"
	key := KeyFor(iri)
	assert.NotContains(t, key, "/")
	assert.NotContains(t, key, ":")
	back, err := IRIFor(key)
	require.NoError(t, err)
	assert.Equal(t, iri, back)

	_, err = IRIFor("not base64!")
	assert.Error(t, err)
}

func TestKVSkipsForeignKeys(t *testing.T) {
	ctx := context.Background()
	bucket := testutil.NewMockKV("things")
	_, err := bucket.Put(ctx, "not.base64!", []byte("{}"))
	require.NoError(t, err)

	s := NewKV(bucket, WithRetry(fastRetry()))
	require.NoError(t, s.Put(ctx, person("https://example.org/a", "A")))
	iris, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.org/a"}, iris)
}

func TestKVCorruptDocument(t *testing.T) {
	ctx := context.Background()
	bucket := testutil.NewMockKV("things")
	_, err := bucket.Put(ctx, KeyFor("https://example.org/a"), []byte("{not json"))
	require.NoError(t, err)

	_, err = NewKV(bucket, WithRetry(fastRetry())).Get(ctx, "https://example.org/a")
	assert.ErrorIs(t, err, errors.ErrDataCorrupted)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{Backend: BackendSQLite, SQLitePath: "x.db"}.Validate())
	assert.ErrorIs(t, Config{Backend: BackendSQLite}.Validate(), errors.ErrMissingConfig)
	assert.ErrorIs(t, Config{Backend: BackendNATS, NATSURL: "nats://localhost:4222"}.Validate(), errors.ErrMissingConfig)
	assert.ErrorIs(t, Config{Backend: "redis"}.Validate(), errors.ErrInvalidConfig)
}

func TestOpenInstrumentsOperations(t *testing.T) {
	ctx := context.Background()
	reg := metric.NewMetricsRegistry()
	cfg := Config{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "t.db")}
	s, err := Open(ctx, cfg, reg.CoreMetrics(), nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put(ctx, person("https://example.org/a", "A")))
	_, err = s.Get(ctx, "https://example.org/missing")
	require.Error(t, err)

	ops := reg.CoreMetrics().StoreOperations
	assert.Equal(t, 1.0, promtest.ToFloat64(ops.WithLabelValues(BackendSQLite, "put", metric.StatusOK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(ops.WithLabelValues(BackendSQLite, "get", metric.StatusError)))

	_, err = Open(ctx, Config{Backend: "redis"}, nil, nil)
	assert.True(t, errors.IsInvalid(err))
}
