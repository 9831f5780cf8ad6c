package store

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/pkg/retry"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// KeyValue is the part of jetstream.KeyValue the KV store uses.
type KeyValue interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Delete(ctx context.Context, key string, opts ...jetstream.KVDeleteOpt) error
	Keys(ctx context.Context, opts ...jetstream.WatchOpt) ([]string, error)
}

// KV stores Things in a NATS JetStream key-value bucket. IRIs are not valid
// NATS keys, so keys are the unpadded base64url encoding of the IRI.
// Operations failing with transient errors are retried.
type KV struct {
	bucket KeyValue
	retry  retry.Config
	logger *slog.Logger
	// conn is set when the store owns the connection
	conn *nats.Conn
}

// KVOption configures a KV store.
type KVOption func(*KV)

// WithRetry replaces the default retry policy.
func WithRetry(cfg retry.Config) KVOption {
	return func(kv *KV) { kv.retry = cfg }
}

// WithKVLogger sets the logger retries are reported to.
func WithKVLogger(logger *slog.Logger) KVOption {
	return func(kv *KV) { kv.logger = logger }
}

// NewKV wraps an open bucket.
func NewKV(bucket KeyValue, opts ...KVOption) *KV {
	kv := &KV{bucket: bucket, retry: errors.DefaultRetryConfig().ToRetryConfig()}
	for _, opt := range opts {
		opt(kv)
	}
	if kv.logger == nil {
		kv.logger = slog.Default()
	}
	if kv.retry.Retryable == nil {
		kv.retry.Retryable = errors.IsTransient
	}
	if kv.retry.OnRetry == nil {
		logger := kv.logger
		kv.retry.OnRetry = func(attempt int, err error, delay time.Duration) {
			logger.Warn("kv operation failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		}
	}
	return kv
}

// ConnectKV dials url and opens, creating if needed, the named bucket.
// Close also closes the connection.
func ConnectKV(ctx context.Context, url, bucket string, opts ...KVOption) (*KV, error) {
	nc, err := nats.Connect(url, nats.Name("enola"))
	if err != nil {
		return nil, backendFailure(err, "KV", "ConnectKV", "connect "+url)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, errors.WrapFatal(err, "KV", "ConnectKV", "jetstream context")
	}
	kv, err := retry.DoWithResult(ctx, retry.Quick(), func() (jetstream.KeyValue, error) {
		return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      bucket,
			Description: "Things by IRI",
		})
	})
	if err != nil {
		nc.Close()
		return nil, backendFailure(err, "KV", "ConnectKV", "open bucket "+bucket)
	}
	store := NewKV(kv, opts...)
	store.conn = nc
	return store, nil
}

// KeyFor returns the bucket key of iri.
func KeyFor(iri string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(iri))
}

// IRIFor reverses KeyFor.
func IRIFor(key string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return "", errors.WrapInvalid(errors.ErrDataCorrupted, "KV", "IRIFor", "key "+key)
	}
	return string(b), nil
}

func (kv *KV) do(ctx context.Context, fn func() error) error {
	return retry.Do(ctx, kv.retry, fn)
}

func (kv *KV) Put(ctx context.Context, t thing.Thing) error {
	doc, err := encode("Put", t)
	if err != nil {
		return err
	}
	key := KeyFor(t.IRI())
	err = kv.do(ctx, func() error {
		_, err := kv.bucket.Put(ctx, key, doc)
		return err
	})
	if err != nil {
		return backendFailure(err, "KV", "Put", "put "+t.IRI())
	}
	return nil
}

func (kv *KV) Get(ctx context.Context, iri string) (thing.Thing, error) {
	if err := checkIRI("Get", iri); err != nil {
		return thing.Thing{}, err
	}
	var doc []byte
	err := kv.do(ctx, func() error {
		entry, err := kv.bucket.Get(ctx, KeyFor(iri))
		if stderrors.Is(err, jetstream.ErrKeyNotFound) {
			return notFound("Get", iri)
		}
		if err != nil {
			return err
		}
		doc = entry.Value()
		return nil
	})
	if errors.IsInvalid(err) {
		return thing.Thing{}, err
	}
	if err != nil {
		return thing.Thing{}, backendFailure(err, "KV", "Get", "get "+iri)
	}
	return decode("Get", iri, doc)
}

func (kv *KV) Delete(ctx context.Context, iri string) error {
	if err := checkIRI("Delete", iri); err != nil {
		return err
	}
	err := kv.do(ctx, func() error {
		err := kv.bucket.Delete(ctx, KeyFor(iri))
		if stderrors.Is(err, jetstream.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return backendFailure(err, "KV", "Delete", "delete "+iri)
	}
	return nil
}

func (kv *KV) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := kv.do(ctx, func() error {
		var err error
		keys, err = kv.bucket.Keys(ctx)
		if stderrors.Is(err, jetstream.ErrNoKeysFound) {
			keys, err = nil, nil
		}
		return err
	})
	if err != nil {
		return nil, backendFailure(err, "KV", "List", "keys")
	}

	iris := make([]string, 0, len(keys))
	for _, key := range keys {
		iri, err := IRIFor(key)
		if err != nil {
			kv.logger.Warn("skipping foreign key in bucket", "key", key)
			continue
		}
		iris = append(iris, iri)
	}
	return withPrefix(iris, prefix), nil
}

// Close closes the connection when ConnectKV opened it.
func (kv *KV) Close() error {
	if kv.conn != nil {
		kv.conn.Close()
	}
	return nil
}
