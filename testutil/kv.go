package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// MockKV is an in-memory stand-in for a JetStream key-value bucket. It
// implements the subset of jetstream.KeyValue the KV store uses.
// Thread-safe for concurrent use from multiple goroutines.
type MockKV struct {
	mu       sync.RWMutex
	bucket   string
	data     map[string]mockEntry
	revision uint64

	// FailNext makes the next N calls return Err before touching data.
	FailNext int
	Err      error
	calls    int
}

// NewMockKV creates an empty bucket.
func NewMockKV(bucket string) *MockKV {
	return &MockKV{bucket: bucket, data: make(map[string]mockEntry)}
}

// Calls returns the number of calls made so far, failed ones included.
func (kv *MockKV) Calls() int {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	return kv.calls
}

func (kv *MockKV) fail() error {
	kv.calls++
	if kv.FailNext > 0 {
		kv.FailNext--
		return kv.Err
	}
	return nil
}

// Get retrieves the latest value of key.
func (kv *MockKV) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if err := kv.fail(); err != nil {
		return nil, err
	}

	e, ok := kv.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	// Return a copy to prevent races on the returned slice
	e.value = append([]byte(nil), e.value...)
	return e, nil
}

// Put stores value and returns the new revision.
func (kv *MockKV) Put(_ context.Context, key string, value []byte) (uint64, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if err := kv.fail(); err != nil {
		return 0, err
	}

	kv.revision++
	kv.data[key] = mockEntry{
		bucket:   kv.bucket,
		key:      key,
		value:    append([]byte(nil), value...),
		revision: kv.revision,
		created:  time.Now(),
	}
	return kv.revision, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (kv *MockKV) Delete(_ context.Context, key string, _ ...jetstream.KVDeleteOpt) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if err := kv.fail(); err != nil {
		return err
	}
	delete(kv.data, key)
	return nil
}

// Keys returns all keys in sorted order, or jetstream.ErrNoKeysFound when
// the bucket is empty.
func (kv *MockKV) Keys(_ context.Context, _ ...jetstream.WatchOpt) ([]string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if err := kv.fail(); err != nil {
		return nil, err
	}

	if len(kv.data) == 0 {
		return nil, jetstream.ErrNoKeysFound
	}
	keys := make([]string, 0, len(kv.data))
	for k := range kv.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

type mockEntry struct {
	bucket   string
	key      string
	value    []byte
	revision uint64
	created  time.Time
}

func (e mockEntry) Bucket() string                  { return e.bucket }
func (e mockEntry) Key() string                     { return e.key }
func (e mockEntry) Value() []byte                   { return e.value }
func (e mockEntry) Revision() uint64                { return e.revision }
func (e mockEntry) Created() time.Time              { return e.created }
func (e mockEntry) Delta() uint64                   { return 0 }
func (e mockEntry) Operation() jetstream.KeyValueOp { return jetstream.KeyValuePut }
