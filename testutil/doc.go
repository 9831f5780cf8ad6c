// Package testutil provides fixtures and fakes shared by package tests.
//
// # Protobuf Fixture
//
// PersonFile describes "enola/test/person.proto", a proto3 file with one
// field of every shape the message codec handles: each scalar kind, an enum,
// a nested message, repeated scalars and messages, a map, and the Timestamp
// and Duration well-known types. It is built from descriptorpb at runtime,
// so no generated code is needed:
//
//	files := testutil.PersonFiles(t)
//	m := testutil.NewMessage(t, files, testutil.PersonType)
//	testutil.Set(t, m, "name", protoreflect.ValueOfString("Alice"))
//	testutil.AppendMessage(t, m, "addresses", func(a protoreflect.Message) { ... })
//
// PersonDescriptorSet wraps the same file as a FileDescriptorSet, the form
// the CLI reads from disk.
//
// # Key-Value Fake
//
// MockKV is an in-memory JetStream key-value bucket for the KV store tests.
// It returns jetstream.ErrKeyNotFound and jetstream.ErrNoKeysFound like a
// real bucket, and can fail the next N calls to exercise retries:
//
//	kv := testutil.NewMockKV("things")
//	kv.FailNext, kv.Err = 2, nats.ErrTimeout
//
// MockKV is safe for concurrent use. Real NATS behavior (watchers, history,
// TTLs) is not modelled.
//
// testutil never imports the packages it serves, which keeps it usable from
// their internal tests.
package testutil
