package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constructors() map[string]func(...Option[string]) (Cache[string], error) {
	return map[string]func(...Option[string]) (Cache[string], error){
		"simple": NewSimple[string],
		"lru": func(opts ...Option[string]) (Cache[string], error) {
			return NewLRU(100, opts...)
		},
	}
}

func TestBasicOperations(t *testing.T) {
	for name, newCache := range constructors() {
		t.Run(name, func(t *testing.T) {
			c, err := newCache()
			require.NoError(t, err)
			defer c.Close()

			_, ok := c.Get("a")
			assert.False(t, ok)

			created, err := c.Set("a", "1")
			require.NoError(t, err)
			assert.True(t, created)

			created, err = c.Set("a", "2")
			require.NoError(t, err)
			assert.False(t, created, "second set updates")

			v, ok := c.Get("a")
			assert.True(t, ok)
			assert.Equal(t, "2", v)
			assert.Equal(t, 1, c.Size())
			assert.Equal(t, []string{"a"}, c.Keys())

			deleted, err := c.Delete("a")
			require.NoError(t, err)
			assert.True(t, deleted)
			deleted, err = c.Delete("a")
			require.NoError(t, err)
			assert.False(t, deleted)
			assert.Equal(t, 0, c.Size())
		})
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	for name, newCache := range constructors() {
		t.Run(name, func(t *testing.T) {
			c, err := newCache()
			require.NoError(t, err)

			_, err = c.Set("", "x")
			assert.True(t, errors.IsInvalid(err))
			_, err = c.Delete("")
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestStatistics(t *testing.T) {
	for name, newCache := range constructors() {
		t.Run(name, func(t *testing.T) {
			c, err := newCache()
			require.NoError(t, err)

			_, _ = c.Set("a", "1")
			_, _ = c.Set("b", "2")
			c.Get("a")
			c.Get("missing")
			_, _ = c.Delete("b")

			s := c.Stats().Summary()
			assert.Equal(t, int64(1), s.Hits)
			assert.Equal(t, int64(1), s.Misses)
			assert.Equal(t, int64(2), s.Sets)
			assert.Equal(t, int64(1), s.Deletes)
			assert.Equal(t, int64(1), s.CurrentSize)
			assert.Equal(t, int64(2), s.MaxSize)
			assert.InDelta(t, 0.5, s.HitRatio, 1e-9)
		})
	}
}

func TestClearCallsEvictionCallback(t *testing.T) {
	for name, newCache := range constructors() {
		t.Run(name, func(t *testing.T) {
			evicted := make(map[string]string)
			c, err := newCache(WithEvictionCallback(func(k, v string) { evicted[k] = v }))
			require.NoError(t, err)

			_, _ = c.Set("a", "1")
			_, _ = c.Set("b", "2")
			require.NoError(t, c.Clear())

			assert.Equal(t, map[string]string{"a": "1", "b": "2"}, evicted)
			assert.Equal(t, 0, c.Size())
			assert.Equal(t, int64(0), c.Stats().CurrentSize())
		})
	}
}

func TestConcurrentAccess(t *testing.T) {
	for name, newCache := range constructors() {
		t.Run(name, func(t *testing.T) {
			c, err := newCache()
			require.NoError(t, err)

			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 0; i < 50; i++ {
						key := fmt.Sprintf("k%d-%d", g, i)
						_, _ = c.Set(key, key)
						c.Get(key)
					}
				}(g)
			}
			wg.Wait()

			assert.LessOrEqual(t, c.Size(), 400)
			assert.Equal(t, int64(400), c.Stats().Sets())
			assert.Equal(t, int64(400), c.Stats().Hits()+c.Stats().Misses())
		})
	}
}

func TestLRUEviction(t *testing.T) {
	var evicted []string
	c, err := NewLRU(2, WithEvictionCallback(func(k string, _ int) { evicted = append(evicted, k) }))
	require.NoError(t, err)

	_, _ = c.Set("a", 1)
	_, _ = c.Set("b", 2)
	c.Get("a") // b is now least recently used
	_, _ = c.Set("c", 3)

	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, []string{"c", "a"}, c.Keys())
	assert.Equal(t, int64(1), c.Stats().Evictions())

	_, ok := c.Get("b")
	assert.False(t, ok)
}

func TestLRUCallbackMayReenter(t *testing.T) {
	var c Cache[int]
	c, err := NewLRU(1, WithEvictionCallback(func(k string, _ int) {
		// runs outside the lock
		assert.Equal(t, 1, c.Size())
	}))
	require.NoError(t, err)

	_, _ = c.Set("a", 1)
	_, _ = c.Set("b", 2)
}

func TestNewLRUInvalidSize(t *testing.T) {
	_, err := NewLRU[string](0)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestNoop(t *testing.T) {
	c := NewNoop[string]()
	created, err := c.Set("a", "1")
	require.NoError(t, err)
	assert.False(t, created)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Size())
	assert.Nil(t, c.Stats())
}
