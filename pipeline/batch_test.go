package pipeline

import (
	"context"
	stderrors "errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/metric"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/enola-dev/enola-sub007/vocabulary"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://example.org/item/"

// named builds a Thing from a name; names starting with "bad" fail.
func named(_ context.Context, name string) (thing.Thing, error) {
	if strings.HasPrefix(name, "bad") {
		return thing.Thing{}, errors.Invalidf(errors.ErrMalformedValue, "test", "named", "cannot convert %q", name)
	}
	return thing.New(base+name, map[string]thing.Value{vocabulary.SchemaName: thing.String(name)})
}

func iris(things []thing.Thing) []string {
	out := make([]string, len(things))
	for i, t := range things {
		out[i] = t.IRI()
	}
	return out
}

func TestBatchKeepsInputOrder(t *testing.T) {
	inputs := []string{"e", "d", "c", "b", "a", "f", "g", "h"}
	b := NewBatch("names", named, WithWorkers(3))

	report, err := b.Run(context.Background(), inputs)
	require.NoError(t, err)
	assert.Empty(t, report.Failures)

	want := make([]string, len(inputs))
	for i, in := range inputs {
		want[i] = base + in
	}
	assert.Equal(t, want, iris(report.Things))
}

func TestBatchSkipAndContinue(t *testing.T) {
	b := NewBatch("names", named, WithWorkers(2))

	report, err := b.Run(context.Background(), []string{"a", "bad1", "b", "bad2", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{base + "a", base + "b", base + "c"}, iris(report.Things))

	require.Len(t, report.Failures, 2)
	assert.Equal(t, 1, report.Failures[0].Index)
	assert.Equal(t, 3, report.Failures[1].Index)
	assert.ErrorIs(t, report.Failures[0], errors.ErrMalformedValue)
	assert.Contains(t, report.Failures[1].Error(), "item 3")
}

func TestBatchAbortOnFirst(t *testing.T) {
	b := NewBatch("names", named, WithWorkers(1), WithPolicy(AbortOnFirst))

	report, err := b.Run(context.Background(), []string{"a", "bad", "b", "c"})
	require.Error(t, err)

	var f Failure
	require.True(t, stderrors.As(err, &f))
	assert.Equal(t, 1, f.Index)
	assert.True(t, errors.IsInvalid(err))
	assert.Equal(t, []string{base + "a"}, iris(report.Things))
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	b := NewBatch("names", func(ctx context.Context, name string) (thing.Thing, error) {
		calls.Add(1)
		return named(ctx, name)
	})
	_, err := b.Run(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestBatchEmpty(t *testing.T) {
	report, err := NewBatch("names", named).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Things)
	assert.Empty(t, report.Failures)
}

func TestBatchMetrics(t *testing.T) {
	reg := metric.NewMetricsRegistry()
	b := NewBatch("names", named, WithMetrics(reg), WithDirection(metric.DirectionEncode))

	_, err := b.Run(context.Background(), []string{"a", "b", "bad"})
	require.NoError(t, err)

	m := reg.CoreMetrics()
	assert.Equal(t, 2.0, promtest.ToFloat64(m.BatchItems.WithLabelValues("names", "ok")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.BatchItems.WithLabelValues("names", "failed")))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.ConversionsTotal.WithLabelValues("names", metric.DirectionEncode, metric.StatusOK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.ConversionsTotal.WithLabelValues("names", metric.DirectionEncode, metric.StatusError)))
}

func TestConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, "skip", c.Policy)

	c.Policy = "abort"
	opts, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, AbortOnFirst, newSettings(opts).policy)

	c.Policy = "retry"
	assert.ErrorIs(t, c.Validate(), errors.ErrInvalidConfig)

	c = Config{Workers: -1}
	assert.ErrorIs(t, c.Validate(), errors.ErrInvalidConfig)
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{SkipAndContinue, AbortOnFirst} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}
