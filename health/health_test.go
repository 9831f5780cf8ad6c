package health

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	ok := FromError("store", nil, "3 things")
	assert.True(t, ok.IsHealthy())
	assert.True(t, ok.Healthy)
	assert.Equal(t, "3 things", ok.Message)

	transient := FromError("store", errors.WrapTransient(stderrors.New("dial nats://10.0.0.1:4222"), "KV", "Get", "connect"), "")
	assert.True(t, transient.IsDegraded())
	assert.False(t, transient.Healthy)
	assert.NotContains(t, transient.Message, "10.0.0.1")

	invalid := FromError("catalog", errors.WrapInvalid(errors.ErrConfigNotFound, "Catalog", "LoadCatalog", "/etc/enola/kinds.yaml"), "")
	assert.True(t, invalid.IsUnhealthy())
	assert.Contains(t, invalid.Message, "[PATH]")
}

func TestSanitizeErrorMessage(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain failure", "plain failure"},
		{"get https://example.org/x failed", "get [URL] failed"},
		{"open /var/lib/enola/things.db", "open [PATH]"},
		{"connect 192.168.1.10 refused", "connect [IP] refused"},
		{"bad password=hunter2", "bad [REDACTED]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeErrorMessage(tt.in), tt.in)
	}
}

func TestAggregate(t *testing.T) {
	assert.True(t, Aggregate("enola", nil).IsHealthy())

	healthy := NewHealthy("a", "ok")
	degraded := NewDegraded("b", "slow")
	unhealthy := NewUnhealthy("c", "down")

	assert.True(t, Aggregate("enola", []Status{healthy, healthy}).IsHealthy())
	assert.True(t, Aggregate("enola", []Status{healthy, degraded}).IsDegraded())

	agg := Aggregate("enola", []Status{degraded, unhealthy, healthy})
	assert.True(t, agg.IsUnhealthy())
	assert.Len(t, agg.SubStatuses, 3)
}

func TestMonitorRun(t *testing.T) {
	m := NewMonitor()
	m.Run(context.Background(), 50*time.Millisecond, map[string]Check{
		"datatypes": func(context.Context) (string, error) { return "22 datatypes", nil },
		"store": func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", errors.WrapTransient(ctx.Err(), "store", "List", "ping")
		},
	})

	store, ok := m.Get("store")
	require.True(t, ok)
	assert.True(t, store.IsDegraded())

	agg := m.AggregateHealth("enola")
	assert.True(t, agg.IsDegraded())
	require.Len(t, agg.SubStatuses, 2)
	assert.Equal(t, "datatypes", agg.SubStatuses[0].Component)
	assert.Equal(t, "store", agg.SubStatuses[1].Component)
}
