package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Check probes one component. It returns a message for the healthy case.
type Check func(ctx context.Context) (string, error)

// Monitor tracks health of multiple components in a thread-safe manner
type Monitor struct {
	mu       sync.RWMutex
	statuses map[string]Status
}

func NewMonitor() *Monitor {
	return &Monitor{statuses: make(map[string]Status)}
}

// Update records the status of a named component.
func (m *Monitor) Update(name string, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status.Component = name
	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now()
	}
	m.statuses[name] = status
}

func (m *Monitor) Get(name string) (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	status, exists := m.statuses[name]
	return status, exists
}

// Run executes checks concurrently, each bounded by timeout, and records
// their outcome.
func (m *Monitor) Run(ctx context.Context, timeout time.Duration, checks map[string]Check) {
	var g errgroup.Group
	for name, check := range checks {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			started := time.Now()
			msg, err := check(cctx)
			status := FromError(name, err, msg)
			status.Duration = time.Since(started)
			m.Update(name, status)
			return nil
		})
	}
	_ = g.Wait()
}

// AggregateHealth aggregates every recorded status, ordered by component
// name.
func (m *Monitor) AggregateHealth(systemName string) Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	subStatuses := make([]Status, 0, len(m.statuses))
	for _, status := range m.statuses {
		subStatuses = append(subStatuses, status)
	}
	sort.Slice(subStatuses, func(i, j int) bool { return subStatuses[i].Component < subStatuses[j].Component })
	return Aggregate(systemName, subStatuses)
}
