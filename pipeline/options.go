package pipeline

import (
	"log/slog"
	"runtime"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/metric"
)

// Policy decides what a failed item does to the rest of a run.
type Policy int

const (
	// SkipAndContinue records the failure and converts the other items.
	SkipAndContinue Policy = iota
	// AbortOnFirst cancels the run at the first failure.
	AbortOnFirst
)

func (p Policy) String() string {
	if p == AbortOnFirst {
		return "abort"
	}
	return "skip"
}

// ParsePolicy accepts "skip" and "abort".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "skip", "":
		return SkipAndContinue, nil
	case "abort":
		return AbortOnFirst, nil
	}
	return 0, errors.Invalidf(errors.ErrInvalidConfig, "pipeline", "ParsePolicy", "unknown policy %q", s)
}

// Config is the "pipeline" section of the configuration file.
type Config struct {
	Workers   int    `json:"workers"`
	QueueSize int    `json:"queue_size"`
	Policy    string `json:"policy"`
}

// DefaultConfig uses one worker per CPU and skips failed items.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU(), QueueSize: 256, Policy: "skip"}
}

func (c Config) Validate() error {
	if c.Workers < 0 || c.QueueSize < 0 {
		return errors.Invalidf(errors.ErrInvalidConfig, "pipeline", "Validate",
			"workers (%d) and queue_size (%d) must not be negative", c.Workers, c.QueueSize)
	}
	_, err := ParsePolicy(c.Policy)
	return err
}

// Options turns c into run options.
func (c Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	policy, _ := ParsePolicy(c.Policy)
	return []Option{WithWorkers(c.Workers), WithQueueSize(c.QueueSize), WithPolicy(policy)}, nil
}

type settings struct {
	workers   int
	queueSize int
	policy    Policy
	direction string
	registry  *metric.MetricsRegistry
	logger    *slog.Logger
}

// Option configures a Batch or an Ingester.
type Option func(*settings)

// WithWorkers bounds concurrency. Zero or less means one per CPU.
func WithWorkers(n int) Option { return func(s *settings) { s.workers = n } }

// WithQueueSize sets the Ingester's queue length.
func WithQueueSize(n int) Option { return func(s *settings) { s.queueSize = n } }

func WithPolicy(p Policy) Option { return func(s *settings) { s.policy = p } }

// WithDirection labels conversion metrics; the default is decode, meaning
// into Things.
func WithDirection(d string) Option { return func(s *settings) { s.direction = d } }

// WithMetrics records conversions and item outcomes in registry's core
// metrics. An Ingester also exports its worker pool.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(s *settings) { s.registry = registry }
}

func WithLogger(logger *slog.Logger) Option { return func(s *settings) { s.logger = logger } }

func newSettings(opts []Option) settings {
	s := settings{direction: metric.DirectionDecode}
	for _, opt := range opts {
		opt(&s)
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	if s.queueSize <= 0 {
		s.queueSize = 256
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s settings) metrics() *metric.Metrics {
	return s.registry.CoreMetrics()
}
