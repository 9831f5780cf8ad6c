package cache

import (
	"github.com/enola-dev/enola-sub007/errors"
)

// Strategy selects the eviction policy.
type Strategy string

const (
	StrategySimple Strategy = "simple"
	StrategyLRU    Strategy = "lru"
)

// Config is the "cache" section of the configuration file.
type Config struct {
	Enabled  bool     `json:"enabled"`
	Strategy Strategy `json:"strategy"`
	// MaxSize bounds LRU caches.
	MaxSize int `json:"max_size"`
}

// DefaultConfig returns an enabled LRU cache of 1024 entries.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Strategy: StrategyLRU,
		MaxSize:  1024,
	}
}

// Validate checks the strategy and its size. A disabled config is always
// valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Strategy {
	case StrategySimple:
		return nil
	case StrategyLRU:
		if c.MaxSize <= 0 {
			return errors.Invalidf(errors.ErrInvalidConfig, "cache", "Validate",
				"max_size must be positive for lru, got %d", c.MaxSize)
		}
		return nil
	}
	return errors.Invalidf(errors.ErrInvalidConfig, "cache", "Validate", "unknown strategy %q", c.Strategy)
}

// NewFromConfig builds the cache config describes, or a no-op cache when it
// is disabled.
func NewFromConfig[V any](config Config, options ...Option[V]) (Cache[V], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !config.Enabled {
		return NewNoop[V](), nil
	}
	if config.Strategy == StrategySimple {
		return NewSimple(options...)
	}
	return NewLRU(config.MaxSize, options...)
}
