package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/enola-dev/enola-sub007/datatype"
	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/pipeline"
	"github.com/enola-dev/enola-sub007/pkg/cache"
	"github.com/enola-dev/enola-sub007/store"
)

// Config represents the complete application configuration.
type Config struct {
	Version   string          `json:"version,omitempty"` // semantic version of the file, e.g. "1.0.0"
	Catalog   CatalogConfig   `json:"catalog"`
	Datatypes DatatypesConfig `json:"datatypes"`
	Store     store.Config    `json:"store"`
	Pipeline  pipeline.Config `json:"pipeline"`
	Cache     cache.Config    `json:"cache"`
}

// CatalogConfig locates the kinds catalog.
type CatalogConfig struct {
	// Path of the YAML catalog; empty means no kinds.
	Path string `json:"path,omitempty"`
}

// DatatypesConfig selects the built-in datatype vocabularies.
type DatatypesConfig struct {
	Vocabularies []string `json:"vocabularies,omitempty"`
}

// Repository builds the datatype repository of the enabled vocabularies.
func (d DatatypesConfig) Repository() (*datatype.Repository, error) {
	repo, err := datatype.Builtin(d.Vocabularies...)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Config", "Repository", "build datatypes")
	}
	return repo, nil
}

// SafeConfig provides thread-safe access to configuration
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = Default()
	}
	return &SafeConfig{config: cfg}
}

// Get returns a deep copy of the current configuration
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update replaces the configuration if cfg validates.
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return errors.WrapInvalid(errors.ErrMissingConfig, "SafeConfig", "Update", "nil config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return Default()
	}
	data, err := json.Marshal(c)
	if err != nil {
		copied := *c
		return &copied
	}
	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		copied := *c
		return &copied
	}
	return &clone
}

// Default returns the configuration used when no file is given: every
// datatype vocabulary, the memory store, and an LRU cache.
func Default() *Config {
	return &Config{
		Version:  "1.0.0",
		Store:    store.DefaultConfig(),
		Pipeline: pipeline.DefaultConfig(),
		Cache:    cache.DefaultConfig(),
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Version != "" {
		if _, err := datatype.ParseSemver(c.Version); err != nil {
			return errors.Invalidf(errors.ErrInvalidConfig, "Config", "Validate", "version: %v", err)
		}
	}
	if _, err := c.Datatypes.Repository(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Pipeline.Validate(); err != nil {
		return err
	}
	return c.Cache.Validate()
}

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
}

func NewLoader() *Loader {
	return &Loader{envPrefix: "ENOLA"}
}

// AddLayer adds a configuration file layer. Later layers win.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load starts from Default, merges every layer over it, then applies
// environment overrides such as ENOLA_STORE_BACKEND.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	for _, path := range l.layers {
		raw, err := l.loadRawJSON(path)
		if err != nil {
			return nil, err
		}
		if cfg, err = l.mergeFromMap(cfg, raw); err != nil {
			return nil, errors.WrapInvalid(err, "Loader", "Load", "merge "+path)
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (l *Loader) loadRawJSON(path string) (map[string]any, error) {
	data, err := safeReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := validateJSONDepth(data); err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapInvalid(err, "Loader", "loadRawJSON", "parse "+path)
	}
	return raw, nil
}

// mergeFromMap overrides only the fields present in override.
func (l *Loader) mergeFromMap(base *Config, override map[string]any) (*Config, error) {
	if override == nil {
		return base, nil
	}

	baseJSON, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	var baseMap map[string]any
	if err := json.Unmarshal(baseJSON, &baseMap); err != nil {
		return nil, err
	}

	mergedJSON, err := json.Marshal(deepMergeMaps(baseMap, override))
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(mergedJSON))
	dec.DisallowUnknownFields()
	var merged Config
	if err := dec.Decode(&merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// deepMergeMaps recursively merges two maps, with override taking precedence
func deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		if v == nil {
			continue
		}
		if baseMap, ok := base[k].(map[string]any); ok {
			if overrideMap, ok := v.(map[string]any); ok {
				result[k] = deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}
	return result
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	str := func(name string, dst *string) error {
		key := l.envPrefix + "_" + name
		val := os.Getenv(key)
		if val == "" {
			return nil
		}
		if err := validateEnvVar(key, val); err != nil {
			return err
		}
		*dst = val
		return nil
	}

	overrides := []struct {
		name string
		dst  *string
	}{
		{"CATALOG", &cfg.Catalog.Path},
		{"STORE_BACKEND", &cfg.Store.Backend},
		{"STORE_SQLITE_PATH", &cfg.Store.SQLitePath},
		{"STORE_NATS_URL", &cfg.Store.NATSURL},
		{"STORE_BUCKET", &cfg.Store.Bucket},
		{"PIPELINE_POLICY", &cfg.Pipeline.Policy},
	}
	for _, o := range overrides {
		if err := str(o.name, o.dst); err != nil {
			return err
		}
	}

	var vocabularies, workers string
	if err := str("DATATYPES", &vocabularies); err != nil {
		return err
	}
	if vocabularies != "" {
		cfg.Datatypes.Vocabularies = strings.Split(vocabularies, ",")
	}
	if err := str("PIPELINE_WORKERS", &workers); err != nil {
		return err
	}
	if workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return errors.Invalidf(errors.ErrInvalidConfig, "Loader", "applyEnvOverrides",
				"%s_PIPELINE_WORKERS: %v", l.envPrefix, err)
		}
		cfg.Pipeline.Workers = n
	}
	return nil
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.WrapFatal(err, "Config", "SaveToFile", "marshal config")
	}
	return safeWriteFile(path, data)
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
