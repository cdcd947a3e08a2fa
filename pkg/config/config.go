// Package config holds the typed configuration consumed by the CLI and the
// pipeline. Every field has a documented default so a zero config is usable.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/queryguard/queryguard/pkg/cache"
	"github.com/queryguard/queryguard/pkg/checks"
	"github.com/queryguard/queryguard/pkg/rules"
	"github.com/queryguard/queryguard/pkg/types"
)

// Config configures the pipeline. All fields are optional.
type Config struct {
	// DefaultLimit is the row limit injected into unbounded SELECT
	// statements. Zero means types.DefaultRowLimit.
	DefaultLimit int `yaml:"default_limit" json:"default_limit"`

	// DisabledChecks lists check kinds to skip (e.g. "best_practices").
	DisabledChecks []string `yaml:"disabled_checks" json:"disabled_checks"`

	// DisabledRules lists rewrite rule kinds to skip
	// (e.g. "rewrite.add-limit").
	DisabledRules []string `yaml:"disabled_rules" json:"disabled_rules"`

	// Cache sizes the pipeline result cache.
	Cache CacheConfig `yaml:"cache" json:"cache"`
}

// CacheConfig sizes the result cache.
type CacheConfig struct {
	// MaxEntries bounds the cache. Zero means cache.DefaultMaxEntries.
	MaxEntries int `yaml:"max_entries" json:"max_entries"`
	// TTLSeconds expires entries. Zero means cache.DefaultTTL.
	TTLSeconds int `yaml:"ttl_seconds" json:"ttl_seconds"`
}

// Default returns the documented defaults: limit 100, all checks and rules
// enabled, cache of 1000 entries for one hour.
func Default() *Config {
	return &Config{
		DefaultLimit: types.DefaultRowLimit,
		Cache: CacheConfig{
			MaxEntries: cache.DefaultMaxEntries,
			TTLSeconds: int(cache.DefaultTTL / time.Second),
		},
	}
}

// LoadFromFile loads configuration from a YAML or JSON file.
// YAML is tried first, then JSON.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", filename)
	}

	var cfg Config
	if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return nil, errors.Wrapf(yamlErr, "failed to parse config file: %s", filename)
		}
	}
	return &cfg, nil
}

// TTL returns the configured cache TTL.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// CheckKinds returns the disabled checks as typed kinds.
func (c *Config) CheckKinds() []checks.Kind {
	kinds := make([]checks.Kind, 0, len(c.DisabledChecks))
	for _, name := range c.DisabledChecks {
		kinds = append(kinds, checks.Kind(name))
	}
	return kinds
}

// RuleKinds returns the disabled rules as typed kinds.
func (c *Config) RuleKinds() []rules.Kind {
	kinds := make([]rules.Kind, 0, len(c.DisabledRules))
	for _, name := range c.DisabledRules {
		kinds = append(kinds, rules.Kind(name))
	}
	return kinds
}
