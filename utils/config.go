package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Every value has a compiled
// default; a config file only needs to name what it overrides.
type Config struct {
	Logging   LoggingConfig             `yaml:"logging"`
	Databases map[string]DatabaseConfig `yaml:"databases"`
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DatabaseConfig holds per-database tuning overrides. Nil fields keep the
// compiled default. The e-value cutoffs in particular are tuning knobs, not
// hard constants: the reference defaults compensate for per-protein
// adjustments the engine does not model.
type DatabaseConfig struct {
	EvalueCutoff     *float64 `yaml:"evalue_cutoff"`
	OverlapThreshold *float64 `yaml:"overlap_threshold"`
	MinScore         *float64 `yaml:"min_score"`
	StdDevMultiplier *float64 `yaml:"stddev_multiplier"`
}

// DatabaseSettings is the resolved per-database tuning used by a run.
type DatabaseSettings struct {
	EvalueCutoff     float64
	OverlapThreshold float64
	MinScore         float64
	StdDevMultiplier float64
}

// defaultSettings carries the reference defaults per database key.
var defaultSettings = map[string]DatabaseSettings{
	"superfamily": {EvalueCutoff: 1e-4, OverlapThreshold: 0.35},
	"pfam":        {OverlapThreshold: 0.50},
	"pirsf":       {StdDevMultiplier: 3.5},
	"cath":        {EvalueCutoff: 1e-4, MinScore: 10, OverlapThreshold: 0.20},
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Databases: map[string]DatabaseConfig{},
	}
}

// LoadConfig reads a yaml config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Database resolves the settings for one database key, applying any file
// overrides on top of the compiled defaults.
func (c *Config) Database(key string) DatabaseSettings {
	settings := defaultSettings[key]
	override, ok := c.Databases[key]
	if !ok {
		return settings
	}
	if override.EvalueCutoff != nil {
		settings.EvalueCutoff = *override.EvalueCutoff
	}
	if override.OverlapThreshold != nil {
		settings.OverlapThreshold = *override.OverlapThreshold
	}
	if override.MinScore != nil {
		settings.MinScore = *override.MinScore
	}
	if override.StdDevMultiplier != nil {
		settings.StdDevMultiplier = *override.StdDevMultiplier
	}
	return settings
}
