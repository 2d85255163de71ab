// Package config loads ripple.json configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"ripple/internal/walker"
)

// Config represents the complete Ripple configuration.
type Config struct {
	Extensions   []string      `json:"extensions" mapstructure:"extensions"`
	SkipDirs     []string      `json:"skipDirs" mapstructure:"skipDirs"`
	MaxWorkers   int           `json:"maxWorkers" mapstructure:"maxWorkers"`
	FailOnUnused bool          `json:"failOnUnused" mapstructure:"failOnUnused"`
	History      HistoryConfig `json:"history" mapstructure:"history"`
	Logging      LoggingConfig `json:"logging" mapstructure:"logging"`
}

// HistoryConfig controls the scan-run history store.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Dir     string `json:"dir" mapstructure:"dir"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Extensions:   append([]string(nil), walker.DefaultExtensions...),
		SkipDirs:     append([]string(nil), walker.DefaultSkipDirs...),
		MaxWorkers:   0, // derived from available parallelism
		FailOnUnused: false,
		History: HistoryConfig{
			Enabled: true,
			Dir:     ".ripple",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// knownKeys are the recognized ripple.json keys in viper's lowercase
// dotted form.
var knownKeys = map[string]bool{
	"extensions":      true,
	"skipdirs":        true,
	"maxworkers":      true,
	"failonunused":    true,
	"history.enabled": true,
	"history.dir":     true,
	"logging.format":  true,
	"logging.level":   true,
}

// LoadConfig loads ripple.json from the given directory, falling back
// to defaults when absent. Unrecognized keys are ignored and returned
// so callers can surface them as warnings.
func LoadConfig(dir string) (*Config, []string, error) {
	v := viper.New()
	v.SetConfigName("ripple")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read ripple.json: %w", err)
	}

	var unknown []string
	for _, key := range v.AllKeys() {
		if !knownKeys[strings.ToLower(key)] {
			unknown = append(unknown, key)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse ripple.json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, unknown, nil
}

// Save writes the configuration to ripple.json in the given directory.
func (c *Config) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "ripple.json"), data, 0644)
}

// Validate checks the configuration for fatal problems.
func (c *Config) Validate() error {
	if c.MaxWorkers < 0 {
		return &ConfigError{Field: "maxWorkers", Message: "must not be negative"}
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return &ConfigError{Field: "extensions", Message: fmt.Sprintf("extension %q must start with a dot", ext)}
		}
	}
	switch c.Logging.Format {
	case "", "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
