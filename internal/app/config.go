package app

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/skymodel/internal/document"
)

// Valid logging settings.
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"text", "json"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ModelPath is a model file, a directory of models for Check, or an
	// s3://bucket/key location.
	ModelPath string

	LogLevel  string
	LogFormat string
	S3        document.S3Config

	// Overrides are "path=value" assignments applied after loading.
	Overrides []string
	// Metrics prints the load metrics after each command.
	Metrics bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if !contains(LogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level '%s': must be one of %s", cfg.LogLevel, strings.Join(LogLevels, ", "))
	}
	if !contains(LogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format '%s': must be one of %s", cfg.LogFormat, strings.Join(LogFormats, ", "))
	}
	for _, o := range cfg.Overrides {
		if _, _, err := splitOverride(o); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
