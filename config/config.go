// Package config loads process-wide pipeline defaults from environment
// variables. Resolve the configuration once at startup; the global
// middleware list it produces is an immutable snapshot for the lifetime
// of the process.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/louisbranch/opkit/middleware/logging"
	"github.com/louisbranch/opkit/middleware/tracing"
	"github.com/louisbranch/opkit/pipeline"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Config holds the process-wide pipeline defaults.
type Config struct {
	// Locale selects the validation message locale for definitions that
	// do not declare one.
	Locale string `env:"OPKIT_LOCALE" envDefault:"en-US"`
	// LogMiddleware enables the logging middleware in the global list.
	LogMiddleware bool `env:"OPKIT_LOG_MIDDLEWARE" envDefault:"true"`
	// TracingMiddleware enables the tracing middleware in the global
	// list.
	TracingMiddleware bool `env:"OPKIT_TRACING_MIDDLEWARE" envDefault:"false"`
	// OTelEndpoint is the OTLP trace endpoint URL. Tracing export is
	// disabled when empty.
	OTelEndpoint string `env:"OPKIT_OTEL_ENDPOINT"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GlobalMiddlewares builds the process-wide middleware snapshot in its
// canonical order: logging first, then tracing.
func (c Config) GlobalMiddlewares() []pipeline.Entry {
	var entries []pipeline.Entry
	if c.LogMiddleware {
		entries = append(entries, pipeline.Use(logging.New(), nil))
	}
	if c.TracingMiddleware {
		entries = append(entries, pipeline.Use(tracing.New(), nil))
	}
	return entries
}
