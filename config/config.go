// Package config loads process configuration from the environment and
// builds the shared logger.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the server configuration. Flags may override Port.
type Config struct {
	Port            int           `env:"PAYROLL_PORT" envDefault:"8080"`
	LogLevel        string        `env:"PAYROLL_LOG_LEVEL" envDefault:"info"`
	AllowedOrigins  []string      `env:"PAYROLL_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`
	ScenarioFile    string        `env:"PAYROLL_SCENARIO_FILE"`
	ShutdownTimeout time.Duration `env:"PAYROLL_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config: PAYROLL_PORT out of range: %d", cfg.Port)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseLevel maps a level name (debug, info, warn, error) to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return lvl, fmt.Errorf("config: log level %q: %w", name, err)
	}
	return lvl, nil
}

// NewLogger builds a production JSON logger at the given level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
