// Package config loads framework settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/store"
)

// Config holds settings shared by the browser runtime and statectl.
type Config struct {
	// LogLevel is a console level name or its index 0-5.
	LogLevel string `env:"NOJS_LOG_LEVEL" envDefault:"info"`
	// StateDB is the SQLite file used by native persistence.
	StateDB string `env:"NOJS_STATE_DB" envDefault:"nojs-state.db"`
	// Persist enables store persistence.
	Persist bool `env:"NOJS_PERSIST" envDefault:"false"`
	// StoreName prefixes store events in logs.
	StoreName string `env:"NOJS_STORE_NAME" envDefault:"appstate"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment, applies platform overrides and validates
// the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyPlatform(&cfg)
	if _, err := console.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("NOJS_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Level returns the parsed log level, INFO if it is invalid.
func (c Config) Level() console.Level {
	lvl, err := console.ParseLevel(c.LogLevel)
	if err != nil {
		return console.LevelInfo
	}
	return lvl
}

// Logger returns a platform logger at the configured level.
func (c Config) Logger() *console.Logger {
	return console.New(c.Level())
}

// StoreOptions returns the store options for c without storage; callers
// add WithStorage when Persist is set.
func (c Config) StoreOptions(log *console.Logger) []store.Option {
	return []store.Option{store.WithName(c.StoreName), store.WithLogger(log)}
}
