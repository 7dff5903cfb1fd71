// SPDX-License-Identifier: EPL-2.0

// Package config provides the configuration schema and loader for the
// animalese command.
package config

import "github.com/ik5/animalese/voice"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// LogFormat selects the slog handler.
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// IsValid reports whether f is a recognised log format.
func (f LogFormat) IsValid() bool {
	return f == FormatText || f == FormatJSON
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  LogLevel  `toml:"level" yaml:"level"`
	Format LogFormat `toml:"format" yaml:"format"`
}

// NATSConfig holds clip store settings. The store is only used when
// Enabled is set.
type NATSConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	URL     string `toml:"url" yaml:"url"`
	Bucket  string `toml:"bucket" yaml:"bucket"`
}

// Config is the root configuration structure.
type Config struct {
	Effect voice.Params `toml:"effect" yaml:"effect"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	NATS   NATSConfig   `toml:"nats" yaml:"nats"`
}

// Default returns the configuration used when no file is given. Loaded files
// are decoded on top of it, so omitted keys keep these values.
func Default() *Config {
	return &Config{
		Effect: voice.DefaultParams(),
		Log:    LogConfig{Level: LogInfo, Format: FormatText},
		NATS:   NATSConfig{URL: "nats://127.0.0.1:4222", Bucket: "animalese-clips"},
	}
}
