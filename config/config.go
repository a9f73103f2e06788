// Package config holds the configuration of transliterators.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/schuko/tracing"
)

// ErrInvalidConfig is returned for configurations failing validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// TraceKeys lists the trace keys of all packages of this module.
var TraceKeys = []string{
	"translit",
	"translit.trie",
	"translit.rules",
	"translit.engine",
	"translit.scheme",
	"translit.custom",
}

// Config is the configuration of transliterators.
type Config struct {
	// StopSymbol ends the current composition. Typed twice, it is output.
	StopSymbol string `toml:"stop_symbol"`
	// EscapeSymbol starts and ends a run of literal input.
	EscapeSymbol string `toml:"escape_symbol"`
	// LogLevel is one of "error", "info" or "debug".
	LogLevel string `toml:"log_level"`
	// MappingDir is the sub-directory holding scheme, script and rule files.
	MappingDir string `toml:"mapping_dir"`
	// CustomDir is the sub-directory holding custom mappings.
	CustomDir string `toml:"custom_dir"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		StopSymbol:   `\`,
		EscapeSymbol: "`",
		LogLevel:     "error",
		MappingDir:   "Mapping",
		CustomDir:    "Custom",
	}
}

// Load decodes a TOML configuration from r. Settings missing from r keep
// their defaults.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides.
// Variables are prefixed with TRANSLIT_.
func (c *Config) ApplyEnvOverrides() {
	if v, ok := os.LookupEnv("TRANSLIT_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv("TRANSLIT_STOP_SYMBOL"); ok {
		c.StopSymbol = v
	}
	if v, ok := os.LookupEnv("TRANSLIT_ESCAPE_SYMBOL"); ok {
		c.EscapeSymbol = v
	}
}

// Validate checks c for consistency.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.StopSymbol) != 1 {
		return fmt.Errorf("%w: stop symbol %q must be a single character", ErrInvalidConfig, c.StopSymbol)
	}
	if c.EscapeSymbol != "" && utf8.RuneCountInString(c.EscapeSymbol) != 1 {
		return fmt.Errorf("%w: escape symbol %q must be a single character", ErrInvalidConfig, c.EscapeSymbol)
	}
	if c.EscapeSymbol == c.StopSymbol {
		return fmt.Errorf("%w: stop and escape symbol must differ", ErrInvalidConfig)
	}
	if _, ok := traceLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Stop returns the stop symbol.
func (c *Config) Stop() rune {
	r, _ := utf8.DecodeRuneInString(c.StopSymbol)
	return r
}

// Escape returns the escape symbol, or 0 if escaping is disabled.
func (c *Config) Escape() rune {
	if c.EscapeSymbol == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.EscapeSymbol)
	return r
}

// ApplyLogLevel sets the trace level of all trace keys of this module.
func (c *Config) ApplyLogLevel() {
	level, ok := traceLevel(c.LogLevel)
	if !ok {
		level = tracing.LevelError
	}
	for _, key := range TraceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

func traceLevel(name string) (tracing.TraceLevel, bool) {
	switch strings.ToLower(name) {
	case "error":
		return tracing.LevelError, true
	case "info":
		return tracing.LevelInfo, true
	case "debug":
		return tracing.LevelDebug, true
	}
	return tracing.LevelError, false
}
