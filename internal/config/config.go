// Package config holds the server settings.
//
// Settings come from three layers, later ones winning:
//
//  1. built-in defaults (Default)
//  2. a TOML file named by IMAGE_MCP_CONFIG
//  3. the environment variables IMAGE_MCP_LOG_LEVEL, IMAGE_MCP_MAX_PIXELS
//     and IMAGE_MCP_WORKERS
//
// A config file looks like:
//
//	log_level = "debug"
//	max_pixels = 4194304
//	workers = 4
//
//	[vectorize]
//	opaque = true
//	keep_every_point = false
//
// Unknown keys in the file are an error so typos do not pass silently.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables read by Load.
const (
	EnvConfigFile = "IMAGE_MCP_CONFIG"
	EnvLogLevel   = "IMAGE_MCP_LOG_LEVEL"
	EnvMaxPixels  = "IMAGE_MCP_MAX_PIXELS"
	EnvWorkers    = "IMAGE_MCP_WORKERS"
)

// DefaultMaxPixels is the largest image accepted by default (4096x4096).
const DefaultMaxPixels = 4096 * 4096

// Log levels. Any other LogLevel value is read as LevelInfo.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
)

// Config is the complete server configuration.
type Config struct {
	// LogLevel is "debug" for verbose logging. Anything else, including
	// "warn" or "error", is treated as "info".
	LogLevel string `toml:"log_level"`

	// MaxPixels rejects images with more pixels than this. Zero disables
	// the limit.
	MaxPixels int `toml:"max_pixels"`

	// Workers bounds the goroutines tracing regions of one image. Zero
	// means one per CPU.
	Workers int `toml:"workers"`

	// Vectorize holds defaults for tool arguments the caller omits.
	Vectorize VectorizeConfig `toml:"vectorize"`
}

// VectorizeConfig holds the default tracing options.
type VectorizeConfig struct {
	Opaque         bool `toml:"opaque"`
	KeepEveryPoint bool `toml:"keep_every_point"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  LevelInfo,
		MaxPixels: DefaultMaxPixels,
	}
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == LevelDebug
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	var errs []error
	if c.MaxPixels < 0 {
		errs = append(errs, fmt.Errorf("max_pixels must not be negative, got %d", c.MaxPixels))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// Load builds the configuration from the process environment.
func Load() (Config, error) {
	return LoadWith(os.Getenv)
}

// LoadWith builds the configuration reading variables through getenv.
func LoadWith(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv(EnvConfigFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = normalizeLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Parse decodes a TOML document on top of the defaults. Environment
// variables are not consulted.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = normalizeLevel(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// normalizeLevel maps a configured level onto LevelDebug or LevelInfo.
func normalizeLevel(level string) string {
	if strings.ToLower(strings.TrimSpace(level)) == LevelDebug {
		return LevelDebug
	}
	return LevelInfo
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvMaxPixels); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxPixels, err)
		}
		cfg.MaxPixels = n
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	return nil
}
