// Package appconfig loads the small, optional JSON configuration file
// that controls the application shell's logging. The core boids
// package never logs, and reads a file only in LoadOverrides; logging
// lives in cmd/boids3d and pkg/app.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config is the application shell's own settings, independent of any
// boids.Preset or boids.Overrides.
type Config struct {
	// LogLevel sets the logging level (debug, info, warn, error).
	LogLevel string `json:"logLevel"`
	// LogFormat sets the logging format (json, text).
	LogFormat string `json:"logFormat"`
}

// Default returns the sensible values used whenever no -config flag
// is given.
func Default() Config {
	return Config{LogLevel: "info", LogFormat: "text"}
}

func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logLevel %q must be one of debug, info, warn, error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("logFormat %q must be one of json, text", c.LogFormat)
	}
	return nil
}

// Load reads and schema-validates configFile, compiling the schema,
// validating the raw JSON against it, then unmarshaling into Config.
// An empty configFile returns Default().
func Load(configFile, schemaFile string) (Config, error) {
	if configFile == "" {
		return Default(), nil
	}

	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to compile app config schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read app config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return Config{}, fmt.Errorf("failed to decode app config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return Config{}, fmt.Errorf("app config validation failed: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal app config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
