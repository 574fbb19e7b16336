// Package config loads the settings shared by the CLI, the HTTP server and
// the MCP server: defaults, then an optional YAML file, then MINIMAX_*
// environment variables. Command-line flags are applied last by the caller.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/minimaxviz/internal/logging"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/samples"
)

// EnvPrefix is prepended to the upper-cased key of every setting.
const EnvPrefix = "MINIMAX_"

// Config holds the application settings.
type Config struct {
	Algorithm        string        `yaml:"algorithm" mapstructure:"algorithm"`
	Graph            string        `yaml:"graph" mapstructure:"graph"`
	GraphsDir        string        `yaml:"graphs_dir" mapstructure:"graphs_dir"`
	LogLevel         string        `yaml:"log_level" mapstructure:"log_level"`
	LogFormat        string        `yaml:"log_format" mapstructure:"log_format"`
	Addr             string        `yaml:"addr" mapstructure:"addr"`
	AutoplayInterval time.Duration `yaml:"autoplay_interval" mapstructure:"autoplay_interval"`
}

var keys = []string{
	"algorithm", "graph", "graphs_dir",
	"log_level", "log_format", "addr", "autoplay_interval",
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Algorithm:        string(domain.AlgorithmRegular),
		Graph:            samples.Default,
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":8080",
		AutoplayInterval: 500 * time.Millisecond,
	}
}

// Load reads path (optional) and the process environment.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	for _, key := range keys {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(key)); ok {
			raw[key] = v
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	if _, err := domain.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (expected text or json)", c.LogFormat)
	}
	if c.AutoplayInterval <= 0 {
		return fmt.Errorf("autoplay_interval must be positive, got %s", c.AutoplayInterval)
	}
	return nil
}

// Logger builds the application logger described by the settings.
func (c Config) Logger() *slog.Logger {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if c.LogFormat == "json" {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}
