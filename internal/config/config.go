// Package config loads wordcount settings.
//
// Settings are layered: defaults, then an optional YAML file, then environment
// variables prefixed with WORDCOUNT_. Command-line flags are applied last by the
// caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"harshagw/wordcount/internal/source"
)

const DefaultEnvPrefix = "WORDCOUNT"

// Config holds one run's settings.
type Config struct {
	// Input is the text file to count.
	Input string `yaml:"input"`
	// Output is the HTML file to write.
	Output string `yaml:"output"`
	// Reader is "buffered" or "mmap".
	Reader string `yaml:"reader"`
	// Compress writes the output as a snappy framed stream.
	Compress bool `yaml:"compress"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level"`
	// Format: console, json
	Format      string   `yaml:"format"`
	OutputPaths []string `yaml:"output_paths"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Reader: string(source.KindBuffered),
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			OutputPaths: []string{"stderr"},
		},
	}
}

// Loader builds a Config from its layers.
type Loader struct {
	configPath string
	envPrefix  string
	lookupEnv  func(string) (string, bool)
}

func NewLoader() *Loader {
	return &Loader{
		envPrefix: DefaultEnvPrefix,
		lookupEnv: os.LookupEnv,
	}
}

// WithConfigPath sets the YAML file to read. An empty path skips the file layer.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithLookupEnv replaces os.LookupEnv.
func (l *Loader) WithLookupEnv(fn func(string) (string, bool)) *Loader {
	l.lookupEnv = fn
	return l
}

// Load applies every layer and validates the result.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty document leaves the defaults alone
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", l.configPath, err)
	}
	return nil
}

func (l *Loader) env(name string) (string, bool) {
	return l.lookupEnv(l.envPrefix + "_" + name)
}

func (l *Loader) loadFromEnv(cfg *Config) error {
	if v, ok := l.env("INPUT"); ok {
		cfg.Input = v
	}
	if v, ok := l.env("OUTPUT"); ok {
		cfg.Output = v
	}
	if v, ok := l.env("READER"); ok {
		cfg.Reader = v
	}
	if v, ok := l.env("COMPRESS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s_COMPRESS %q: %w", l.envPrefix, v, err)
		}
		cfg.Compress = b
	}
	if v, ok := l.env("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := l.env("LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := l.env("LOG_OUTPUT_PATHS"); ok {
		cfg.Log.OutputPaths = strings.Split(v, ",")
	}
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := source.ParseKind(c.Reader); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json", "":
	default:
		return fmt.Errorf("unknown log format: %q", c.Log.Format)
	}
	return nil
}

// ReaderKind returns the parsed reader kind. Call Validate first.
func (c *Config) ReaderKind() source.Kind {
	kind, _ := source.ParseKind(c.Reader)
	return kind
}
