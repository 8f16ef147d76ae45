// Package config loads ecotrack settings from ~/.ecotrack/config.yaml, an
// optional project-local .ecotrack/config.yaml overlay and ECOTRACK_*
// environment variables, in increasing order of precedence. CLI flags are
// applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Validation errors returned by Config.Validate.
const (
	ErrInvalidOutputFormat = constError("invalid output format")
	ErrInvalidLogLevel     = constError("invalid log level")
	ErrInvalidLogFormat    = constError("invalid log format")
	ErrInvalidValue        = constError("invalid config value")
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// ConfigFileName is the config file name inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variables read by applyEnvOverrides and ResolveProjectDir.
const (
	EnvHome         = "ECOTRACK_HOME"
	EnvOutputFormat = "ECOTRACK_OUTPUT_FORMAT"
	EnvLogLevel     = "ECOTRACK_LOG_LEVEL"
	EnvLogFormat    = "ECOTRACK_LOG_FORMAT"
	EnvLogFile      = "ECOTRACK_LOG_FILE"
	EnvFactorsFile  = "ECOTRACK_FACTORS_FILE"
	EnvConcurrency  = "ECOTRACK_CONCURRENCY"
	EnvServerAddr   = "ECOTRACK_SERVER_ADDR"
	EnvCacheTTL     = "ECOTRACK_CACHE_TTL_SECONDS"
	EnvProjectDir   = "ECOTRACK_PROJECT_DIR"
)

const defaultServerAddr = ":8080"

// Config is the full ecotrack configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Parser  ParserConfig  `yaml:"parser"  json:"parser"`
	Server  ServerConfig  `yaml:"server"  json:"server"`
}

// OutputConfig controls how parse results are rendered.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision"      json:"precision"`
	Equivalents   bool   `yaml:"equivalents"    json:"equivalents"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// ParserConfig controls the factor table and batch parsing.
type ParserConfig struct {
	// FactorsFile replaces the embedded factor table when set.
	FactorsFile string `yaml:"factors_file,omitempty" json:"factors_file,omitempty"`
	Concurrency int    `yaml:"concurrency"            json:"concurrency"`
	BatchSize   int    `yaml:"batch_size"             json:"batch_size"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string `yaml:"addr"              json:"addr"`
	CacheEnabled    bool   `yaml:"cache_enabled"     json:"cache_enabled"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds" json:"cache_ttl_seconds"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Parser: ParserConfig{
			Concurrency: 4,
			BatchSize:   100,
		},
		Server: ServerConfig{
			Addr:            defaultServerAddr,
			CacheEnabled:    true,
			CacheTTLSeconds: 300,
		},
	}
}

// New returns the defaults overlaid with the user config file, if it exists
// and parses, and then the environment. A broken config file is ignored here;
// use Load to see the error.
func New() *Config {
	cfg := Defaults()
	if path, err := ConfigPath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			overlaid := Defaults()
			if mergeErr := ShallowMergeYAML(overlaid, path); mergeErr == nil {
				cfg = overlaid
			}
		}
	}
	cfg.applyEnvOverrides()
	return cfg
}

// Load returns the defaults overlaid with the file at path and then the
// environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes cfg as YAML to path, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("%w: %q (want table, json or ndjson)", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q (want console or json)", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Output.Precision < 0 {
		return fmt.Errorf("%w: output.precision must not be negative", ErrInvalidValue)
	}
	if c.Parser.Concurrency < 1 {
		return fmt.Errorf("%w: parser.concurrency must be at least 1", ErrInvalidValue)
	}
	if c.Parser.BatchSize < 1 {
		return fmt.Errorf("%w: parser.batch_size must be at least 1", ErrInvalidValue)
	}
	if c.Server.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: server.cache_ttl_seconds must not be negative", ErrInvalidValue)
	}
	return nil
}

// applyEnvOverrides applies ECOTRACK_* variables. Numeric variables that do
// not parse are ignored.
func (c *Config) applyEnvOverrides() {
	setString := func(env string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	setInt := func(env string, dst *int) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(EnvOutputFormat, &c.Output.DefaultFormat)
	setString(EnvLogLevel, &c.Logging.Level)
	setString(EnvLogFormat, &c.Logging.Format)
	setString(EnvLogFile, &c.Logging.File)
	setString(EnvFactorsFile, &c.Parser.FactorsFile)
	setInt(EnvConcurrency, &c.Parser.Concurrency)
	setString(EnvServerAddr, &c.Server.Addr)
	setInt(EnvCacheTTL, &c.Server.CacheTTLSeconds)
}
