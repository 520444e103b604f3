// Package config loads the server configuration from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath   = "REDACT_MCP_CONFIG"
	EnvLogLevel     = "REDACT_MCP_LOG_LEVEL"
	EnvCacheBackend = "REDACT_MCP_CACHE_BACKEND"
	EnvSQLitePath   = "REDACT_MCP_SQLITE_PATH"
)

// Config holds the server configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Redaction RedactionConfig `yaml:"redaction"`
	Cache     CacheConfig     `yaml:"cache"`
	Upload    UploadConfig    `yaml:"upload"`
	Detection DetectionConfig `yaml:"detection"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// RedactionConfig holds redaction defaults.
type RedactionConfig struct {
	DefaultStrategy string `yaml:"default_strategy"`
	DefaultRadius   int    `yaml:"default_radius"` // 0 derives the radius from region sizes
	MaxRadius       int    `yaml:"max_radius"`
}

// CacheConfig configures the photo cache.
type CacheConfig struct {
	BudgetKB      int     `yaml:"budget_kb"`
	Ratio         float64 `yaml:"ratio"`
	CapacityKB    int     `yaml:"capacity_kb"`     // 0 means floor(budget_kb * ratio)
	MaxCapacityKB int     `yaml:"max_capacity_kb"` // largest capacity a refresh may request
	Backend       string  `yaml:"backend"`         // memory or sqlite
	SQLitePath    string  `yaml:"sqlite_path"`
	Workers       int     `yaml:"workers"`
}

// UploadConfig limits accepted uploads.
type UploadConfig struct {
	MaxWidth    int `yaml:"max_width"`
	MaxHeight   int `yaml:"max_height"`
	PNGLimitMB  int `yaml:"png_limit_mb"`
	JPEGLimitMB int `yaml:"jpeg_limit_mb"`
}

// DetectionConfig configures text detection.
type DetectionConfig struct {
	Language string `yaml:"language"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Redaction: RedactionConfig{
			DefaultStrategy: "convolution",
			DefaultRadius:   0,
			MaxRadius:       31,
		},
		Cache: CacheConfig{
			BudgetKB:      1024,
			Ratio:         0.4,
			CapacityKB:    409,
			MaxCapacityKB: 64 * 1024,
			Backend:       "memory",
			SQLitePath:    "redact-cache.db",
			Workers:       4,
		},
		Upload: UploadConfig{
			MaxWidth:    1920,
			MaxHeight:   1080,
			PNGLimitMB:  8,
			JPEGLimitMB: 2,
		},
		Detection: DetectionConfig{
			Language: "eng",
		},
	}
}

// Load reads the configuration and applies environment overrides.
//
// The file is taken from $REDACT_MCP_CONFIG when set, otherwise from
// .config.yaml, then config.yaml in the working directory. If no file exists
// the defaults are used. The returned path is empty in that case.
func Load() (*Config, string, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		for _, candidate := range []string{".config.yaml", "config.yaml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, path, err
		}
		cfg = fileCfg
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFromFile loads a YAML file on top of the defaults, so keys missing from
// the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		c.Cache.SQLitePath = v
	}
}

// CapacityKB returns the knapsack capacity, deriving it from the budget when
// capacity_kb is 0.
func (c *Config) CapacityKB() int {
	if c.Cache.CapacityKB > 0 {
		return c.Cache.CapacityKB
	}
	return int(float64(c.Cache.BudgetKB) * c.Cache.Ratio)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}

	switch strings.ToLower(c.Redaction.DefaultStrategy) {
	case "convolution", "composite", "fill":
	default:
		errs = append(errs, fmt.Errorf("redaction.default_strategy must be convolution, composite or fill, got %q", c.Redaction.DefaultStrategy))
	}
	if c.Redaction.MaxRadius < 1 {
		errs = append(errs, fmt.Errorf("redaction.max_radius must be positive"))
	}
	if c.Redaction.DefaultRadius < 0 || c.Redaction.DefaultRadius > c.Redaction.MaxRadius {
		errs = append(errs, fmt.Errorf("redaction.default_radius must be between 0 and max_radius"))
	}

	if c.Cache.Ratio <= 0 || c.Cache.Ratio > 1 {
		errs = append(errs, fmt.Errorf("cache.ratio must be in (0, 1]"))
	}
	if c.Cache.BudgetKB < 0 || c.Cache.CapacityKB < 0 {
		errs = append(errs, fmt.Errorf("cache.budget_kb and cache.capacity_kb cannot be negative"))
	}
	if c.Cache.MaxCapacityKB < 1 {
		errs = append(errs, fmt.Errorf("cache.max_capacity_kb must be positive"))
	} else if c.CapacityKB() > c.Cache.MaxCapacityKB {
		errs = append(errs, fmt.Errorf("cache capacity %dKB exceeds cache.max_capacity_kb %d", c.CapacityKB(), c.Cache.MaxCapacityKB))
	}
	switch c.Cache.Backend {
	case "memory":
	case "sqlite":
		if c.Cache.SQLitePath == "" {
			errs = append(errs, fmt.Errorf("cache.sqlite_path is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend must be memory or sqlite, got %q", c.Cache.Backend))
	}
	if c.Cache.Workers < 1 {
		errs = append(errs, fmt.Errorf("cache.workers must be positive"))
	}

	if c.Upload.MaxWidth < 1 || c.Upload.MaxHeight < 1 {
		errs = append(errs, fmt.Errorf("upload.max_width and upload.max_height must be positive"))
	}
	if c.Upload.PNGLimitMB < 1 || c.Upload.JPEGLimitMB < 1 {
		errs = append(errs, fmt.Errorf("upload size limits must be positive"))
	}

	if c.Detection.Language == "" {
		errs = append(errs, fmt.Errorf("detection.language cannot be empty"))
	}

	return errors.Join(errs...)
}
