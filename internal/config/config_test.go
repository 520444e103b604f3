package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.CapacityKB() != 409 {
		t.Errorf("default capacity: got %d, want 409", cfg.CapacityKB())
	}
}

func TestCapacityKB_Derived(t *testing.T) {
	cfg := Default()
	cfg.Cache.CapacityKB = 0
	cfg.Cache.BudgetKB = 2048
	cfg.Cache.Ratio = 0.25

	if got := cfg.CapacityKB(); got != 512 {
		t.Errorf("got %d, want 512", got)
	}
}

func TestLoadFromFile_MergesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", `
redaction:
  default_strategy: fill
cache:
  backend: sqlite
  sqlite_path: /tmp/cache.db
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Redaction.DefaultStrategy != "fill" {
		t.Errorf("strategy: got %s, want fill", cfg.Redaction.DefaultStrategy)
	}
	if cfg.Redaction.MaxRadius != 31 {
		t.Errorf("max radius should keep its default, got %d", cfg.Redaction.MaxRadius)
	}
	if cfg.Cache.Backend != "sqlite" || cfg.Cache.SQLitePath != "/tmp/cache.db" {
		t.Errorf("cache: got %+v", cfg.Cache)
	}
	if cfg.Upload.MaxWidth != 1920 {
		t.Errorf("upload defaults lost: %+v", cfg.Upload)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}

	bad := writeConfig(t, t.TempDir(), "bad.yaml", "redaction: [not, a, map")
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_EnvPathAndOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "custom.yaml", "log:\n  level: warn\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvCacheBackend, "sqlite")
	t.Setenv(EnvSQLitePath, "/var/tmp/x.db")

	cfg, gotPath, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if gotPath != path {
		t.Errorf("path: got %s, want %s", gotPath, path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("env should override log level, got %s", cfg.Log.Level)
	}
	if cfg.Cache.Backend != "sqlite" || cfg.Cache.SQLitePath != "/var/tmp/x.db" {
		t.Errorf("cache overrides: got %+v", cfg.Cache)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigPath, "")

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path != "" {
		t.Errorf("path: got %q, want empty", path)
	}
	if cfg.Redaction.DefaultStrategy != "convolution" {
		t.Errorf("expected defaults, got %+v", cfg.Redaction)
	}
}

func TestLoad_DotConfigPreferred(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConfigPath, "")
	writeConfig(t, dir, ".config.yaml", "detection:\n  language: deu\n")
	writeConfig(t, dir, "config.yaml", "detection:\n  language: fra\n")

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path != ".config.yaml" || cfg.Detection.Language != "deu" {
		t.Errorf("got path %q language %q, want .config.yaml deu", path, cfg.Detection.Language)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad strategy", func(c *Config) { c.Redaction.DefaultStrategy = "pixelate" }, "default_strategy"},
		{"zero max radius", func(c *Config) { c.Redaction.MaxRadius = 0 }, "max_radius"},
		{"default radius above max", func(c *Config) { c.Redaction.DefaultRadius = 40 }, "default_radius"},
		{"ratio zero", func(c *Config) { c.Cache.Ratio = 0 }, "cache.ratio"},
		{"ratio above one", func(c *Config) { c.Cache.Ratio = 1.5 }, "cache.ratio"},
		{"bad backend", func(c *Config) { c.Cache.Backend = "redis" }, "cache.backend"},
		{"sqlite without path", func(c *Config) { c.Cache.Backend = "sqlite"; c.Cache.SQLitePath = "" }, "sqlite_path"},
		{"zero max capacity", func(c *Config) { c.Cache.MaxCapacityKB = 0 }, "max_capacity_kb"},
		{"capacity above max", func(c *Config) { c.Cache.CapacityKB = 100_000 }, "max_capacity_kb"},
		{"derived capacity above max", func(c *Config) { c.Cache.CapacityKB = 0; c.Cache.BudgetKB = 1 << 30 }, "max_capacity_kb"},
		{"zero workers", func(c *Config) { c.Cache.Workers = 0 }, "cache.workers"},
		{"zero width", func(c *Config) { c.Upload.MaxWidth = 0 }, "max_width"},
		{"zero png limit", func(c *Config) { c.Upload.PNGLimitMB = 0 }, "size limits"},
		{"no language", func(c *Config) { c.Detection.Language = "" }, "detection.language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
