package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/lazyseq/errors"
)

// clearEnv unsets every variable the loader reads and restores them when
// the test ends. Unset rather than empty so godotenv may set them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range knownKeys {
		name := envName(key)
		old, ok := os.LookupEnv(name)
		os.Unsetenv(name)
		t.Cleanup(func() {
			if ok {
				os.Setenv(name, old)
			} else {
				os.Unsetenv(name)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestBaseConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{BaseConfig: BaseConfig{Name: "orders", Environment: "production"}}
	cfg.ApplyDefaults()

	if !cfg.Sort.IsStable() || cfg.Sort.Mode != SortStable {
		t.Errorf("expected stable sort by default, got %q", cfg.Sort.Mode)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected info level, got %q", cfg.Logging.Level)
	}
	if cfg.Observability.ServiceName != "orders" {
		t.Errorf("service name should default to config name, got %q", cfg.Observability.ServiceName)
	}
	if cfg.Observability.SampleRate != 1 || cfg.Observability.Interval != 15*time.Second {
		t.Errorf("unexpected observability defaults %+v", cfg.Observability)
	}
	if cfg.Version == "" {
		t.Error("version should default to the build version")
	}

	dev := Config{BaseConfig: BaseConfig{Name: "orders"}}
	dev.ApplyDefaults()
	if dev.Logging.Level != "debug" {
		t.Errorf("development should log at debug, got %q", dev.Logging.Level)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := Config{BaseConfig: BaseConfig{Name: "orders"}}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing name", func(c *Config) { c.Name = "" }, "name"},
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "environment"},
		{"bad sort mode", func(c *Config) { c.Sort.Mode = "random" }, "sort.mode"},
		{"bad endpoint", func(c *Config) { c.Observability.Endpoint = "no port" }, "observability.endpoint"},
		{"bad sample rate", func(c *Config) { c.Observability.SampleRate = 2 }, "observability.sample_rate"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"metrics without service name", func(c *Config) {
			c.Observability.Metrics = true
			c.Observability.ServiceName = ""
		}, "observability.service_name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.CodeOf(err) != errors.ErrCodeInvalidConfig {
				t.Errorf("expected INVALID_CONFIG, got %s", errors.CodeOf(err))
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error mentioning %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "orders.yml", `
name: orders
environment: staging
logging:
  level: warn
  format: json
sort:
  mode: unstable
observability:
  metrics: true
  endpoint: collector:4318
  interval: 30s
`)

	cfg, err := Load("orders", WithConfigFile(path), WithEnvFile(filepath.Join(dir, "missing.env")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "orders" || cfg.Environment != "staging" {
		t.Errorf("unexpected base config %+v", cfg.BaseConfig)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Sort.IsStable() {
		t.Error("expected unstable sort")
	}
	if !cfg.Observability.Metrics || cfg.Observability.Endpoint != "collector:4318" {
		t.Errorf("unexpected observability config %+v", cfg.Observability)
	}
	if cfg.Observability.Interval != 30*time.Second {
		t.Errorf("expected 30s interval, got %v", cfg.Observability.Interval)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "orders.yml", "name: orders\nsort:\n  mode: stable\n")
	envPath := writeFile(t, dir, ".env", "OBSERVABILITY_TRACING=true\n")
	t.Setenv("SORT_MODE", "unstable")
	t.Setenv("LOGGING_LEVEL", "error")

	cfg, err := Load("orders", WithConfigFile(path), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sort.Mode != SortUnstable {
		t.Errorf("env should override file, got %q", cfg.Sort.Mode)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("env should set unknown keys, got %q", cfg.Logging.Level)
	}
	if !cfg.Observability.Tracing {
		t.Error("expected tracing enabled from .env file")
	}
}

func TestLoad_NoFileUsesName(t *testing.T) {
	clearEnv(t)
	fs := &mockFS{files: map[string]bool{}}
	cfg, err := Load("orders", WithFileSystem(fs))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "orders" {
		t.Errorf("expected name from argument, got %q", cfg.Name)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "orders.yml", "name: orders\nsort:\n  mode: sideways\n")

	_, err := Load("orders", WithConfigFile(path))
	if errors.CodeOf(err) != errors.ErrCodeInvalidConfig {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "orders.yml", "name: [unterminated\n")

	var cfg Config
	if err := LoadConfig("orders", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		filepath.Join("config", "orders.yml"): true,
		"config.yml":                          true,
		filepath.Join("config", ".env"):       true,
	}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("orders", LoaderConfig{})
	if files.ConfigFile != filepath.Join("config", "orders.yml") {
		t.Errorf("expected named config file first, got %q", files.ConfigFile)
	}
	if files.EnvFile != filepath.Join("config", ".env") {
		t.Errorf("unexpected env file %q", files.EnvFile)
	}

	explicit := (&Resolver{FileSystem: fs}).ResolveFiles("orders", LoaderConfig{ConfigFile: "x.yml"})
	if explicit.ConfigFile != "x.yml" {
		t.Errorf("explicit path should win, got %q", explicit.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestObservabilityConversions(t *testing.T) {
	cfg := Config{BaseConfig: BaseConfig{Name: "orders", Environment: "staging", Version: "1.2.3"}}
	cfg.ApplyDefaults()
	cfg.Observability.Insecure = true

	mc := cfg.MeterConfig()
	if mc.ServiceName != "orders" || mc.ServiceVersion != "1.2.3" || mc.Environment != "staging" || !mc.Insecure {
		t.Errorf("unexpected meter config %+v", mc)
	}
	tc := cfg.TracerConfig()
	if tc.SampleRate != 1 || tc.Endpoint != "localhost:4318" {
		t.Errorf("unexpected tracer config %+v", tc)
	}
}
