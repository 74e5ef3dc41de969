package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/lazyseq/logger"
)

// FileSystem abstracts the file operations of the loader.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem on the local disk.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds settings and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns the explicit paths of opts, searching the standard
// locations for the ones left empty.
func (r *Resolver) ResolveFiles(name string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(configCandidates(name))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(envCandidates(name))
	}
	return resolved
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// configCandidates lists where a settings file for name may live, most
// specific first.
func configCandidates(name string) []string {
	var paths []string
	for _, dir := range []string{".", "./config", "../config"} {
		paths = append(paths,
			filepath.Join(dir, name+".yml"),
			filepath.Join(dir, name+".yaml"),
		)
	}
	for _, dir := range []string{".", "./config", "../config"} {
		paths = append(paths, filepath.Join(dir, "config.yml"), filepath.Join(dir, "config.yaml"))
	}
	return paths
}

func envCandidates(name string) []string {
	var paths []string
	for _, file := range []string{".env." + name, ".env"} {
		for _, dir := range []string{".", "./config", ".."} {
			paths = append(paths, filepath.Join(dir, file))
		}
	}
	return paths
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads the engine settings for name, applies defaults and validates them.
func Load(name string, opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig(name, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads settings into cfg. The YAML file is read first, then the
// .env file is loaded into the environment, and environment variables
// override file values: LOGGING_LEVEL sets logging.level.
func LoadConfig(name string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(name, lc)
	v := viper.New()

	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", files.ConfigFile, err)
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			logger.Warn("failed to load env file", logger.MergeWithError(
				logger.Fields("file", files.EnvFile), err))
		}
	}
	bindEnv(v, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config for %s: %w", name, err)
	}
	return nil
}

// bindEnv overrides keys already known to v with matching environment
// variables. A variable matches a key when the key, upper-cased with dots
// replaced by underscores, equals the variable name. Empty variables are
// ignored.
func bindEnv(v *viper.Viper, environ []string) {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, val, ok := strings.Cut(kv, "="); ok {
			env[k] = val
		}
	}
	for _, key := range append(v.AllKeys(), knownKeys...) {
		if val, ok := env[envName(key)]; ok && val != "" {
			v.Set(key, val)
		}
	}
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// knownKeys are the Config keys that may be set from the environment even
// when the settings file does not mention them.
var knownKeys = []string{
	"name", "environment", "version", "debug",
	"logging.level", "logging.format", "logging.output", "logging.no_color", "logging.caller",
	"sort.mode",
	"observability.metrics", "observability.tracing", "observability.service_name",
	"observability.endpoint", "observability.insecure", "observability.sample_rate",
	"observability.interval",
}
