// Package config handles configuration loading for smebench.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SMEBENCH_BENCHMARK_SEED.
const EnvPrefix = "SMEBENCH"

// Config represents the complete application configuration.
type Config struct {
	Benchmark BenchmarkConfig `mapstructure:"benchmark" yaml:"benchmark" json:"benchmark"`
	API       APIConfig       `mapstructure:"api"       yaml:"api" json:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging" json:"logging"`

	// path is the file the config was read from, empty when only defaults
	// and environment were used.
	path string
}

// BenchmarkConfig holds benchmark engine settings.
type BenchmarkConfig struct {
	Seed                        int64  `mapstructure:"seed"                          yaml:"seed" json:"seed"`
	CacheTTL                    int    `mapstructure:"cache_ttl"                     yaml:"cache_ttl" json:"cache_ttl"`                 // seconds, 0 = never expire
	CacheMaxEntries             int    `mapstructure:"cache_max_entries"             yaml:"cache_max_entries" json:"cache_max_entries"` // 0 = unbounded
	EnforceMonotonicPercentiles bool   `mapstructure:"enforce_monotonic_percentiles" yaml:"enforce_monotonic_percentiles" json:"enforce_monotonic_percentiles"`
	DefaultFrequency            string `mapstructure:"default_frequency"             yaml:"default_frequency" json:"default_frequency"` // "monthly" or "quarterly"
	DefaultWindowMonths         int    `mapstructure:"default_window_months"         yaml:"default_window_months" json:"default_window_months"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host              string   `mapstructure:"host"                yaml:"host" json:"host"`
	Port              int      `mapstructure:"port"                yaml:"port" json:"port"`
	CORSOrigins       []string `mapstructure:"cors_origins"        yaml:"cors_origins" json:"cors_origins"`
	RequestTimeoutSec int      `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec" json:"request_timeout_sec"`
	RateLimitRPS      int      `mapstructure:"rate_limit_rps"      yaml:"rate_limit_rps" json:"rate_limit_rps"` // 0 disables
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level" json:"level"`   // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format" json:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.smebench/config.yaml (home directory)
//  3. /etc/smebench/config.yaml (system)
//
// Environment variables override config file values.
// Format: SMEBENCH_<SECTION>_<KEY>, e.g., SMEBENCH_BENCHMARK_SEED
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".smebench"))
	v.AddConfigPath("/etc/smebench")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.path = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Benchmark defaults
	v.SetDefault("benchmark.seed", 42)
	v.SetDefault("benchmark.cache_ttl", 0)
	v.SetDefault("benchmark.cache_max_entries", 0)
	v.SetDefault("benchmark.enforce_monotonic_percentiles", false)
	v.SetDefault("benchmark.default_frequency", "monthly")
	v.SetDefault("benchmark.default_window_months", 12)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("api.request_timeout_sec", 30)
	v.SetDefault("api.rate_limit_rps", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// ValidationError lists every invalid setting found by Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string
	if c.Benchmark.CacheTTL < 0 {
		problems = append(problems, "benchmark.cache_ttl must be >= 0")
	}
	if c.Benchmark.CacheMaxEntries < 0 {
		problems = append(problems, "benchmark.cache_max_entries must be >= 0")
	}
	switch strings.ToLower(c.Benchmark.DefaultFrequency) {
	case "monthly", "quarterly":
	default:
		problems = append(problems, fmt.Sprintf("benchmark.default_frequency %q must be monthly or quarterly", c.Benchmark.DefaultFrequency))
	}
	if c.Benchmark.DefaultWindowMonths < 1 {
		problems = append(problems, "benchmark.default_window_months must be >= 1")
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		problems = append(problems, fmt.Sprintf("api.port %d out of range", c.API.Port))
	}
	if c.API.RequestTimeoutSec < 0 {
		problems = append(problems, "api.request_timeout_sec must be >= 0")
	}
	if c.API.RateLimitRPS < 0 {
		problems = append(problems, "api.rate_limit_rps must be >= 0")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be text or json", c.Logging.Format))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// CacheTTLDuration returns the benchmark cache TTL.
func (b BenchmarkConfig) CacheTTLDuration() time.Duration {
	return time.Duration(b.CacheTTL) * time.Second
}

// RequestTimeout returns the per-request timeout, 0 meaning none.
func (a APIConfig) RequestTimeout() time.Duration {
	return time.Duration(a.RequestTimeoutSec) * time.Second
}

// Addr returns host:port for the HTTP listener.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// FilePath returns the config file that was loaded, or "" if none was.
func (c *Config) FilePath() string { return c.path }

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}
	return out, nil
}

// SaveToFile writes the configuration to path as YAML, creating parent
// directories as needed.
func SaveToFile(cfg *Config, path string) error {
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("error writing config file %s: %w", path, err)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
