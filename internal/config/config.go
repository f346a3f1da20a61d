// Package config handles configuration loading for Market Pulse.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Providers ProvidersConfig `mapstructure:"providers" yaml:"providers"`
	Cache     CacheConfig     `mapstructure:"cache"     yaml:"cache"`
	Synthetic SyntheticConfig `mapstructure:"synthetic" yaml:"synthetic"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// ProvidersConfig holds upstream provider credentials and endpoints.
type ProvidersConfig struct {
	AlphaVantageKey string `mapstructure:"alphavantage_key" yaml:"alphavantage_key"`
	NewsAPIKey      string `mapstructure:"newsapi_key"      yaml:"newsapi_key"`
}

// CacheConfig holds response cache tuning.
type CacheConfig struct {
	TTL             int `mapstructure:"ttl"              yaml:"ttl"`              // seconds
	CleanupInterval int `mapstructure:"cleanup_interval" yaml:"cleanup_interval"` // seconds
}

// SyntheticConfig holds synthetic generator tuning.
type SyntheticConfig struct {
	HistoryDays int   `mapstructure:"history_days" yaml:"history_days"`
	Seed        int64 `mapstructure:"seed"         yaml:"seed"` // 0 = time-seeded
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.marketpulse/config.yaml (home directory)
//  3. /etc/marketpulse/config.yaml (system)
//
// Environment variables override config file values.
// Format: MARKETPULSE_<SECTION>_<KEY>, e.g., MARKETPULSE_PROVIDERS_NEWSAPI_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".marketpulse"))
	v.AddConfigPath("/etc/marketpulse")

	v.SetEnvPrefix("MARKETPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("MARKETPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Cache defaults
	v.SetDefault("cache.ttl", 300)              // 5 minutes
	v.SetDefault("cache.cleanup_interval", 3600) // 1 hour

	// Synthetic defaults
	v.SetDefault("synthetic.history_days", 365)
	v.SetDefault("synthetic.seed", 0)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("MARKETPULSE_PROVIDERS_ALPHAVANTAGE_KEY"); key != "" {
		cfg.Providers.AlphaVantageKey = key
	}
	if key := os.Getenv("MARKETPULSE_PROVIDERS_NEWSAPI_KEY"); key != "" {
		cfg.Providers.NewsAPIKey = key
	}
	// Legacy variable names kept for compatibility with existing deploys.
	if key := os.Getenv("ALPHAVANTAGE_API_KEY"); key != "" && cfg.Providers.AlphaVantageKey == "" {
		cfg.Providers.AlphaVantageKey = key
	}
	if key := os.Getenv("NEWSAPI_API_KEY"); key != "" && cfg.Providers.NewsAPIKey == "" {
		cfg.Providers.NewsAPIKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
