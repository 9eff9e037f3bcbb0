// Package config handles configuration loading for EdgarScope.
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
	Edgar   EdgarConfig   `mapstructure:"edgar"   yaml:"edgar"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Insider InsiderConfig `mapstructure:"insider" yaml:"insider"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// EdgarConfig holds SEC EDGAR client settings. The SEC requires a
// User-Agent identifying the requester and caps traffic at 10 req/s.
type EdgarConfig struct {
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	CacheTTL  int    `mapstructure:"cache_ttl"  yaml:"cache_ttl"`  // seconds
	RateLimit int    `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second
}

// MetricsConfig holds metric normalization settings.
type MetricsConfig struct {
	DefaultYears int `mapstructure:"default_years" yaml:"default_years"`
}

// InsiderConfig holds insider activity aggregation settings.
type InsiderConfig struct {
	LookbackDays int `mapstructure:"lookback_days" yaml:"lookback_days"`
	MaxFilings   int `mapstructure:"max_filings"   yaml:"max_filings"`
	BatchSize    int `mapstructure:"batch_size"    yaml:"batch_size"`
}

// APIConfig holds HTTP API server settings.
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
//  2. ~/.edgarscope/config.yaml (home directory)
//  3. /etc/edgarscope/config.yaml (system)
//
// Environment variables override config file values.
// Format: EDGARSCOPE_<SECTION>_<KEY>, e.g., EDGARSCOPE_EDGAR_USER_AGENT
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".edgarscope"))
	v.AddConfigPath("/etc/edgarscope")

	v.SetEnvPrefix("EDGARSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults + env vars suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("EDGARSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// EDGAR defaults. The SEC's published limit is 10 req/s; stay under it.
	v.SetDefault("edgar.user_agent", "edgarscope/1.0 (github.com/finbrook/edgarscope)")
	v.SetDefault("edgar.cache_ttl", 600) // 10 minutes
	v.SetDefault("edgar.rate_limit", 8)

	// Metric normalization defaults
	v.SetDefault("metrics.default_years", 5)

	// Insider activity defaults
	v.SetDefault("insider.lookback_days", 90)
	v.SetDefault("insider.max_filings", 50)
	v.SetDefault("insider.batch_size", 5)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
