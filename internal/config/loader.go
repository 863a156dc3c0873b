// Package config provides configuration management for the Gridiron Oracle application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields. A missing config file is not an error; defaults and
// environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GRIDIRON_ORACLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gridiron-oracle")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Empirically chosen model constants; see PredictorConfig.
	v.SetDefault("predictor.home_field_advantage", 0.06)
	v.SetDefault("predictor.sample_size_denominator", 50)
	v.SetDefault("predictor.min_probability", 0.02)
	v.SetDefault("predictor.max_probability", 0.98)
	v.SetDefault("predictor.head_to_head_seasons", 3)
	v.SetDefault("predictor.weights.head_to_head", 0.25)
	v.SetDefault("predictor.weights.home_away_split", 0.12)
	v.SetDefault("predictor.weights.injury", 0.15)
	v.SetDefault("predictor.weights.sentiment", 0.08)
	v.SetDefault("predictor.weights.weather", 0.12)

	// Schedule data is cheap and staleness-tolerant; odds data is
	// rate-limited and expensive; live scores are never cached.
	v.SetDefault("cache.schedule_ttl_seconds", 6*60*60)
	v.SetDefault("cache.odds_ttl_seconds", 2*60*60)
	v.SetDefault("cache.live_score_ttl_seconds", 0)
	v.SetDefault("cache.sweep_interval_seconds", 10*60)

	v.SetDefault("provider.timeout_seconds", 15)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.rate_limit", 5.0)

	v.SetDefault("ingest.sync_schedule", "0 */6 * * *")
	v.SetDefault("ingest.health_port", 8080)

	v.SetDefault("metrics.enabled", true)
}
