// Package config provides configuration management for the Gridiron Oracle application.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Predictor PredictorConfig `mapstructure:"predictor" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Provider  ProviderConfig  `mapstructure:"provider" validate:"required"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// PredictorConfig holds the tunable constants of the baseline
// predictor and the multi-factor adjuster. The defaults were chosen
// empirically with no formal calibration against held-out data; they
// are exposed here so evaluator runs can compare tunings.
type PredictorConfig struct {
	HomeFieldAdvantage    float64 `mapstructure:"home_field_advantage" validate:"gte=0,lte=0.2"`
	SampleSizeDenominator float64 `mapstructure:"sample_size_denominator" validate:"gt=0"`
	MinProbability        float64 `mapstructure:"min_probability" validate:"gte=0,lt=0.5"`
	MaxProbability        float64 `mapstructure:"max_probability" validate:"gt=0.5,lte=1"`

	// Head-to-head lookback, in seasons including the current one.
	HeadToHeadSeasons int `mapstructure:"head_to_head_seasons" validate:"gt=0"`

	Weights AdjusterWeights `mapstructure:"weights"`
}

// AdjusterWeights holds the maximum contribution of each optional
// signal to the adjusted probability.
type AdjusterWeights struct {
	HeadToHead    float64 `mapstructure:"head_to_head" validate:"gte=0,lte=1"`
	HomeAwaySplit float64 `mapstructure:"home_away_split" validate:"gte=0,lte=1"`
	Injury        float64 `mapstructure:"injury" validate:"gte=0,lte=1"`
	Sentiment     float64 `mapstructure:"sentiment" validate:"gte=0,lte=1"`
	Weather       float64 `mapstructure:"weather" validate:"gte=0,lte=1"`
}

// CacheConfig holds per-category TTLs. Live-score data is intentionally
// uncacheable: a TTL of zero disables storage for that category.
type CacheConfig struct {
	ScheduleTTLSeconds   int `mapstructure:"schedule_ttl_seconds" validate:"gte=0"`
	OddsTTLSeconds       int `mapstructure:"odds_ttl_seconds" validate:"gte=0"`
	LiveScoreTTLSeconds  int `mapstructure:"live_score_ttl_seconds" validate:"eq=0"`
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds" validate:"gt=0"`
}

// ScheduleTTL returns the schedule cache TTL as a duration.
func (c CacheConfig) ScheduleTTL() time.Duration {
	return time.Duration(c.ScheduleTTLSeconds) * time.Second
}

// OddsTTL returns the odds cache TTL as a duration.
func (c CacheConfig) OddsTTL() time.Duration {
	return time.Duration(c.OddsTTLSeconds) * time.Second
}

// SweepInterval returns the expired-entry sweep interval as a duration.
func (c CacheConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

// ProviderConfig holds upstream provider client settings. When
// base_url is set the HTTP provider is used; otherwise the file-backed
// provider reads from fixtures_path.
type ProviderConfig struct {
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gt=0"`
	BaseURL        string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	// Path to local schedule fixtures for the file-backed provider.
	FixturesPath string `mapstructure:"fixtures_path"`
}

// Timeout returns the per-fetch provider timeout as a duration.
func (c ProviderConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IngestConfig holds the ingestion daemon's settings.
type IngestConfig struct {
	Teams        []string `mapstructure:"teams"`
	Season       int      `mapstructure:"season" validate:"omitempty,gt=0"`
	SyncSchedule string   `mapstructure:"sync_schedule"`
	HealthPort   int      `mapstructure:"health_port" validate:"omitempty,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
