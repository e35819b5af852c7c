// Package config loads and validates the application configuration from a
// YAML file with environment variable expansion.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newspool.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Ingestion cycle configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`

	Quality QualityConfig `yaml:"quality" json:"quality" jsonschema:"description=Article quality validation configuration"`

	Dedup DedupConfig `yaml:"dedup" json:"dedup" jsonschema:"description=Deduplication configuration"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration"`
}

// ScheduleConfig holds ingestion cycle settings
type ScheduleConfig struct {
	UpdateInterval int `yaml:"update_interval" json:"update_interval" jsonschema:"default=30,description=Ingestion cycle interval in minutes"`
	Concurrency    int `yaml:"concurrency" json:"concurrency" jsonschema:"default=5,minimum=1,description=Sources fetched in parallel within one batch"`
	MaxFailures    int `yaml:"max_failures" json:"max_failures" jsonschema:"default=10,description=Consecutive failures before a source is skipped"`
}

// FetchConfig holds feed fetching settings
type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP timeout per source"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newspool/1.0,description=User agent for feed requests"`
	MaxBodySize   int64         `yaml:"max_body_size" json:"max_body_size" jsonschema:"default=10485760,description=Maximum response body size in bytes"`
	SummaryLength int           `yaml:"summary_length" json:"summary_length" jsonschema:"default=200,description=Maximum summary length in characters"`
}

// QualityConfig holds article validation settings
type QualityConfig struct {
	MinScore       int           `yaml:"min_score" json:"min_score" jsonschema:"default=50,minimum=0,maximum=100,description=Minimum quality score to accept an article"`
	SpamKeywords   []string      `yaml:"spam_keywords" json:"spam_keywords" jsonschema:"description=Keywords that lower the quality score when present in the title"`
	MaxAge         time.Duration `yaml:"max_age" json:"max_age" jsonschema:"default=720h,description=Articles older than this lose score"`
	MaxFutureDrift time.Duration `yaml:"max_future_drift" json:"max_future_drift" jsonschema:"default=24h,description=Articles dated further in the future lose score"`
}

// DedupConfig holds deduplication settings
type DedupConfig struct {
	SimilarityThreshold float64  `yaml:"similarity_threshold" json:"similarity_threshold" jsonschema:"default=0.85,minimum=0,maximum=1,description=Title similarity above which articles are duplicates"`
	TrackingParams      []string `yaml:"tracking_params" json:"tracking_params" jsonschema:"description=Query parameters stripped during URL normalization"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable full-text content extraction"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newspool/1.0,description=User agent for HTTP requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:newspool.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = 30
	}
	if cfg.Schedule.Concurrency == 0 {
		cfg.Schedule.Concurrency = 5
	}
	if cfg.Schedule.MaxFailures == 0 {
		cfg.Schedule.MaxFailures = 10
	}

	// set defaults for fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Newspool/1.0"
	}
	if cfg.Fetch.MaxBodySize == 0 {
		cfg.Fetch.MaxBodySize = 10 * 1024 * 1024
	}
	if cfg.Fetch.SummaryLength == 0 {
		cfg.Fetch.SummaryLength = 200
	}

	// set defaults for quality
	if cfg.Quality.MinScore == 0 {
		cfg.Quality.MinScore = 50
	}
	if cfg.Quality.MaxAge == 0 {
		cfg.Quality.MaxAge = 30 * 24 * time.Hour
	}
	if cfg.Quality.MaxFutureDrift == 0 {
		cfg.Quality.MaxFutureDrift = 24 * time.Hour
	}

	// set defaults for dedup
	if cfg.Dedup.SimilarityThreshold == 0 {
		cfg.Dedup.SimilarityThreshold = 0.85
	}

	// set defaults for extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "Newspool/1.0"
	}
	if cfg.Extraction.MinTextLength == 0 {
		cfg.Extraction.MinTextLength = 100
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate schedule config
	if cfg.Schedule.Concurrency < 1 {
		return fmt.Errorf("schedule.concurrency must be at least 1")
	}
	if cfg.Schedule.UpdateInterval < 1 {
		return fmt.Errorf("schedule.update_interval must be at least 1 minute")
	}

	// validate quality config
	if cfg.Quality.MinScore < 0 || cfg.Quality.MinScore > 100 {
		return fmt.Errorf("quality.min_score must be between 0 and 100")
	}

	// validate dedup config
	if cfg.Dedup.SimilarityThreshold < 0 || cfg.Dedup.SimilarityThreshold > 1 {
		return fmt.Errorf("dedup.similarity_threshold must be between 0 and 1")
	}

	// validate extraction config
	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return fmt.Errorf("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction min_text_length must be non-negative")
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetScheduleConfig returns ingestion cycle configuration
func (c *Config) GetScheduleConfig() ScheduleConfig {
	return c.Schedule
}

// GetFetchConfig returns feed fetching configuration
func (c *Config) GetFetchConfig() FetchConfig {
	return c.Fetch
}

// GetQualityConfig returns quality validation configuration
func (c *Config) GetQualityConfig() QualityConfig {
	return c.Quality
}

// GetDedupConfig returns deduplication configuration
func (c *Config) GetDedupConfig() DedupConfig {
	return c.Dedup
}

// GetExtractionConfig returns content extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
