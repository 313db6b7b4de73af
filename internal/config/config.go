// Package config provides configuration management for the data pipeline
// commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable holding the KenPom API key.
const APIKeyEnv = "KENPOM_API_KEY"

// Configuration validation errors.
var (
	ErrMissingRawDir            = errors.New("data.raw_dir is required")
	ErrMissingProcessedDir      = errors.New("data.processed_dir is required")
	ErrMissingTeamName          = errors.New("team.name is required")
	ErrMissingSchool            = errors.New("team.school is required")
	ErrMissingFilePrefix        = errors.New("team.file_prefix is required")
	ErrMissingScheduleBaseURL   = errors.New("sources.schedule_base_url is required")
	ErrMissingKenPomBaseURL     = errors.New("sources.kenpom_base_url is required")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingAPIKey            = errors.New("KENPOM_API_KEY not set: add it to the environment or a .env file")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// PipelineConfig contains pipeline-wide settings.
type PipelineConfig struct {
	Data    DataConfig    `yaml:"data"`
	Team    TeamConfig    `yaml:"team"`
	Sources SourcesConfig `yaml:"sources"`
	Retry   RetryPolicy   `yaml:"retry"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig defines where raw inputs live and processed outputs go.
type DataConfig struct {
	RawDir       string `yaml:"raw_dir"`
	ProcessedDir string `yaml:"processed_dir"`
}

// TeamConfig identifies the tracked program.
type TeamConfig struct {
	// Name is matched against the team-name column of API payloads.
	Name string `yaml:"name"`
	// School is the Sports-Reference school slug in schedule URLs.
	School string `yaml:"school"`
	// FilePrefix prefixes per-team file names, e.g. "um".
	FilePrefix string `yaml:"file_prefix"`
}

// SourcesConfig holds the external source locations.
type SourcesConfig struct {
	ScheduleBaseURL string `yaml:"schedule_base_url"`
	KenPomBaseURL   string `yaml:"kenpom_base_url"`
}

// RetryPolicy defines HTTP retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration used when no config file is
// given.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Data: DataConfig{
				RawDir:       "data/raw",
				ProcessedDir: "data/processed",
			},
			Team: TeamConfig{
				Name:       "Montana",
				School:     "montana",
				FilePrefix: "um",
			},
			Sources: SourcesConfig{
				ScheduleBaseURL: "https://www.sports-reference.com",
				KenPomBaseURL:   "https://kenpom.com",
			},
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
			Logging: LoggingConfig{
				Level: "info",
			},
		},
	}
}

// Load loads configuration from a YAML file.
func Load(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	p := &c.Pipeline

	if p.Data.RawDir == "" {
		return ErrMissingRawDir
	}

	if p.Data.ProcessedDir == "" {
		return ErrMissingProcessedDir
	}

	if p.Team.Name == "" {
		return ErrMissingTeamName
	}

	if p.Team.School == "" {
		return ErrMissingSchool
	}

	if p.Team.FilePrefix == "" {
		return ErrMissingFilePrefix
	}

	if p.Sources.ScheduleBaseURL == "" {
		return ErrMissingScheduleBaseURL
	}

	if p.Sources.KenPomBaseURL == "" {
		return ErrMissingKenPomBaseURL
	}

	if p.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if p.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if p.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if p.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[p.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// ScheduleURL builds the Sports-Reference schedule page URL for a season
// end year.
func (c *Config) ScheduleURL(season int) string {
	return fmt.Sprintf("%s/cbb/schools/%s/men/%d-schedule.html",
		c.Pipeline.Sources.ScheduleBaseURL,
		c.Pipeline.Team.School,
		season,
	)
}

// RawSchedulePath is where the schedule scraper writes its per-season CSV.
func (c *Config) RawSchedulePath(season int) string {
	return fmt.Sprintf("%s/%s_schedule_%d.csv",
		c.Pipeline.Data.RawDir, c.Pipeline.Team.FilePrefix, season)
}

// ScheduleExportPath is where a manually exported raw schedule CSV is
// expected before the schedule command runs.
func (c *Config) ScheduleExportPath(season int) string {
	return fmt.Sprintf("%s/%s_schedule_%d_raw.csv",
		c.Pipeline.Data.RawDir, c.Pipeline.Team.FilePrefix, season)
}

// RosterExportPath is where a manually exported raw roster CSV is expected
// before the roster command runs.
func (c *Config) RosterExportPath(season int) string {
	return fmt.Sprintf("%s/%s_roster_%d_raw.csv",
		c.Pipeline.Data.RawDir, c.Pipeline.Team.FilePrefix, season)
}

// ProcessedPath follows <processed-dir>/<entity>_<season>[_conf_only]_processed.csv.
func (c *Config) ProcessedPath(entity string, season int, confOnly bool) string {
	suffix := ""
	if confOnly {
		suffix = "_conf_only"
	}

	return fmt.Sprintf("%s/%s_%d%s_processed.csv",
		c.Pipeline.Data.ProcessedDir, entity, season, suffix)
}

// TeamProcessedPath is the team-filtered sibling of ProcessedPath.
func (c *Config) TeamProcessedPath(entity string, season int, confOnly bool) string {
	return c.ProcessedPath(c.Pipeline.Team.FilePrefix+"_"+entity, season, confOnly)
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// APIKeyFromEnv reads the KenPom API key from the environment, loading a
// .env file first when one exists. A missing key is a configuration error
// raised before any network activity.
func APIKeyFromEnv() (string, error) {
	// A missing .env file just means plain environment lookup.
	_ = godotenv.Load()

	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return "", ErrMissingAPIKey
	}

	return key, nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Team: %s, RawDir: %s, ProcessedDir: %s, MaxAttempts: %d}",
		c.Pipeline.Team.Name,
		c.Pipeline.Data.RawDir,
		c.Pipeline.Data.ProcessedDir,
		c.Pipeline.Retry.MaxAttempts,
	)
}
