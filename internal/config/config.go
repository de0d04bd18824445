package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dkachan/shiftscout/pkg/core/matcher"
)

// MatcherOverrides are optional per-deployment overrides for the matcher's
// tuning table; unset fields keep the documented defaults
type MatcherOverrides struct {
	Place               *float64 `yaml:"place,omitempty" validate:"omitempty,gt=0"`
	Time                *float64 `yaml:"time,omitempty" validate:"omitempty,gt=0"`
	Date                *float64 `yaml:"date,omitempty" validate:"omitempty,gt=0"`
	MinScore            *float64 `yaml:"minScore,omitempty" validate:"omitempty,gt=0,lte=1"`
	TieTolerance        *float64 `yaml:"tieTolerance,omitempty" validate:"omitempty,gte=0,lte=1"`
	TimeDeltaCapMinutes *int     `yaml:"timeDeltaCapMinutes,omitempty" validate:"omitempty,min=30"`
	OverlapBonus        *float64 `yaml:"overlapBonus,omitempty" validate:"omitempty,gte=0,lte=1"`
	FuzzyTokenQuality   *float64 `yaml:"fuzzyTokenQuality,omitempty" validate:"omitempty,gt=0,lt=1"`
	RecencyHorizonDays  *int     `yaml:"recencyHorizonDays,omitempty" validate:"omitempty,min=1"`
}

// Config represents the application configuration
type Config struct {
	APIBaseURL             string           `yaml:"apiBaseURL" validate:"required,url"`
	HTTPTimeoutSeconds     int              `yaml:"httpTimeoutSeconds,omitempty" validate:"omitempty,min=1"`
	StopWordRefreshSeconds int              `yaml:"stopWordRefreshSeconds,omitempty" validate:"omitempty,min=10"`
	Matcher                MatcherOverrides `yaml:"matcher,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from shiftscout_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// HTTPTimeout returns the backend request timeout (default 10s)
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// StopWordRefreshInterval returns the stop-word refresh period (default 5m)
func (c *Config) StopWordRefreshInterval() time.Duration {
	if c.StopWordRefreshSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.StopWordRefreshSeconds) * time.Second
}

// MatcherWeights merges the overrides onto the default tuning table
func (c *Config) MatcherWeights() matcher.Weights {
	w := matcher.DefaultWeights()
	if c.Matcher.Place != nil {
		w.Place = *c.Matcher.Place
	}
	if c.Matcher.Time != nil {
		w.Time = *c.Matcher.Time
	}
	if c.Matcher.Date != nil {
		w.Date = *c.Matcher.Date
	}
	if c.Matcher.MinScore != nil {
		w.MinScore = *c.Matcher.MinScore
	}
	if c.Matcher.TieTolerance != nil {
		w.TieTolerance = *c.Matcher.TieTolerance
	}
	if c.Matcher.TimeDeltaCapMinutes != nil {
		w.TimeDeltaCapMinutes = *c.Matcher.TimeDeltaCapMinutes
	}
	if c.Matcher.OverlapBonus != nil {
		w.OverlapBonus = *c.Matcher.OverlapBonus
	}
	if c.Matcher.FuzzyTokenQuality != nil {
		w.FuzzyTokenQuality = *c.Matcher.FuzzyTokenQuality
	}
	if c.Matcher.RecencyHorizonDays != nil {
		w.RecencyHorizonDays = *c.Matcher.RecencyHorizonDays
	}
	return w
}

// findConfigFile searches for shiftscout_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "shiftscout_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
