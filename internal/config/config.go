// Package config loads the service configuration from the environment.
//
// The loading sequence is:
//  1. Load a .env file via godotenv (non-fatal if absent).
//  2. Use envconfig to process struct tags and populate the Config struct.
//  3. Validate the struct using go-playground/validator.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings
type Config struct {
	Port   string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	AppEnv string `envconfig:"APP_ENV" default:"development" validate:"oneof=development production test"`

	// DatabaseURL is optional; an empty value selects the in-memory store
	DatabaseURL string `envconfig:"DATABASE_URL"`
	// RedisURL is optional; an empty value selects the in-process cache
	RedisURL string `envconfig:"REDIS_URL"`

	WeatherBaseURL string        `envconfig:"WEATHER_BASE_URL" default:"https://api.open-meteo.com" validate:"required,url"`
	WeatherTimeout time.Duration `envconfig:"WEATHER_TIMEOUT" default:"10s" validate:"gt=0"`
	DefaultCity    string        `envconfig:"DEFAULT_CITY" default:"Moscow" validate:"required"`

	PredictionCacheTTL time.Duration `envconfig:"PREDICTION_CACHE_TTL" default:"1h" validate:"gt=0"`
	DailyCacheLocation string        `envconfig:"DAILY_CACHE_LOCATION" default:"UTC" validate:"required"`
	HistoryWindowDays  int           `envconfig:"HISTORY_WINDOW_DAYS" default:"30" validate:"min=1,max=365"`
}

// ConfigErrorType categorizes configuration failures
type ConfigErrorType string

const (
	ErrParsing    ConfigErrorType = "parsing"
	ErrValidation ConfigErrorType = "validation"
)

// ConfigError is returned by Load when the environment is unusable
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	// godotenv does not override variables that are already set
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv populates and validates a Config from the process environment only
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{Type: ErrParsing, Message: "failed to process environment configuration", Err: err}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, &ConfigError{Type: ErrValidation, Message: "configuration validation failed", Err: err}
	}

	if _, err := time.LoadLocation(cfg.DailyCacheLocation); err != nil {
		return nil, &ConfigError{Type: ErrValidation, Message: "unknown DAILY_CACHE_LOCATION", Err: err}
	}

	return &cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// HistoryWindow is the recency window used by the analysis strategy
func (c *Config) HistoryWindow() time.Duration {
	return time.Duration(c.HistoryWindowDays) * 24 * time.Hour
}

// DailyLocation returns the time zone for calendar-day cache expiry
func (c *Config) DailyLocation() *time.Location {
	loc, err := time.LoadLocation(c.DailyCacheLocation)
	if err != nil {
		return time.UTC
	}
	return loc
}
