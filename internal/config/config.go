package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap/zapcore"
)

type AppConfig struct {
	OpenWeatherAPIKey string `mapstructure:"OPENWEATHER_API_KEY"`

	// DefaultCity is shown until the IP lookup or a search picks another one.
	DefaultCity string `mapstructure:"DEFAULT_CITY"`

	// HTTPTimeout bounds each outbound call; FetchTimeout bounds a whole fetch task.
	HTTPTimeout  time.Duration `mapstructure:"HTTP_TIMEOUT"`
	FetchTimeout time.Duration `mapstructure:"FETCH_TIMEOUT"`

	// RefreshInterval re-fetches the active city periodically (0 = never).
	RefreshInterval time.Duration `mapstructure:"REFRESH_INTERVAL"`

	// StaleResponseGuard drops responses older than the last applied one.
	StaleResponseGuard bool `mapstructure:"STALE_RESPONSE_GUARD"`

	BackgroundsDir string `mapstructure:"BACKGROUNDS_DIR"`
	Port           string `mapstructure:"PORT"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
}

var keys = []string{
	"OPENWEATHER_API_KEY",
	"DEFAULT_CITY",
	"HTTP_TIMEOUT",
	"FETCH_TIMEOUT",
	"REFRESH_INTERVAL",
	"STALE_RESPONSE_GUARD",
	"BACKGROUNDS_DIR",
	"PORT",
	"LOG_LEVEL",
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"DEFAULT_CITY":         "Pune",
		"HTTP_TIMEOUT":         "10s",
		"FETCH_TIMEOUT":        "30s",
		"REFRESH_INTERVAL":     "0",
		"STALE_RESPONSE_GUARD": "false",
		"BACKGROUNDS_DIR":      "./public/backgrounds",
		"PORT":                 "8080",
		"LOG_LEVEL":            "info",
	}
}

// Load reads .env (if present) and the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the config from any key lookup, applying defaults for unset keys.
func FromLookup(lookup func(string) (string, bool)) (*AppConfig, error) {
	raw := defaults()
	for _, k := range keys {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			raw[k] = strings.TrimSpace(v)
		}
	}

	cfg := &AppConfig{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *AppConfig) Validate() error {
	var result *multierror.Error

	if c.OpenWeatherAPIKey == "" {
		result = multierror.Append(result, errors.New("OPENWEATHER_API_KEY is required"))
	}
	if c.DefaultCity == "" {
		result = multierror.Append(result, errors.New("DEFAULT_CITY must not be empty"))
	}
	if c.HTTPTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout))
	}
	if c.FetchTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout))
	}
	if c.RefreshInterval < 0 {
		result = multierror.Append(result, fmt.Errorf("REFRESH_INTERVAL must not be negative, got %s", c.RefreshInterval))
	}
	if _, err := c.Level(); err != nil {
		result = multierror.Append(result, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	return result.ErrorOrNil()
}

// Level parses LogLevel.
func (c *AppConfig) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return zapcore.InfoLevel, err
	}
	return lvl, nil
}
