// Package config loads wb2littler settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// ErrConfiguration is returned when the environment is missing
// credentials or holds an invalid setting.
var ErrConfiguration = errors.New("configuration error")

// DefaultBaseURL is the WindBorne sensor data API.
// See https://windbornesystems.com/docs/api
const DefaultBaseURL = "https://sensor-data.windbornesystems.com/api/v1"

// Config holds everything read from the environment at startup.
type Config struct {
	// Credentials issued by WindBorne.
	ClientID string `env:"WB_CLIENT_ID,required"`
	APIKey   string `env:"WB_API_KEY,required"`

	BaseURL string `env:"WB_API_BASE_URL,default=https://sensor-data.windbornesystems.com/api/v1"`

	// AuthScheme is "basic" (client ID as user, signed token as password)
	// or "bearer".
	AuthScheme string        `env:"WB_AUTH_SCHEME,default=basic"`
	TokenTTL   time.Duration `env:"WB_TOKEN_TTL,default=1h"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load reads the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration using l, which lets tests supply a map.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.ClientID = strings.TrimSpace(c.ClientID)
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.ClientID == "" || c.APIKey == "" {
		return fmt.Errorf("%w: WB_CLIENT_ID and WB_API_KEY must be set; "+
			"if you don't have a client ID or API key, please contact WindBorne", ErrConfiguration)
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.AuthScheme = strings.ToLower(strings.TrimSpace(c.AuthScheme))
	switch c.AuthScheme {
	case "basic", "bearer":
	default:
		return fmt.Errorf("%w: invalid WB_AUTH_SCHEME %q (allowed: basic, bearer)", ErrConfiguration, c.AuthScheme)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: WB_TOKEN_TTL must be positive, got %s", ErrConfiguration, c.TokenTTL)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: invalid LOG_FORMAT %q (allowed: text, json)", ErrConfiguration, c.LogFormat)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", ErrConfiguration, c.LogLevel)
	}
}
