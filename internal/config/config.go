// Package config loads server settings from the environment.
//
// Every setting can be given with or without the KONTRIB_ prefix, e.g.
// KONTRIB_PORT or PORT; the prefixed name wins. A .env file in the working
// directory is read first if present and never overrides variables that are
// already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable.
const EnvPrefix = "KONTRIB"

const devJWTSecret = "kontrib-dev-secret"

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set unless DEV is enabled")

// Config holds the server settings.
type Config struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	DBPath         string        `envconfig:"DB_PATH" default:"./data/kontrib.db"`
	JWTSecret      string        `envconfig:"JWT_SECRET"`
	TokenTTL       time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	ApplyAttempts  int           `envconfig:"APPLY_ATTEMPTS" default:"5"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	Dev            bool          `envconfig:"DEV" default:"false"`
}

// Load reads envFiles (default .env) into the environment and then
// processes the environment into a Config. Missing env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading env file: %w", err)
	}

	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.DBPath == "" {
		return errors.New("DB_PATH must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid TOKEN_TTL %s", c.TokenTTL)
	}
	if c.ApplyAttempts < 1 {
		return fmt.Errorf("invalid APPLY_ATTEMPTS %d (must be at least 1)", c.ApplyAttempts)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q (must be debug, info, warn or error)", c.LogLevel)
	}

	if c.JWTSecret == "" {
		if !c.Dev {
			return ErrMissingJWTSecret
		}
		c.JWTSecret = devJWTSecret
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
