package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort  string `env:"APP_PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseDSN    string        `env:"DATABASE_DSN"`
	DBQueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`

	SessionSecret       string        `env:"SESSION_SECRET"`
	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	SessionStore        string        `env:"SESSION_STORE" envDefault:"redis"`
	SessionCookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"true"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	BcryptCost      int `env:"BCRYPT_COST" envDefault:"10"`
	HashConcurrency int `env:"HASH_CONCURRENCY"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	FacebookClientID     string `env:"FACEBOOK_CLIENT_ID"`
	FacebookClientSecret string `env:"FACEBOOK_CLIENT_SECRET"`
	FacebookRedirectURL  string `env:"FACEBOOK_REDIRECT_URL"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DatabaseDSN == "" {
		return errors.New("config: DATABASE_DSN is required")
	}
	if c.SessionSecret == "" {
		return errors.New("config: SESSION_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	switch c.SessionStore {
	case "redis", "memory":
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q", c.SessionStore)
	}
	return nil
}

// GoogleEnabled reports whether every Google OAuth value is set.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURL != ""
}

// FacebookEnabled reports whether every Facebook OAuth value is set.
func (c Config) FacebookEnabled() bool {
	return c.FacebookClientID != "" && c.FacebookClientSecret != "" && c.FacebookRedirectURL != ""
}
