package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DevSecret signs tokens when no secret is configured outside prod. Anyone
// can forge tokens with it.
const DevSecret = "dev-insecure-secret"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	TokenSecret string        `env:"AUTH_TOKEN_SECRET"`                  // HS256 signing secret, shared by every instance
	TokenTTL    time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`    // 0 issues tokens without exp
	Issuer      string        `env:"AUTH_ISSUER" envDefault:"authsvc"`   // iss claim
	TokenLeeway time.Duration `env:"AUTH_TOKEN_LEEWAY" envDefault:"30s"` // clock skew tolerated on exp

	DatabaseDriver string `env:"AUTH_DATABASE_DRIVER" envDefault:"sqlite"` // sqlite or postgres
	DatabaseFile   string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`  // sqlite only
	DatabaseURL    string `env:"AUTH_DATABASE_URL"`                        // postgres only

	Env                 string        `env:"ENV" envDefault:"dev"`                   // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`            // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`           // json, text
	Port                int           `env:"PORT" envDefault:"8080"`                 // HTTP listen port
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"` // drain time for in-flight requests
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration and fills in the dev secret when none is
// set outside prod.
func (c *Config) Validate() error {
	if c.TokenSecret == "" && !c.IsProd() {
		c.TokenSecret = DevSecret
	}

	var errs []error
	if c.TokenSecret == "" || (c.IsProd() && c.TokenSecret == DevSecret) {
		errs = append(errs, errors.New("AUTH_TOKEN_SECRET must be set to a private value in prod"))
	}
	if c.TokenTTL < 0 {
		errs = append(errs, fmt.Errorf("AUTH_TOKEN_TTL must not be negative, got %s", c.TokenTTL))
	}
	if c.TokenLeeway < 0 {
		errs = append(errs, fmt.Errorf("AUTH_TOKEN_LEEWAY must not be negative, got %s", c.TokenLeeway))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}

	return errors.Join(errs...)
}

func (c Config) IsProd() bool { return c.Env == "prod" || c.Env == "production" }

// UsesDevSecret reports whether tokens are signed with the public placeholder.
func (c Config) UsesDevSecret() bool { return c.TokenSecret == DevSecret }
