// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"

	EnvironmentProduction = "production"
)

type Config struct {
	Addr        string `env:"CONDUCTOR_ADDR" envDefault:":3001"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// StorageDriver selects where users, courses and lectures live.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	// SessionBackend selects the session store.
	SessionBackend string `env:"SESSION_BACKEND" envDefault:"memory"`

	Database Database
	Redis    Redis
	Google   Google
	Session  Session
	Frontend Frontend
	Audit    Audit
}

type Database struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type Redis struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

type Google struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URI" envDefault:"http://localhost:3001/auth/oauth/google/callback"`
	IssuerURL    string `env:"GOOGLE_ISSUER_URL" envDefault:"https://accounts.google.com"`
}

type Session struct {
	Secret               string        `env:"SESSION_SECRET"`
	TTL                  time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	AllowedEmailSuffixes []string      `env:"ALLOWED_EMAIL_SUFFIXES" envSeparator:"," envDefault:"@ucsd.edu"`
}

type Frontend struct {
	URL    string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	Origin string `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:3000"`
}

type Audit struct {
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic        string   `env:"AUDIT_TOPIC" envDefault:"conductor.audit"`
	BufferSize   int      `env:"AUDIT_BUFFER_SIZE" envDefault:"1024"`
}

// FromEnv parses and validates the configuration.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.SessionBackend = strings.ToLower(strings.TrimSpace(cfg.SessionBackend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction gates the Secure cookie attribute.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// InMemory reports whether nothing is persisted outside the process.
func (c *Config) InMemory() bool {
	return c.StorageDriver == BackendMemory && c.SessionBackend == BackendMemory
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case BackendMemory:
	case BackendPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}
	switch c.SessionBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.StorageDriver != BackendPostgres {
			errs = append(errs, errors.New("SESSION_BACKEND=postgres requires STORAGE_DRIVER=postgres"))
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when SESSION_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if !c.InMemory() {
		if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
			errs = append(errs, errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required"))
		}
		if c.Session.Secret == "" {
			errs = append(errs, errors.New("SESSION_SECRET is required"))
		}
	}
	if c.IsProduction() && len(c.Session.Secret) < 32 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 bytes in production"))
	}
	return errors.Join(errs...)
}
