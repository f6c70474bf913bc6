package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"

	commonerrors "github.com/AlibekovAA/account-core/internal/common/errors"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type AccountConfig struct {
	StoreDriver   string `env:"ACCOUNT_STORE" envDefault:"memory"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"accounts.db"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"accounts"`

	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"12"`
	RequestTimeout time.Duration `env:"ACCOUNT_REQUEST_TIMEOUT" envDefault:"5s"`

	CircuitBreakerThreshold int32         `env:"CIRCUIT_BREAKER_THRESHOLD" envDefault:"50"`
	CircuitBreakerTimeout   time.Duration `env:"CIRCUIT_BREAKER_TIMEOUT" envDefault:"5s"`
	CircuitBreakerReset     time.Duration `env:"CIRCUIT_BREAKER_RESET" envDefault:"10s"`

	LogDir   string `env:"LOG_DIR"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadAccountConfig() (AccountConfig, error) {
	var cfg AccountConfig
	if err := env.Parse(&cfg); err != nil {
		return AccountConfig{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return AccountConfig{}, err
	}
	return cfg, nil
}

func (c AccountConfig) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("DATABASE_URL"))
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("SQLITE_PATH"))
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("MONGO_URI"))
		}
	default:
		return commonerrors.ErrUnknownStoreDriver.WithCause(fmt.Errorf("%q", c.StoreDriver))
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("ACCOUNT_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
