package constants

import "time"

const (
	UsernameMinLength = 4
	UsernameMaxLength = 20
	PasswordMinLength = 6
	PasswordMaxLength = 40
	// bcrypt silently refuses anything past this many bytes.
	PasswordMaxBytes = 72

	DefaultBcryptCost = 12

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	MongoConnectTimeout = 10 * time.Second

	DefaultStoreDriver    = "memory"
	DefaultSQLitePath     = "accounts.db"
	DefaultMongoDatabase  = "accounts"
	DefaultRequestTimeout = 5 * time.Second

	DefaultCircuitBreakerThreshold = 50
	DefaultCircuitBreakerTimeout   = 5 * time.Second
	DefaultCircuitBreakerReset     = 10 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
