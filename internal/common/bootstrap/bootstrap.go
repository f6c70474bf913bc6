package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/AlibekovAA/account-core/internal/account/repository"
	"github.com/AlibekovAA/account-core/internal/account/service"
	"github.com/AlibekovAA/account-core/internal/common/clock"
	"github.com/AlibekovAA/account-core/internal/common/config"
	"github.com/AlibekovAA/account-core/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/account-core/internal/common/crypto"
	"github.com/AlibekovAA/account-core/internal/common/db"
	"github.com/AlibekovAA/account-core/internal/common/logger"
	"github.com/AlibekovAA/account-core/internal/common/resilience"
)

type AccountApp struct {
	Log           *logger.Logger
	Config        config.AccountConfig
	Repo          repository.Repository
	Accounts      *service.AccountService
	Authenticator *service.Authenticator

	closers []func(context.Context) error
}

// NewAccountApp loads configuration, opens the configured store and wires
// the account services on top of it.
func NewAccountApp(ctx context.Context, serviceName string) (*AccountApp, error) {
	cfg, err := config.LoadAccountConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app, err := NewAccountAppWithConfig(ctx, cfg, log)
	if err != nil {
		_ = log.Close()
		return nil, err
	}
	app.closers = append(app.closers, func(context.Context) error { return log.Close() })
	return app, nil
}

func NewAccountAppWithConfig(ctx context.Context, cfg config.AccountConfig, log *logger.Logger) (*AccountApp, error) {
	app := &AccountApp{Log: log, Config: cfg}

	store, err := app.openStore(ctx)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:  cfg.CircuitBreakerThreshold,
		Timeout:    cfg.CircuitBreakerTimeout,
		ResetAfter: cfg.CircuitBreakerReset,
		Name:       "account_store_" + cfg.StoreDriver,
		IsExpected: repository.IsExpected,
		Logger:     log,
	})
	app.Repo = repository.NewResilientRepository(store, breaker)

	hasher, err := commoncrypto.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	app.Accounts = service.NewAccountService(app.Repo, hasher, commoncrypto.NewUUIDGenerator(), clock.NewRealClock(), log)
	app.Authenticator, err = service.NewAuthenticator(app.Repo, hasher, log)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	log.Infof("account store ready: driver=%s", cfg.StoreDriver)
	return app, nil
}

func (a *AccountApp) openStore(ctx context.Context) (repository.Repository, error) {
	switch a.Config.StoreDriver {
	case config.DriverMemory:
		return repository.NewMemoryRepository(), nil
	case config.DriverPostgres:
		return a.openPostgres(ctx)
	case config.DriverSQLite:
		repo, err := repository.OpenSQLiteRepository(a.Config.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return repo.Close() })
		return repo, nil
	case config.DriverMongo:
		return a.openMongo(ctx)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", a.Config.StoreDriver)
	}
}

func (a *AccountApp) openPostgres(ctx context.Context) (repository.Repository, error) {
	pool, err := db.NewPool(ctx, a.Log, a.Config.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closePool(pool))

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	db.StartPoolMetrics(metricsCtx, pool, constants.DBPoolMetricsInterval)
	a.closers = append(a.closers, func(context.Context) error {
		stopMetrics()
		return nil
	})

	repo := repository.NewPgRepository(pool, a.Log)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure account schema: %w", err)
	}
	return repo, nil
}

func closePool(pool *pgxpool.Pool) func(context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}

func (a *AccountApp) openMongo(ctx context.Context) (repository.Repository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, constants.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(a.Config.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	a.closers = append(a.closers, client.Disconnect)

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	repo := repository.NewMongoRepository(client.Database(a.Config.MongoDatabase).Collection("accounts"))
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure account indexes: %w", err)
	}
	return repo, nil
}

// Close releases store handles in reverse order of acquisition.
func (a *AccountApp) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
