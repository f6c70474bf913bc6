package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/account-core/internal/common/errors"
)

func TestLoadAccountConfig_Defaults(t *testing.T) {
	cfg, err := LoadAccountConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int32(50), cfg.CircuitBreakerThreshold)
	assert.Equal(t, "accounts.db", cfg.SQLitePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadAccountConfig_Overrides(t *testing.T) {
	t.Setenv("ACCOUNT_STORE", " SQLite ")
	t.Setenv("SQLITE_PATH", "/tmp/accounts-test.db")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("ACCOUNT_REQUEST_TIMEOUT", "250ms")

	cfg, err := LoadAccountConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/accounts-test.db", cfg.SQLitePath)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
}

func TestLoadAccountConfig_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("ACCOUNT_STORE", "postgres")

	_, err := LoadAccountConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, commonerrors.ErrMissingRequiredEnv))
}

func TestLoadAccountConfig_MongoRequiresURI(t *testing.T) {
	t.Setenv("ACCOUNT_STORE", "mongo")

	_, err := LoadAccountConfig()
	assert.True(t, errors.Is(err, commonerrors.ErrMissingRequiredEnv))
}

func TestLoadAccountConfig_UnknownDriver(t *testing.T) {
	t.Setenv("ACCOUNT_STORE", "cassandra")

	_, err := LoadAccountConfig()
	assert.True(t, errors.Is(err, commonerrors.ErrUnknownStoreDriver))
}

func TestLoadAccountConfig_BadCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")

	_, err := LoadAccountConfig()
	assert.Error(t, err)
}

func TestLoadAccountConfig_UnparsableDuration(t *testing.T) {
	t.Setenv("ACCOUNT_REQUEST_TIMEOUT", "soon")

	_, err := LoadAccountConfig()
	assert.Error(t, err)
}
