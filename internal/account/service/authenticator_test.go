package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/account/repository"
	"github.com/AlibekovAA/account-core/internal/account/service"
	commoncrypto "github.com/AlibekovAA/account-core/internal/common/crypto"
)

var storedAccount = domain.Account{
	ID:       "account-1",
	Username: "sampleuser",
	Email:    "user@example.com",
	Digest:   "hashed:foobar",
}

func setupAuthenticator(t *testing.T) (*service.Authenticator, *mockAccountRepo, *mockHasher) {
	t.Helper()
	repo := &mockAccountRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (domain.Account, error) {
			if username == storedAccount.Username {
				return storedAccount, nil
			}
			return domain.Account{}, repository.ErrAccountNotFound
		},
	}
	hasher := &mockHasher{}

	auth, err := service.NewAuthenticator(repo, hasher, testLogger())
	require.NoError(t, err)
	return auth, repo, hasher
}

func TestAuthenticator_Success(t *testing.T) {
	auth, _, _ := setupAuthenticator(t)

	account, ok, err := auth.Authenticate(context.Background(), "sampleuser", "foobar")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, storedAccount, account)
}

func TestAuthenticator_FailuresAreIndistinguishable(t *testing.T) {
	auth, _, hasher := setupAuthenticator(t)
	ctx := context.Background()

	wrongAccount, wrongOK, wrongErr := auth.Authenticate(ctx, "sampleuser", "wrongpass")
	unknownAccount, unknownOK, unknownErr := auth.Authenticate(ctx, "nobody", "foobar")

	assert.NoError(t, wrongErr)
	assert.NoError(t, unknownErr)
	assert.False(t, wrongOK)
	assert.False(t, unknownOK)
	assert.Equal(t, domain.Account{}, wrongAccount)
	assert.Equal(t, wrongAccount, unknownAccount)

	// Both paths run exactly one digest comparison.
	require.Len(t, hasher.verified, 2)
	assert.Equal(t, storedAccount.Digest, hasher.verified[0])
	assert.NotEqual(t, storedAccount.Digest, hasher.verified[1])
}

func TestAuthenticator_UsernameIsCaseSensitive(t *testing.T) {
	auth, _, _ := setupAuthenticator(t)

	_, ok, err := auth.Authenticate(context.Background(), "SampleUser", "foobar")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticator_LookupFailureIsAnError(t *testing.T) {
	auth, repo, _ := setupAuthenticator(t)
	storeErr := errors.New("timeout")
	repo.findByUsernameFunc = func(context.Context, string) (domain.Account, error) {
		return domain.Account{}, storeErr
	}

	_, ok, err := auth.Authenticate(context.Background(), "sampleuser", "foobar")
	assert.False(t, ok)
	assert.ErrorIs(t, err, service.ErrAccountStoreFailure)
	assert.ErrorIs(t, err, storeErr)
}

func TestAuthenticator_CorruptedDigestIsAnError(t *testing.T) {
	auth, _, hasher := setupAuthenticator(t)
	hasher.verifyFunc = func(string, string) (bool, error) {
		return false, commoncrypto.ErrMalformedDigest
	}

	_, ok, err := auth.Authenticate(context.Background(), "sampleuser", "foobar")
	assert.False(t, ok)
	assert.ErrorIs(t, err, service.ErrDigestCorrupted)
	assert.ErrorIs(t, err, commoncrypto.ErrMalformedDigest)
}

func TestNewAuthenticator_DecoyHashFailure(t *testing.T) {
	hasher := &mockHasher{
		hashFunc: func(string) (string, error) {
			return "", errors.New("no entropy")
		},
	}

	_, err := service.NewAuthenticator(&mockAccountRepo{}, hasher, testLogger())
	assert.Error(t, err)
}
