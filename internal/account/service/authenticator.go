package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/account/repository"
	commoncrypto "github.com/AlibekovAA/account-core/internal/common/crypto"
	"github.com/AlibekovAA/account-core/internal/common/logger"
)

type Authenticator struct {
	repo   repository.Repository
	hasher commoncrypto.PasswordHasher
	log    *logger.Logger
	// decoyDigest is verified against when the username is unknown so both
	// rejection paths pay for one digest comparison.
	decoyDigest string
}

func NewAuthenticator(repo repository.Repository, hasher commoncrypto.PasswordHasher, log *logger.Logger) (*Authenticator, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate decoy password: %w", err)
	}
	decoy, err := hasher.Hash(hex.EncodeToString(buf))
	if err != nil {
		return nil, fmt.Errorf("hash decoy password: %w", err)
	}
	return &Authenticator{
		repo:        repo,
		hasher:      hasher,
		log:         log,
		decoyDigest: decoy,
	}, nil
}

// Authenticate looks the username up exactly and verifies the password.
// An unknown username and a wrong password both return (zero, false, nil).
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (domain.Account, bool, error) {
	start := time.Now()

	account, err := a.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			_, _ = a.hasher.Verify(password, a.decoyDigest)
			a.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "login_user_not_found",
			}).Warn("login failed: unknown username")
			recordAuthentication(outcomeFailed, start)
			return domain.Account{}, false, nil
		}
		a.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_lookup_failed",
		}).Errorf("login failed: %v", err)
		recordAuthentication(outcomeError, start)
		return domain.Account{}, false, ErrAccountStoreFailure.WithCause(err)
	}

	ok, err := a.hasher.Verify(password, account.Digest)
	if err != nil {
		a.log.WithFields(ctx, logger.Fields{
			"username":   username,
			"account_id": string(account.ID),
			"action":     "login_digest_corrupted",
		}).Errorf("login failed: %v", err)
		recordAuthentication(outcomeError, start)
		return domain.Account{}, false, ErrDigestCorrupted.WithCause(err)
	}
	if !ok {
		a.log.WithFields(ctx, logger.Fields{
			"username":   username,
			"account_id": string(account.ID),
			"action":     "login_invalid_password",
		}).Warn("login failed: invalid password")
		recordAuthentication(outcomeFailed, start)
		return domain.Account{}, false, nil
	}

	a.log.WithFields(ctx, logger.Fields{
		"username":   username,
		"account_id": string(account.ID),
		"action":     "login_success",
	}).Info("login success")
	recordAuthentication(outcomeSucceeded, start)

	return account, true, nil
}
