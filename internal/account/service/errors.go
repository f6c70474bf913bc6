package service

import (
	"errors"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	commonerrors "github.com/AlibekovAA/account-core/internal/common/errors"
)

var (
	ErrAccountStoreFailure = commonerrors.NewDomainError(
		"ACCOUNT_STORE_FAILURE",
		commonerrors.CategoryInternal,
		"account store operation failed",
	)

	ErrDigestCorrupted = commonerrors.NewDomainError(
		"DIGEST_CORRUPTED",
		commonerrors.CategoryInternal,
		"stored password digest is unusable",
	)

	ErrHashFailed = commonerrors.NewDomainError(
		"HASH_FAILED",
		commonerrors.CategoryInternal,
		"failed to hash password",
	)

	ErrAccountNotPersisted = commonerrors.NewDomainError(
		"ACCOUNT_NOT_PERSISTED",
		commonerrors.CategoryValidation,
		"account has not been persisted",
	)
)

func AsValidationErrors(err error) (domain.ValidationErrors, bool) {
	var v domain.ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
