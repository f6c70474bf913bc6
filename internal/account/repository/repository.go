package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/account-core/internal/account/domain"
)

type Repository interface {
	FindByID(ctx context.Context, id domain.ID) (domain.Account, error)
	// FindByUsername matches the username exactly, case included.
	FindByUsername(ctx context.Context, username string) (domain.Account, error)
	FindByUsernameCI(ctx context.Context, username string) (domain.Account, error)
	FindByEmailCI(ctx context.Context, email string) (domain.Account, error)
	// Insert must enforce case-insensitive uniqueness of username and email
	// itself and report a clash as *DuplicateConstraintViolation.
	Insert(ctx context.Context, account domain.Account) error
	Update(ctx context.Context, account domain.Account) error
}

var ErrAccountNotFound = errors.New("account not found")

type DuplicateConstraintViolation struct {
	Field domain.Field
}

func (e *DuplicateConstraintViolation) Error() string {
	return fmt.Sprintf("duplicate %s", e.Field)
}

func AsDuplicate(err error) (*DuplicateConstraintViolation, bool) {
	var dup *DuplicateConstraintViolation
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}

// IsExpected reports store outcomes that are not infrastructure failures.
func IsExpected(err error) bool {
	if errors.Is(err, ErrAccountNotFound) {
		return true
	}
	_, ok := AsDuplicate(err)
	return ok
}
