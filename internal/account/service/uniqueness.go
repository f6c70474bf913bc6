package service

import (
	"context"
	"errors"

	"github.com/AlibekovAA/account-core/internal/account/repository"
)

// UniquenessChecker is a fast pre-insert check. The store's unique
// constraint remains the authoritative guard.
type UniquenessChecker struct {
	repo repository.Repository
}

func NewUniquenessChecker(repo repository.Repository) UniquenessChecker {
	return UniquenessChecker{repo: repo}
}

func (c UniquenessChecker) IsUsernameTaken(ctx context.Context, candidate string) (bool, error) {
	_, err := c.repo.FindByUsernameCI(ctx, candidate)
	return taken(err)
}

func (c UniquenessChecker) IsEmailTaken(ctx context.Context, candidate string) (bool, error) {
	_, err := c.repo.FindByEmailCI(ctx, candidate)
	return taken(err)
}

func taken(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrAccountNotFound):
		return false, nil
	default:
		return false, err
	}
}
