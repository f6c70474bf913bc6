package repository

import (
	"context"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/common/resilience"
)

// ResilientRepository routes every call through a circuit breaker. Not-found
// and duplicate outcomes pass through without counting as failures.
type ResilientRepository struct {
	next    Repository
	breaker *resilience.CircuitBreaker
}

func NewResilientRepository(next Repository, breaker *resilience.CircuitBreaker) *ResilientRepository {
	return &ResilientRepository{next: next, breaker: breaker}
}

func (r *ResilientRepository) find(ctx context.Context, fn func(context.Context) (domain.Account, error)) (domain.Account, error) {
	var acc domain.Account
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		acc, err = fn(ctx)
		return err
	})
	if err != nil {
		return domain.Account{}, err
	}
	return acc, nil
}

func (r *ResilientRepository) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	return r.find(ctx, func(ctx context.Context) (domain.Account, error) {
		return r.next.FindByID(ctx, id)
	})
}

func (r *ResilientRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.find(ctx, func(ctx context.Context) (domain.Account, error) {
		return r.next.FindByUsername(ctx, username)
	})
}

func (r *ResilientRepository) FindByUsernameCI(ctx context.Context, username string) (domain.Account, error) {
	return r.find(ctx, func(ctx context.Context) (domain.Account, error) {
		return r.next.FindByUsernameCI(ctx, username)
	})
}

func (r *ResilientRepository) FindByEmailCI(ctx context.Context, email string) (domain.Account, error) {
	return r.find(ctx, func(ctx context.Context) (domain.Account, error) {
		return r.next.FindByEmailCI(ctx, email)
	})
}

func (r *ResilientRepository) Insert(ctx context.Context, account domain.Account) error {
	return r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.next.Insert(ctx, account)
	})
}

func (r *ResilientRepository) Update(ctx context.Context, account domain.Account) error {
	return r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.next.Update(ctx, account)
	})
}
