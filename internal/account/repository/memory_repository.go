package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/AlibekovAA/account-core/internal/account/domain"
)

type MemoryRepository struct {
	mu         sync.RWMutex
	accounts   map[domain.ID]domain.Account
	byUsername map[string]domain.ID
	byEmail    map[string]domain.ID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts:   map[domain.ID]domain.Account{},
		byUsername: map[string]domain.ID{},
		byEmail:    map[string]domain.ID{},
	}
}

func foldKey(s string) string {
	return strings.ToLower(s)
}

func (r *MemoryRepository) FindByID(_ context.Context, id domain.ID) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if acc, ok := r.accounts[id]; ok {
		return acc, nil
	}
	return domain.Account{}, ErrAccountNotFound
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[foldKey(username)]
	if !ok {
		return domain.Account{}, ErrAccountNotFound
	}
	acc := r.accounts[id]
	if acc.Username != username {
		return domain.Account{}, ErrAccountNotFound
	}
	return acc, nil
}

func (r *MemoryRepository) FindByUsernameCI(_ context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.byUsername[foldKey(username)]; ok {
		return r.accounts[id], nil
	}
	return domain.Account{}, ErrAccountNotFound
}

func (r *MemoryRepository) FindByEmailCI(_ context.Context, email string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.byEmail[foldKey(email)]; ok {
		return r.accounts[id], nil
	}
	return domain.Account{}, ErrAccountNotFound
}

func (r *MemoryRepository) Insert(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	usernameKey := foldKey(account.Username)
	emailKey := foldKey(account.Email)

	if _, taken := r.byUsername[usernameKey]; taken {
		return &DuplicateConstraintViolation{Field: domain.FieldUsername}
	}
	if _, taken := r.byEmail[emailKey]; taken {
		return &DuplicateConstraintViolation{Field: domain.FieldEmail}
	}

	r.accounts[account.ID] = account
	r.byUsername[usernameKey] = account.ID
	r.byEmail[emailKey] = account.ID
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.ID]
	if !ok {
		return ErrAccountNotFound
	}

	stored.IsAdmin = account.IsAdmin
	stored.UpdatedAt = account.UpdatedAt
	r.accounts[account.ID] = stored
	return nil
}
