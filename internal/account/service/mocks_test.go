package service_test

import (
	"context"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/account/repository"
)

type mockAccountRepo struct {
	findByIDFunc         func(ctx context.Context, id domain.ID) (domain.Account, error)
	findByUsernameFunc   func(ctx context.Context, username string) (domain.Account, error)
	findByUsernameCIFunc func(ctx context.Context, username string) (domain.Account, error)
	findByEmailCIFunc    func(ctx context.Context, email string) (domain.Account, error)
	insertFunc           func(ctx context.Context, account domain.Account) error
	updateFunc           func(ctx context.Context, account domain.Account) error
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockAccountRepo) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockAccountRepo) FindByUsernameCI(ctx context.Context, username string) (domain.Account, error) {
	if m.findByUsernameCIFunc != nil {
		return m.findByUsernameCIFunc(ctx, username)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockAccountRepo) FindByEmailCI(ctx context.Context, email string) (domain.Account, error) {
	if m.findByEmailCIFunc != nil {
		return m.findByEmailCIFunc(ctx, email)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockAccountRepo) Insert(ctx context.Context, account domain.Account) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) Update(ctx context.Context, account domain.Account) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, account)
	}
	return nil
}

type mockHasher struct {
	hashFunc   func(password string) (string, error)
	verifyFunc func(password, digest string) (bool, error)
	verified   []string
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(password, digest string) (bool, error) {
	m.verified = append(m.verified, digest)
	if m.verifyFunc != nil {
		return m.verifyFunc(password, digest)
	}
	return digest == "hashed:"+password, nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "account-1", nil
}
