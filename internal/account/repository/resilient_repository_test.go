package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	commonerrors "github.com/AlibekovAA/account-core/internal/common/errors"
	"github.com/AlibekovAA/account-core/internal/common/resilience"
)

type failingRepository struct {
	*MemoryRepository
	err error
}

func (f *failingRepository) FindByUsername(context.Context, string) (domain.Account, error) {
	return domain.Account{}, f.err
}

func newTestResilient(next Repository) *ResilientRepository {
	return NewResilientRepository(next, resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:  2,
		Timeout:    time.Second,
		ResetAfter: time.Minute,
		IsExpected: IsExpected,
	}))
}

func TestResilientRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) Repository {
		return newTestResilient(NewMemoryRepository())
	})
}

func TestResilientRepository_NotFoundDoesNotOpenCircuit(t *testing.T) {
	repo := newTestResilient(NewMemoryRepository())

	for i := 0; i < 5; i++ {
		_, err := repo.FindByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	}
}

func TestResilientRepository_OpensOnBackendFailures(t *testing.T) {
	backendErr := errors.New("store unreachable")
	repo := newTestResilient(&failingRepository{MemoryRepository: NewMemoryRepository(), err: backendErr})

	_, err := repo.FindByUsername(context.Background(), "u")
	assert.ErrorIs(t, err, backendErr)
	_, err = repo.FindByUsername(context.Background(), "u")
	assert.ErrorIs(t, err, backendErr)

	_, err = repo.FindByUsername(context.Background(), "u")
	assert.ErrorIs(t, err, commonerrors.ErrCircuitOpen)
}
