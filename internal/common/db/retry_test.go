package db

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/AlibekovAA/account-core/internal/common/logger"
)

var fastRetry = RetryConfig{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     2 * time.Millisecond,
	Multiplier:   2,
}

func TestIsRetryableError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryableError(tc.err))
		})
	}
}

func TestRetryWithBackoff_RetriesTransientFailures(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "test", "debug")
	calls := 0

	err := RetryWithBackoff(context.Background(), log, fastRetry, func(context.Context) error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40P01"}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_StopsOnPermanentFailure(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "test", "debug")
	permanent := errors.New("syntax error")
	calls := 0

	err := RetryWithBackoff(context.Background(), log, fastRetry, func(context.Context) error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "test", "debug")
	calls := 0

	err := RetryWithBackoff(context.Background(), log, fastRetry, func(context.Context) error {
		calls++
		return &pgconn.PgError{Code: "08000"}
	})

	assert.Error(t, err)
	assert.Equal(t, fastRetry.MaxAttempts, calls)
}
