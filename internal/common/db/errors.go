package db

import (
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/account-core/internal/observability/metrics"
)

// ObserveQuery records duration and, for unexpected failures, an error count.
// Errors listed in expected are outcomes, not failures.
func ObserveQuery(store, operation string, startTime time.Time, err error, expected ...error) {
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, store).Observe(time.Since(startTime).Seconds())

	if err == nil {
		return
	}
	for _, e := range expected {
		if errors.Is(err, e) {
			return
		}
	}
	metrics.DBQueryErrors.WithLabelValues(operation, store, fmt.Sprintf("%T", err)).Inc()
}

func HandleQueryError(err error, notFoundErr error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundErr
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
