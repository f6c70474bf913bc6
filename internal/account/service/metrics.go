package service

import (
	"strconv"
	"time"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/observability/metrics"
)

const (
	outcomeCreated   = "created"
	outcomeRejected  = "rejected"
	outcomeError     = "error"
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
)

func recordCreation(outcome string) {
	metrics.AccountCreationsTotal.WithLabelValues(outcome).Inc()
}

func recordViolations(violations domain.ValidationErrors) {
	for _, v := range violations {
		metrics.AccountValidationViolations.WithLabelValues(string(v.Field), string(v.Rule)).Inc()
	}
}

func recordDuplicateRace(field domain.Field) {
	metrics.AccountDuplicateRaces.WithLabelValues(string(field)).Inc()
}

func recordAuthentication(outcome string, start time.Time) {
	metrics.AuthenticationAttemptsTotal.WithLabelValues(outcome).Inc()
	metrics.AuthenticationDurationSeconds.Observe(time.Since(start).Seconds())
}

func recordAdminToggle(isAdmin bool) {
	metrics.AdminTogglesTotal.WithLabelValues(strconv.FormatBool(isAdmin)).Inc()
}
