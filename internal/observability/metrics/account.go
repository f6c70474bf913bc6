package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AccountCreationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_creations_total",
			Help: "Total number of account creation attempts by outcome",
		},
		[]string{"outcome"},
	)

	AccountValidationViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_validation_violations_total",
			Help: "Total number of rejected account fields by field and rule",
		},
		[]string{"field", "rule"},
	)

	AccountDuplicateRaces = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_duplicate_races_total",
			Help: "Duplicates caught by the store constraint after the uniqueness pre-check passed",
		},
		[]string{"field"},
	)

	AuthenticationAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_authentication_attempts_total",
			Help: "Total number of authentication attempts by outcome",
		},
		[]string{"outcome"},
	)

	AuthenticationDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "account_authentication_duration_seconds",
			Help:    "Duration of authentication attempts in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	AdminTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_admin_toggles_total",
			Help: "Total number of admin flag changes by resulting state",
		},
		[]string{"is_admin"},
	)
)
