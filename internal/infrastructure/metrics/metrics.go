package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Wallet service metrics
var (
	TransactionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_transactions_created_total",
			Help: "Total number of ledger entries committed, by kind",
		},
		[]string{"kind"},
	)

	TransactionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_transaction_errors_total",
			Help: "Total number of rejected transaction requests, by error type",
		},
		[]string{"error_type"},
	)

	IdentityValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_identity_validations_total",
			Help: "Total number of identity validation calls, by outcome",
		},
		[]string{"outcome"},
	)

	IdentityValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wallet_identity_validation_duration_seconds",
			Help:    "Duration of identity validation calls",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)
)

// Identity service metrics
var (
	ValidationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_validation_requests_total",
			Help: "Total number of internal validation requests served, by result",
		},
		[]string{"result"},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_users_registered_total",
			Help: "Total number of users registered",
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_login_attempts_total",
			Help: "Total number of login attempts, by result",
		},
		[]string{"result"},
	)
)
