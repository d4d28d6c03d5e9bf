package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Transaction metrics
	TransactionsApplied *prometheus.CounterVec
	TransactionErrors   *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Ledger audit metrics
	ConsistencyChecks *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "corebank_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "corebank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		TransactionsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_transactions_applied_total",
				Help: "Total credits and debits applied by direction",
			},
			[]string{"direction"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_transaction_errors_total",
				Help: "Total transaction errors by type",
			},
			[]string{"error_type"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		ConsistencyChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_consistency_checks_total",
				Help: "Total ledger consistency checks by result",
			},
			[]string{"result"},
		),
	}
}
