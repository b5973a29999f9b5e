package metrics

import "time"

// Collector defines the interface for collecting ledger service metrics.
// Implementations can export to various backends (Prometheus, in-memory for
// tests, etc.).
type Collector interface {
	// RecordRequest records one service operation with its outcome status
	// ("ok", "not_found", "invalid_argument", "insufficient_funds",
	// "internal") and duration.
	RecordRequest(op string, status string, duration time.Duration)

	// RecordTransfer records a completed transfer and the amount moved, in
	// minor units.
	RecordTransfer(amountMinorUnits int64)

	// RecordLogSize records the current transaction log length.
	RecordLogSize(size int)
}

// Operation names used as the "op" label.
const (
	OpGetBalance    = "get_balance"
	OpUpdateBalance = "update_balance"
	OpTransfer      = "initiate_transfer"
	OpHistory       = "get_transaction_history"
)

// NoOpCollector is a no-op implementation of Collector.
// It's used as the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordRequest does nothing.
func (NoOpCollector) RecordRequest(op string, status string, duration time.Duration) {}

// RecordTransfer does nothing.
func (NoOpCollector) RecordTransfer(amountMinorUnits int64) {}

// RecordLogSize does nothing.
func (NoOpCollector) RecordLogSize(size int) {}
