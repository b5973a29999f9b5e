package ledger

import "errors"

// Domain errors returned by the ledger core.
// The service facade translates these into its status taxonomy; the core
// itself never formats user-facing messages.
var (
	// ErrNotFound is returned when a referenced account id does not exist
	ErrNotFound = errors.New("ledger: account not found")

	// ErrInsufficientFunds is returned when a debit would drive a balance negative
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrInvalidAmount is returned when a transfer amount is not strictly positive
	ErrInvalidAmount = errors.New("ledger: amount must be positive")

	// ErrLogAppend is returned when a transfer committed but its history
	// record could not be appended. The balance change is NOT rolled back;
	// callers must surface this rather than swallow it.
	ErrLogAppend = errors.New("ledger: transaction log append failed")
)

// IsNotFound checks whether the error indicates an unknown account.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInsufficientFunds checks whether the error indicates a rejected debit.
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsInvalidAmount checks whether the error indicates a non-positive amount.
func IsInvalidAmount(err error) bool {
	return errors.Is(err, ErrInvalidAmount)
}

// ClassifyError returns a string classification of the error for metrics
// labels and log fields.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrLogAppend):
		return "log_append"
	default:
		return "other"
	}
}
