package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"bank-ledger/pkg/money"
)

// DefaultDescription is used when a transfer carries no description.
const DefaultDescription = "Transfer"

// TransferEngine moves money between two accounts atomically. It owns the
// cross-account locking policy: both account locks are always taken in
// ascending id order, regardless of transfer direction, so two transfers that
// share an account can never deadlock against each other.
type TransferEngine struct {
	store *AccountStore
	log   *TransactionLog
}

// NewTransferEngine creates an engine over the given store and log.
func NewTransferEngine(store *AccountStore, log *TransactionLog) *TransferEngine {
	return &TransferEngine{store: store, log: log}
}

// TransferResult reports the post-transfer balances and the appended record.
type TransferResult struct {
	FromBalance money.Amount
	ToBalance   money.Amount
	Tx          Transaction
}

// Transfer debits from and credits to by amount as a single atomic step: no
// concurrent transfer or balance read touching either account can observe the
// debit without the credit. A rejected transfer leaves both balances and the
// log untouched.
//
// The transaction record is appended after both balance mutations commit. If
// the append fails the balances are NOT rolled back; the result carries the
// new balances and the error wraps ErrLogAppend.
func (e *TransferEngine) Transfer(from, to string, amount money.Amount, description string) (TransferResult, error) {
	if amount <= 0 {
		return TransferResult{}, fmt.Errorf("transfer of %s: %w", amount, ErrInvalidAmount)
	}

	src, ok := e.store.accounts[from]
	if !ok {
		return TransferResult{}, fmt.Errorf("source account %q: %w", from, ErrNotFound)
	}
	dst, ok := e.store.accounts[to]
	if !ok {
		return TransferResult{}, fmt.Errorf("destination account %q: %w", to, ErrNotFound)
	}

	var result TransferResult
	if from == to {
		// Nets to zero but is still funds-checked and logged.
		src.mu.Lock()
		if src.balance < amount {
			src.mu.Unlock()
			return TransferResult{}, fmt.Errorf("source account %q: %w", from, ErrInsufficientFunds)
		}
		result.FromBalance = src.balance
		result.ToBalance = src.balance
		src.mu.Unlock()
	} else {
		// Fixed global lock order: ascending by account id.
		first, second := src, dst
		if from > to {
			first, second = dst, src
		}
		first.mu.Lock()
		second.mu.Lock()

		if src.balance < amount {
			second.mu.Unlock()
			first.mu.Unlock()
			return TransferResult{}, fmt.Errorf("source account %q: %w", from, ErrInsufficientFunds)
		}
		src.balance -= amount
		dst.balance += amount
		result.FromBalance = src.balance
		result.ToBalance = dst.balance

		second.mu.Unlock()
		first.mu.Unlock()
	}

	if description == "" {
		description = DefaultDescription
	}

	tx, err := e.log.Append(Transaction{
		ID:          uuid.NewString(),
		From:        from,
		To:          to,
		Amount:      amount,
		Description: description,
	})
	if err != nil {
		// The transfer already took effect; report, don't roll back.
		return result, fmt.Errorf("%w: %v", ErrLogAppend, err)
	}
	result.Tx = tx

	return result, nil
}
