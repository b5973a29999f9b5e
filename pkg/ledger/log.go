package ledger

import (
	"sync"
	"time"

	"bank-ledger/pkg/money"
)

// Transaction is an immutable record of a completed transfer.
type Transaction struct {
	ID          string
	From        string
	To          string
	Amount      money.Amount
	Description string
	Timestamp   time.Time
}

// TransactionLog is an append-only, insertion-ordered record of completed
// transfers. Entries are never reordered or mutated after append.
type TransactionLog struct {
	mu      sync.RWMutex
	entries []Transaction
}

// NewTransactionLog creates an empty log.
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{}
}

// Append adds the transaction at the end of the log and returns the stored
// record. The timestamp is assigned under the log lock, so log order implies
// non-decreasing timestamps. An in-memory append cannot fail; the error is
// kept in the signature so callers surface a failing backend instead of
// silently dropping history.
func (l *TransactionLog) Append(tx Transaction) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx.Timestamp = time.Now().UTC()
	l.entries = append(l.entries, tx)
	return tx, nil
}

// ByParticipant returns, in append order, every transaction where id is the
// source or the destination. A participant with no transactions gets an empty
// slice, not nil, so callers can distinguish "no history" from "no answer".
func (l *TransactionLog) ByParticipant(id string) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Transaction, 0)
	for _, tx := range l.entries {
		if tx.From == id || tx.To == id {
			out = append(out, tx)
		}
	}
	return out
}

// Len returns the number of appended transactions.
func (l *TransactionLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
