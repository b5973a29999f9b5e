package ledger

import (
	"fmt"
	"sort"
	"sync"

	"bank-ledger/pkg/money"
)

// AccountStore holds per-account balances. The account set is fixed at
// construction; only balances change afterwards, so the map itself needs no
// lock. Each account carries its own mutex, which is what lets transfers on
// disjoint account pairs proceed in parallel.
type AccountStore struct {
	accounts map[string]*account
}

// account is a balance behind an exclusive lock. The check-then-apply in
// applyDelta must happen entirely inside the lock so no other operation can
// observe an intermediate state.
type account struct {
	mu      sync.Mutex
	balance money.Amount
}

// NewAccountStore creates a store seeded with the given accounts.
// Seed balances must already be validated (see Config.Validate).
func NewAccountStore(seed []SeedAccount) *AccountStore {
	accounts := make(map[string]*account, len(seed))
	for _, sa := range seed {
		accounts[sa.ID] = &account{balance: sa.Balance}
	}
	return &AccountStore{accounts: accounts}
}

// Exists reports whether the account id is known.
func (s *AccountStore) Exists(id string) bool {
	_, ok := s.accounts[id]
	return ok
}

// IDs returns all account ids in ascending order.
func (s *AccountStore) IDs() []string {
	ids := make([]string, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Balance returns the current balance of the account.
// The read takes the account lock so it never observes a half-applied
// transfer.
func (s *AccountStore) Balance(id string) (money.Amount, error) {
	acct, ok := s.accounts[id]
	if !ok {
		return 0, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.balance, nil
}

// ApplyDelta atomically adds delta (positive or negative) to the account
// balance and returns the new value. The debit is rejected, leaving the
// balance untouched, if it would go negative.
func (s *AccountStore) ApplyDelta(id string, delta money.Amount) (money.Amount, error) {
	acct, ok := s.accounts[id]
	if !ok {
		return 0, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()

	if acct.balance+delta < 0 {
		return 0, fmt.Errorf("account %q: %w", id, ErrInsufficientFunds)
	}
	acct.balance += delta
	return acct.balance, nil
}
