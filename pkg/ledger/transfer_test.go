package ledger

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"

	"bank-ledger/pkg/money"
)

func testEngine(t *testing.T) (*TransferEngine, *AccountStore, *TransactionLog) {
	t.Helper()
	store := testStore(t)
	log := NewTransactionLog()
	return NewTransferEngine(store, log), store, log
}

// totalBalance sums every account balance; transfers must conserve it.
func totalBalance(t *testing.T, store *AccountStore) money.Amount {
	t.Helper()
	var total money.Amount
	for _, id := range store.IDs() {
		balance, err := store.Balance(id)
		if err != nil {
			t.Fatalf("Balance(%s): %v", id, err)
		}
		if balance < 0 {
			t.Fatalf("Negative balance on %s: %s", id, balance)
		}
		total += balance
	}
	return total
}

func TestTransferEngine_Success(t *testing.T) {
	engine, store, log := testEngine(t)

	result, err := engine.Transfer("user1", "user2", money.MustParse("200.00"), "rent")
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	if result.FromBalance != money.MustParse("800.00") {
		t.Errorf("From balance = %s, want 800.00", result.FromBalance)
	}
	if result.ToBalance != money.MustParse("700.00") {
		t.Errorf("To balance = %s, want 700.00", result.ToBalance)
	}

	if b, _ := store.Balance("user1"); b != money.MustParse("800.00") {
		t.Errorf("Stored user1 balance = %s, want 800.00", b)
	}
	if b, _ := store.Balance("user2"); b != money.MustParse("700.00") {
		t.Errorf("Stored user2 balance = %s, want 700.00", b)
	}

	entries := log.ByParticipant("user1")
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	tx := entries[0]
	if tx.ID == "" {
		t.Error("Expected a generated transaction id")
	}
	if tx.ID != result.Tx.ID {
		t.Error("Result and log disagree on transaction id")
	}
	if tx.From != "user1" || tx.To != "user2" {
		t.Errorf("Wrong participants: %s -> %s", tx.From, tx.To)
	}
	if tx.Amount != money.MustParse("200.00") {
		t.Errorf("Logged amount = %s, want 200.00", tx.Amount)
	}
	if tx.Description != "rent" {
		t.Errorf("Description = %q, want %q", tx.Description, "rent")
	}
	if tx.Timestamp.IsZero() {
		t.Error("Expected a timestamp")
	}
}

func TestTransferEngine_DefaultDescription(t *testing.T) {
	engine, _, log := testEngine(t)

	if _, err := engine.Transfer("user1", "user2", 100, ""); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	entries := log.ByParticipant("user1")
	if entries[0].Description != DefaultDescription {
		t.Errorf("Description = %q, want %q", entries[0].Description, DefaultDescription)
	}
}

func TestTransferEngine_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		amount  money.Amount
		wantErr func(error) bool
	}{
		{name: "zero amount", from: "user1", to: "user2", amount: 0, wantErr: IsInvalidAmount},
		{name: "negative amount", from: "user1", to: "user2", amount: -500, wantErr: IsInvalidAmount},
		{name: "unknown source", from: "ghost", to: "user2", amount: 100, wantErr: IsNotFound},
		{name: "unknown destination", from: "user1", to: "ghost", amount: 100, wantErr: IsNotFound},
		{name: "insufficient funds", from: "user2", to: "user1", amount: money.MustParse("500.01"), wantErr: IsInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, store, log := testEngine(t)
			before := totalBalance(t, store)

			_, err := engine.Transfer(tt.from, tt.to, tt.amount, "")
			if !tt.wantErr(err) {
				t.Fatalf("Transfer error = %v, wrong class", err)
			}

			// A rejected transfer leaves balances and log untouched.
			if after := totalBalance(t, store); after != before {
				t.Errorf("Total changed: %s -> %s", before, after)
			}
			if b, _ := store.Balance("user1"); b != money.MustParse("1000.00") {
				t.Errorf("user1 balance changed to %s", b)
			}
			if log.Len() != 0 {
				t.Errorf("Expected empty log, got %d entries", log.Len())
			}
		})
	}
}

func TestTransferEngine_SourceCheckedBeforeDestination(t *testing.T) {
	engine, _, _ := testEngine(t)

	_, err := engine.Transfer("ghost-from", "ghost-to", 100, "")
	if !IsNotFound(err) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if want := `source account "ghost-from"`; !strings.Contains(err.Error(), want) {
		t.Errorf("Error %q does not name the source account", err)
	}
}

func TestTransferEngine_SameAccount(t *testing.T) {
	engine, store, log := testEngine(t)

	// Nets to zero but is still funds-checked and logged.
	result, err := engine.Transfer("user1", "user1", money.MustParse("100.00"), "self")
	if err != nil {
		t.Fatalf("Same-account transfer failed: %v", err)
	}
	if result.FromBalance != money.MustParse("1000.00") || result.ToBalance != money.MustParse("1000.00") {
		t.Errorf("Balances moved on a same-account transfer: %s / %s", result.FromBalance, result.ToBalance)
	}
	if log.Len() != 1 {
		t.Errorf("Expected 1 log entry, got %d", log.Len())
	}

	if _, err := engine.Transfer("user2", "user2", money.MustParse("500.01"), ""); !IsInsufficientFunds(err) {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}
	if b, _ := store.Balance("user2"); b != money.MustParse("500.00") {
		t.Errorf("user2 balance changed to %s", b)
	}
}

func TestTransferEngine_ConcurrentSamePair(t *testing.T) {
	engine, store, log := testEngine(t)
	before := totalBalance(t, store)

	// N transfers alternating direction between the same two accounts. Any
	// serial order of these leaves user1 and user2 where they started, and
	// every intermediate state is covered by the seed balances.
	const rounds = 200
	var g errgroup.Group
	for i := 0; i < rounds; i++ {
		from, to := "user1", "user2"
		if i%2 == 1 {
			from, to = to, from
		}
		g.Go(func() error {
			_, err := engine.Transfer(from, to, money.MustParse("1.00"), "ping-pong")
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Concurrent transfer failed: %v", err)
	}

	if after := totalBalance(t, store); after != before {
		t.Errorf("Conservation violated: %s -> %s", before, after)
	}
	if b, _ := store.Balance("user1"); b != money.MustParse("1000.00") {
		t.Errorf("user1 = %s after balanced ping-pong, want 1000.00", b)
	}
	if b, _ := store.Balance("user2"); b != money.MustParse("500.00") {
		t.Errorf("user2 = %s after balanced ping-pong, want 500.00", b)
	}
	if log.Len() != rounds {
		t.Errorf("Expected %d log entries, got %d", rounds, log.Len())
	}
}

func TestTransferEngine_ConcurrentMixedPairs(t *testing.T) {
	// Four accounts, transfers on overlapping and disjoint pairs at once.
	// Deadlock here would hang the test; lost updates break conservation.
	seed := []SeedAccount{
		{ID: "a", Balance: money.MustParse("1000.00")},
		{ID: "b", Balance: money.MustParse("1000.00")},
		{ID: "c", Balance: money.MustParse("1000.00")},
		{ID: "d", Balance: money.MustParse("1000.00")},
	}
	store := NewAccountStore(seed)
	log := NewTransactionLog()
	engine := NewTransferEngine(store, log)

	pairs := [][2]string{
		{"a", "b"}, {"b", "a"},
		{"c", "d"}, {"d", "c"},
		{"a", "c"}, {"d", "b"},
	}

	var g errgroup.Group
	for i := 0; i < 300; i++ {
		pair := pairs[i%len(pairs)]
		g.Go(func() error {
			_, err := engine.Transfer(pair[0], pair[1], money.MustParse("0.50"), "")
			if IsInsufficientFunds(err) {
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Concurrent transfer failed: %v", err)
	}

	if total := totalBalance(t, store); total != money.MustParse("4000.00") {
		t.Errorf("Conservation violated: total = %s, want 4000.00", total)
	}
}

func TestTransferEngine_UniqueTransactionIDs(t *testing.T) {
	engine, _, log := testEngine(t)

	for i := 0; i < 20; i++ {
		if _, err := engine.Transfer("user3", "user2", 100, fmt.Sprintf("n%d", i)); err != nil {
			t.Fatalf("Transfer failed: %v", err)
		}
	}

	seen := make(map[string]struct{})
	for _, tx := range log.ByParticipant("user3") {
		if _, dup := seen[tx.ID]; dup {
			t.Fatalf("Duplicate transaction id %s", tx.ID)
		}
		seen[tx.ID] = struct{}{}
	}
}
