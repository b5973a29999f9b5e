package ledger

import (
	"fmt"
	"strings"

	"bank-ledger/pkg/money"
)

// SeedAccount is an account created at construction time. There is no
// runtime account creation; the seed set is the account set.
type SeedAccount struct {
	ID      string
	Balance money.Amount
}

// Config holds ledger construction configuration.
type Config struct {
	// Seed is the initial account set
	Seed []SeedAccount
}

// DefaultConfig returns the demo seed: three accounts used by tests and the
// interactive client.
func DefaultConfig() Config {
	return Config{
		Seed: []SeedAccount{
			{ID: "user1", Balance: money.MustParse("1000.00")},
			{ID: "user2", Balance: money.MustParse("500.00")},
			{ID: "user3", Balance: money.MustParse("2000.00")},
		},
	}
}

// Validate checks that the seed set is usable: at least one account,
// non-empty unique ids, non-negative balances.
func (c *Config) Validate() error {
	if len(c.Seed) == 0 {
		return fmt.Errorf("ledger config: empty seed set")
	}

	seen := make(map[string]struct{}, len(c.Seed))
	for _, sa := range c.Seed {
		if sa.ID == "" {
			return fmt.Errorf("ledger config: empty account id")
		}
		if strings.ContainsAny(sa.ID, " \t\n=,") {
			return fmt.Errorf("ledger config: invalid account id %q", sa.ID)
		}
		if _, dup := seen[sa.ID]; dup {
			return fmt.Errorf("ledger config: duplicate account id %q", sa.ID)
		}
		seen[sa.ID] = struct{}{}
		if sa.Balance < 0 {
			return fmt.Errorf("ledger config: negative balance for %q", sa.ID)
		}
	}
	return nil
}

// ParseSeed parses a seed specification of the form
// "user1=1000.00,user2=500.00". Used for the LEDGER_SEED environment
// override.
func ParseSeed(spec string) ([]SeedAccount, error) {
	parts := strings.Split(spec, ",")
	seed := make([]SeedAccount, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, raw, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("seed entry %q: missing '='", part)
		}
		balance, err := money.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("seed entry %q: %w", part, err)
		}
		seed = append(seed, SeedAccount{ID: strings.TrimSpace(id), Balance: balance})
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed spec %q: no accounts", spec)
	}
	return seed, nil
}
