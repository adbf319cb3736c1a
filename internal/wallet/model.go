package wallet

import (
	"time"

	"github.com/google/uuid"

	"github.com/paper-swap/paper_swap/internal/currency"
	"github.com/paper-swap/paper_swap/internal/fixedpoint"
)

const (
	// SeedMantissa and SeedScale define the opening balance every currency
	// slot starts with: 1,000,000 at 4 decimal places, i.e. 100.0000 units.
	SeedMantissa = 1_000_000
	SeedScale    = 4
)

// Wallet is a per-identity fantasy balance sheet. Every supported currency
// always has exactly one balance entry; there are no partial wallets.
type Wallet struct {
	ID        string
	OwnerID   string
	Balances  map[currency.Symbol]fixedpoint.Decimal
	CreatedAt time.Time
}

// New builds a freshly seeded wallet for the owner.
func New(ownerID string) Wallet {
	balances := make(map[currency.Symbol]fixedpoint.Decimal, len(currency.Symbols()))
	for _, sym := range currency.Symbols() {
		balances[sym] = fixedpoint.New(SeedMantissa, SeedScale)
	}
	return Wallet{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Balances:  balances,
		CreatedAt: time.Now().UTC(),
	}
}

// Balance returns the stored balance for the symbol.
func (w Wallet) Balance(sym currency.Symbol) fixedpoint.Decimal {
	return w.Balances[sym]
}

// Clone returns a deep copy so callers can mutate balances without aliasing
// store-held state.
func (w Wallet) Clone() Wallet {
	balances := make(map[currency.Symbol]fixedpoint.Decimal, len(w.Balances))
	for sym, bal := range w.Balances {
		balances[sym] = bal
	}
	clone := w
	clone.Balances = balances
	return clone
}
