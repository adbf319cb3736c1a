package wallet

import (
	"context"
	"errors"
)

var (
	// ErrNotFound occurs when no wallet exists for the given identifier.
	ErrNotFound = errors.New("wallet not found")

	// ErrExists occurs when a wallet is created twice for the same owner.
	ErrExists = errors.New("wallet exists")
)

// Store persists wallets. Update is the transactional read-modify-write
// primitive every balance mutation goes through: fn runs against a snapshot
// of the wallet and either all of its balance changes commit or none do.
// Returning an error from fn aborts the update with no observable change.
type Store interface {
	Create(ctx context.Context, w Wallet) error
	Get(ctx context.Context, id string) (Wallet, error)
	GetByOwner(ctx context.Context, ownerID string) (Wallet, error)
	Update(ctx context.Context, id string, fn func(*Wallet) error) (Wallet, error)
}
