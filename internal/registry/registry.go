package registry

import (
	"context"
	"errors"
)

// ErrAlreadyRegistered occurs when an identity attempts a second wallet claim.
var ErrAlreadyRegistered = errors.New("identity already registered")

// Registry tracks which identities have claimed a wallet. TryClaim is the
// single atomic check-and-insert primitive; callers must not implement the
// claim as a Claimed check followed by an insert.
type Registry interface {
	// TryClaim marks the identity as claimed. It returns false, without
	// error, when the identity was already present.
	TryClaim(ctx context.Context, identity string) (bool, error)

	// Revoke removes a claim. It exists as a compensation hook for when
	// wallet provisioning fails after the claim was taken.
	Revoke(ctx context.Context, identity string) error

	// Claimed reports whether the identity holds a claim.
	Claimed(ctx context.Context, identity string) (bool, error)
}
