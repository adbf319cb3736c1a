package claim

import (
	"context"
	"fmt"

	"github.com/paper-swap/paper_swap/internal/notification"
	"github.com/paper-swap/paper_swap/internal/registry"
	"github.com/paper-swap/paper_swap/internal/wallet"
)

// Service implements the one-time wallet claim: each identity gets exactly
// one seeded wallet, ever.
type Service struct {
	registry registry.Registry
	wallets  wallet.Store
	notifier notification.Notifier
}

// NewService constructs a claim service.
func NewService(reg registry.Registry, wallets wallet.Store, notifier notification.Notifier) *Service {
	return &Service{registry: reg, wallets: wallets, notifier: notifier}
}

// Claim grants the identity its wallet. The registry's TryClaim is the
// atomic gate; when wallet provisioning fails afterwards the claim is
// revoked so the identity can retry.
func (s *Service) Claim(ctx context.Context, identity string) (wallet.Wallet, error) {
	if identity == "" {
		return wallet.Wallet{}, fmt.Errorf("identity is required")
	}

	won, err := s.registry.TryClaim(ctx, identity)
	if err != nil {
		return wallet.Wallet{}, err
	}
	if !won {
		return wallet.Wallet{}, fmt.Errorf("%s: %w", identity, registry.ErrAlreadyRegistered)
	}

	w := wallet.New(identity)
	if err := s.wallets.Create(ctx, w); err != nil {
		if revokeErr := s.registry.Revoke(ctx, identity); revokeErr != nil {
			return wallet.Wallet{}, fmt.Errorf("create wallet: %w (revoke failed: %v)", err, revokeErr)
		}
		return wallet.Wallet{}, fmt.Errorf("create wallet: %w", err)
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindWalletClaimed,
			Destination: identity,
			Body:        fmt.Sprintf("Wallet %s provisioned", w.ID),
		})
	}

	return w, nil
}
