package swap

import (
	"context"
	"fmt"
	"time"

	"github.com/paper-swap/paper_swap/internal/currency"
	"github.com/paper-swap/paper_swap/internal/notification"
	"github.com/paper-swap/paper_swap/internal/oracle"
	"github.com/paper-swap/paper_swap/internal/wallet"
)

// Service orchestrates swaps: it resolves the wallet, fetches the latest
// quote and runs the engine inside the store's transactional update so the
// debit and credit commit as one unit.
type Service struct {
	wallets  wallet.Store
	prices   oracle.Oracle
	source   string
	notifier notification.Notifier
}

// NewService constructs a swap service. source names the price feed quotes
// are keyed under; empty falls back to oracle.DefaultSource.
func NewService(wallets wallet.Store, prices oracle.Oracle, source string, notifier notification.Notifier) *Service {
	if source == "" {
		source = oracle.DefaultSource
	}
	return &Service{wallets: wallets, prices: prices, source: source, notifier: notifier}
}

// Input captures a swap request.
type Input struct {
	WalletID string
	From     string
	To       string
	Amount   uint64
}

// Result describes a completed swap including the wallet's new balances.
type Result struct {
	Receipt
	Wallet      wallet.Wallet
	CompletedAt time.Time
}

// Swap exchanges input.Amount raw units of the source currency for the
// target currency at the latest oracle rate. Every failure leaves the wallet
// untouched; none of the error conditions are retryable.
func (s *Service) Swap(ctx context.Context, input Input) (Result, error) {
	from, err := currency.Parse(input.From)
	if err != nil {
		return Result{}, err
	}
	to, err := currency.Parse(input.To)
	if err != nil {
		return Result{}, err
	}
	pair := currency.Pair{Base: from, Quote: to}
	if !pair.Supported() {
		return Result{}, fmt.Errorf("%s: %w", pair, ErrUnsupportedExchange)
	}

	quote, err := s.prices.LatestQuote(ctx, pair.QuoteKey(s.source))
	if err != nil {
		return Result{}, err
	}

	var receipt Receipt
	updated, err := s.wallets.Update(ctx, input.WalletID, func(w *wallet.Wallet) error {
		executed, execErr := Execute(w, pair, input.Amount, quote)
		if execErr != nil {
			return execErr
		}
		receipt = executed
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Receipt:     receipt,
		Wallet:      updated,
		CompletedAt: time.Now().UTC(),
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindSwapExecuted,
			Destination: updated.OwnerID,
			Body:        fmt.Sprintf("Swapped %d %s for %s %s", input.Amount, pair.Base, receipt.Credited, pair.Quote),
		})
	}

	return result, nil
}
