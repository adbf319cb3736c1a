package swap

import (
	"context"
	"errors"
	"testing"

	"github.com/paper-swap/paper_swap/internal/currency"
	"github.com/paper-swap/paper_swap/internal/fixedpoint"
	"github.com/paper-swap/paper_swap/internal/oracle"
	"github.com/paper-swap/paper_swap/internal/wallet"
)

func setupService(t *testing.T) (*Service, wallet.Store, wallet.Wallet, oracle.Store) {
	t.Helper()
	store := wallet.NewMemoryStore()
	prices := oracle.NewMemoryStore()
	svc := NewService(store, prices, "binance", nil)

	w := wallet.New("owner-1")
	if err := store.Create(context.Background(), w); err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	return svc, store, w, prices
}

func publish(t *testing.T, prices oracle.Store, key string, mantissa uint64, scale uint32) {
	t.Helper()
	err := prices.Publish(context.Background(), oracle.Quote{
		Key:    key,
		Source: "binance",
		Rate:   fixedpoint.New(mantissa, scale),
	})
	if err != nil {
		t.Fatalf("publish quote: %v", err)
	}
}

func TestSwapEndToEnd(t *testing.T) {
	svc, _, w, prices := setupService(t)
	publish(t, prices, "sui/usd-binance", 500_000, 6)

	result, err := svc.Swap(context.Background(), Input{WalletID: w.ID, From: "sui", To: "usd", Amount: 1_000})
	if err != nil {
		t.Fatalf("swap: %v", err)
	}

	if got := result.Wallet.Balance(currency.SUI); got != fixedpoint.New(999_000, 4) {
		t.Fatalf("expected sui 999000@4, got %v", got)
	}
	if got := result.Wallet.Balance(currency.USD); got != fixedpoint.New(1_000_500, 4) {
		t.Fatalf("expected usd 1000500@4, got %v", got)
	}
	if result.CompletedAt.IsZero() {
		t.Fatal("expected completion timestamp")
	}
}

func TestSwapUnknownSymbol(t *testing.T) {
	svc, _, w, _ := setupService(t)

	_, err := svc.Swap(context.Background(), Input{WalletID: w.ID, From: "doge", To: "usd", Amount: 1})
	if !errors.Is(err, currency.ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestSwapUnsupportedPairBeforeOracleLookup(t *testing.T) {
	svc, _, w, _ := setupService(t)

	// No quote published at all: the pair check must fire first.
	_, err := svc.Swap(context.Background(), Input{WalletID: w.ID, From: "dai", To: "sui", Amount: 1})
	if !errors.Is(err, ErrUnsupportedExchange) {
		t.Fatalf("expected ErrUnsupportedExchange, got %v", err)
	}
}

func TestSwapQuoteUnavailable(t *testing.T) {
	svc, _, w, _ := setupService(t)

	_, err := svc.Swap(context.Background(), Input{WalletID: w.ID, From: "btc", To: "usd", Amount: 1})
	if !errors.Is(err, oracle.ErrQuoteUnavailable) {
		t.Fatalf("expected ErrQuoteUnavailable, got %v", err)
	}
}

func TestSwapInsufficientAmountLeavesBalances(t *testing.T) {
	svc, store, w, prices := setupService(t)
	publish(t, prices, "sui/usd-binance", 500_000, 6)

	_, err := svc.Swap(context.Background(), Input{WalletID: w.ID, From: "sui", To: "usd", Amount: wallet.SeedMantissa + 1})
	if !errors.Is(err, ErrInsufficientAmount) {
		t.Fatalf("expected ErrInsufficientAmount, got %v", err)
	}

	stored, err := store.Get(context.Background(), w.ID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	for _, sym := range []currency.Symbol{currency.SUI, currency.USD} {
		if got := stored.Balance(sym); got != fixedpoint.New(wallet.SeedMantissa, wallet.SeedScale) {
			t.Fatalf("expected %s untouched, got %v", sym, got)
		}
	}
}

func TestSwapWalletNotFound(t *testing.T) {
	svc, _, _, prices := setupService(t)
	publish(t, prices, "sui/usd-binance", 500_000, 6)

	_, err := svc.Swap(context.Background(), Input{WalletID: "missing", From: "sui", To: "usd", Amount: 1})
	if !errors.Is(err, wallet.ErrNotFound) {
		t.Fatalf("expected wallet.ErrNotFound, got %v", err)
	}
}

func TestSwapSequenceAccumulates(t *testing.T) {
	svc, _, w, prices := setupService(t)
	publish(t, prices, "sui/usd-binance", 500_000, 6)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Swap(ctx, Input{WalletID: w.ID, From: "sui", To: "usd", Amount: 1_000}); err != nil {
			t.Fatalf("swap %d: %v", i, err)
		}
	}

	result, err := svc.Swap(ctx, Input{WalletID: w.ID, From: "sui", To: "usd", Amount: 1_000})
	if err != nil {
		t.Fatalf("final swap: %v", err)
	}
	if got := result.Wallet.Balance(currency.SUI); got != fixedpoint.New(996_000, 4) {
		t.Fatalf("expected sui 996000@4, got %v", got)
	}
	if got := result.Wallet.Balance(currency.USD); got != fixedpoint.New(1_002_000, 4) {
		t.Fatalf("expected usd 1002000@4, got %v", got)
	}
}
