package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/paper-swap/paper_swap/internal/currency"
	"github.com/paper-swap/paper_swap/internal/fixedpoint"
)

func TestNewWalletIsFullySeeded(t *testing.T) {
	w := New("owner-1")

	if len(w.Balances) != len(currency.Symbols()) {
		t.Fatalf("expected %d balances, got %d", len(currency.Symbols()), len(w.Balances))
	}
	for _, sym := range currency.Symbols() {
		bal := w.Balance(sym)
		if bal.Mantissa != SeedMantissa || bal.Scale != SeedScale {
			t.Fatalf("expected %s seeded at %d/%d, got %d/%d", sym, SeedMantissa, SeedScale, bal.Mantissa, bal.Scale)
		}
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w := New("owner-1")
	if err := store.Create(ctx, w); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, New("owner-1")); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists for duplicate owner, got %v", err)
	}

	fetched, err := store.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.OwnerID != "owner-1" {
		t.Fatalf("expected owner-1, got %s", fetched.OwnerID)
	}

	byOwner, err := store.GetByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("get by owner: %v", err)
	}
	if byOwner.ID != w.ID {
		t.Fatalf("expected wallet %s, got %s", w.ID, byOwner.ID)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreUpdateAbortsOnError(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w := New("owner-1")
	if err := store.Create(ctx, w); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	_, err := store.Update(ctx, w.ID, func(u *Wallet) error {
		u.Balances[currency.SUI] = fixedpoint.New(0, SeedScale)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	// The partial mutation inside fn must not be observable.
	fetched, err := store.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Balance(currency.SUI).Mantissa != SeedMantissa {
		t.Fatalf("expected sui balance untouched, got %d", fetched.Balance(currency.SUI).Mantissa)
	}
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w := New("owner-1")
	if err := store.Create(ctx, w); err != nil {
		t.Fatalf("create: %v", err)
	}

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, w.ID, func(u *Wallet) error {
				debited, err := u.Balances[currency.USD].Sub(fixedpoint.New(1_000, SeedScale))
				if err != nil {
					return err
				}
				u.Balances[currency.USD] = debited
				return nil
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	fetched, err := store.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := uint64(SeedMantissa - workers*1_000)
	if fetched.Balance(currency.USD).Mantissa != want {
		t.Fatalf("expected usd mantissa %d, got %d", want, fetched.Balance(currency.USD).Mantissa)
	}
}

func TestMemoryStoreManyOwners(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		owner := fmt.Sprintf("owner-%d", i)
		if err := store.Create(ctx, New(owner)); err != nil {
			t.Fatalf("create %s: %v", owner, err)
		}
	}

	w, err := store.GetByOwner(ctx, "owner-5")
	if err != nil {
		t.Fatalf("get by owner: %v", err)
	}
	if w.OwnerID != "owner-5" {
		t.Fatalf("expected owner-5, got %s", w.OwnerID)
	}
}
