package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func registries(t *testing.T) map[string]Registry {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return map[string]Registry{
		"memory": NewMemory(),
		"redis":  NewRedis(client),
	}
}

func TestTryClaimRejectsSecondAttempt(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			won, err := reg.TryClaim(ctx, "alice")
			if err != nil {
				t.Fatalf("first claim: %v", err)
			}
			if !won {
				t.Fatal("expected first claim to win")
			}

			won, err = reg.TryClaim(ctx, "alice")
			if err != nil {
				t.Fatalf("second claim: %v", err)
			}
			if won {
				t.Fatal("expected second claim to lose")
			}

			claimed, err := reg.Claimed(ctx, "alice")
			if err != nil {
				t.Fatalf("claimed: %v", err)
			}
			if !claimed {
				t.Fatal("expected alice to be claimed")
			}
		})
	}
}

func TestRevokeFreesIdentity(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := reg.TryClaim(ctx, "bob"); err != nil {
				t.Fatalf("claim: %v", err)
			}
			if err := reg.Revoke(ctx, "bob"); err != nil {
				t.Fatalf("revoke: %v", err)
			}

			won, err := reg.TryClaim(ctx, "bob")
			if err != nil {
				t.Fatalf("reclaim: %v", err)
			}
			if !won {
				t.Fatal("expected reclaim after revoke to win")
			}
		})
	}
}

func TestConcurrentClaimsSingleWinner(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const workers = 16

			var wg sync.WaitGroup
			wins := make(chan bool, workers)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					won, err := reg.TryClaim(ctx, "carol")
					if err != nil {
						t.Errorf("claim: %v", err)
						return
					}
					wins <- won
				}()
			}
			wg.Wait()
			close(wins)

			winners := 0
			for won := range wins {
				if won {
					winners++
				}
			}
			if winners != 1 {
				t.Fatalf("expected exactly one winner, got %d", winners)
			}
		})
	}
}

func TestClaimsAreIndependentPerIdentity(t *testing.T) {
	reg := NewMemory()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		identity := fmt.Sprintf("user-%d", i)
		won, err := reg.TryClaim(ctx, identity)
		if err != nil {
			t.Fatalf("claim %s: %v", identity, err)
		}
		if !won {
			t.Fatalf("expected claim for %s to win", identity)
		}
	}
}
