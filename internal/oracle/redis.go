package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paper-swap/paper_swap/internal/fixedpoint"
)

const quoteKeyPrefix = "oracle:v1:"

// RedisStore keeps the latest quote per pair key in Redis so every instance
// of the service sees the same observation.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed quote store. A zero ttl keeps quotes
// until overwritten; a positive ttl lets stale quotes expire into
// ErrQuoteUnavailable.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

type storedQuote struct {
	Source   string    `json:"source"`
	Mantissa uint64    `json:"mantissa"`
	Scale    uint32    `json:"scale"`
	AsOf     time.Time `json:"as_of"`
}

// Publish overwrites the latest quote for the key.
func (s *RedisStore) Publish(ctx context.Context, quote Quote) error {
	payload, err := json.Marshal(storedQuote{
		Source:   quote.Source,
		Mantissa: quote.Rate.Mantissa,
		Scale:    quote.Rate.Scale,
		AsOf:     quote.AsOf.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode quote %s: %w", quote.Key, err)
	}
	if err := s.client.Set(ctx, quoteKeyPrefix+quote.Key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store quote %s: %w", quote.Key, err)
	}
	return nil
}

// LatestQuote returns the stored quote for the key, or ErrQuoteUnavailable
// when nothing has been published (or the quote expired).
func (s *RedisStore) LatestQuote(ctx context.Context, key string) (Quote, error) {
	payload, err := s.client.Get(ctx, quoteKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Quote{}, fmt.Errorf("%s: %w", key, ErrQuoteUnavailable)
		}
		return Quote{}, fmt.Errorf("fetch quote %s: %w", key, err)
	}
	var stored storedQuote
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return Quote{}, fmt.Errorf("decode quote %s: %w", key, err)
	}
	return Quote{
		Key:    key,
		Source: stored.Source,
		Rate:   fixedpoint.New(stored.Mantissa, stored.Scale),
		AsOf:   stored.AsOf,
	}, nil
}
