package registry

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const claimKeyPrefix = "registry:claims:v1:"

// RedisRegistry stores claims in Redis. SETNX makes the check-and-insert a
// single round trip, so two concurrent claims for the same identity can
// never both win.
type RedisRegistry struct {
	client *redis.Client
}

// NewRedis builds a Redis-backed claim registry.
func NewRedis(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client}
}

func (r *RedisRegistry) TryClaim(ctx context.Context, identity string) (bool, error) {
	// TTL 0: claims never expire.
	won, err := r.client.SetNX(ctx, claimKeyPrefix+identity, 1, 0).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", identity, err)
	}
	return won, nil
}

func (r *RedisRegistry) Revoke(ctx context.Context, identity string) error {
	if err := r.client.Del(ctx, claimKeyPrefix+identity).Err(); err != nil {
		return fmt.Errorf("revoke claim %s: %w", identity, err)
	}
	return nil
}

func (r *RedisRegistry) Claimed(ctx context.Context, identity string) (bool, error) {
	n, err := r.client.Exists(ctx, claimKeyPrefix+identity).Result()
	if err != nil {
		return false, fmt.Errorf("lookup claim %s: %w", identity, err)
	}
	return n > 0, nil
}
