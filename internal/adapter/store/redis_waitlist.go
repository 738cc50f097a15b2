package store

import (
	"context"
	"encoding/json"
	"fmt"

	"kuroma-gateway/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

const redisWaitlistKey = "waitlist:signups"

// RedisWaitlist keeps signups in a hash keyed by email. HSETNX makes a repeat
// signup a no-op.
type RedisWaitlist struct {
	client *redis.Client
	key    string
}

func NewRedisWaitlist(client *redis.Client) *RedisWaitlist {
	return &RedisWaitlist{
		client: client,
		key:    redisWaitlistKey,
	}
}

func (r *RedisWaitlist) Insert(ctx context.Context, entry entity.WaitlistEntry) error {
	record, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: marshal entry: %v", entity.ErrStoreFailure, err)
	}
	if err := r.client.HSetNX(ctx, r.key, entry.Email, record).Err(); err != nil {
		return fmt.Errorf("%w: redis: %v", entity.ErrStoreUnreachable, err)
	}
	return nil
}

func (r *RedisWaitlist) Close() error {
	return r.client.Close()
}
