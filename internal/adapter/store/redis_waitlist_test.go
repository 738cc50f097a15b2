package store

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"kuroma-gateway/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TestRedisWaitlist_Integration runs against a live Redis.
// This test is skipped unless REDIS_URL is set.
func TestRedisWaitlist_Integration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping Redis-dependent test (set REDIS_URL to enable)")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("ParseURL: %v", err)
	}
	s := NewRedisWaitlist(redis.NewClient(opts))
	s.key = "waitlist:test:" + uuid.NewString()
	ctx := context.Background()
	t.Cleanup(func() {
		s.client.Del(ctx, s.key)
		s.Close()
	})

	first := entity.WaitlistEntry{ID: "first", Email: "fan@kuroma.in", CreatedAt: time.Now().UTC()}
	if err := s.Insert(ctx, first); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	// A repeat signup keeps the original record.
	if err := s.Insert(ctx, entity.WaitlistEntry{ID: "second", Email: "fan@kuroma.in"}); err != nil {
		t.Fatalf("Insert repeat: %v", err)
	}

	got, ok, err := s.lookup(ctx, "fan@kuroma.in")
	if err != nil || !ok {
		t.Fatalf("Lookup: ok=%v err=%v", ok, err)
	}
	if got.ID != "first" {
		t.Fatalf("expected original entry, got %+v", got)
	}
}

func (r *RedisWaitlist) lookup(ctx context.Context, email string) (entity.WaitlistEntry, bool, error) {
	val, err := r.client.HGet(ctx, r.key, email).Result()
	if err == redis.Nil {
		return entity.WaitlistEntry{}, false, nil
	}
	if err != nil {
		return entity.WaitlistEntry{}, false, err
	}
	var entry entity.WaitlistEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return entity.WaitlistEntry{}, false, err
	}
	return entry, true, nil
}
