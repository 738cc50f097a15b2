// Package store holds the waitlist store drivers.
package store

import (
	"context"
	"fmt"
	"net/http"

	"kuroma-gateway/internal/config"
	"kuroma-gateway/internal/domain/entity"
	"kuroma-gateway/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// Open builds the store selected by cfg.Driver. A driver whose settings are
// missing yields a store that refuses every write with ErrMisconfigured, so
// the gateway still starts and serves the other endpoints.
func Open(cfg config.WaitlistConfig, httpClient *http.Client) (repository.WaitlistStore, error) {
	switch cfg.Driver {
	case config.DriverSupabase, "":
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
			return Unconfigured{Reason: "SUPABASE_URL and SUPABASE_SERVICE_KEY are required"}, nil
		}
		return NewSupabaseWaitlist(cfg.SupabaseURL, cfg.SupabaseServiceKey, httpClient), nil
	case config.DriverRedis:
		if cfg.RedisURL == "" {
			return Unconfigured{Reason: "REDIS_URL is required"}, nil
		}
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return NewRedisWaitlist(redis.NewClient(opts)), nil
	case config.DriverSQLite:
		if cfg.SQLitePath == "" {
			return Unconfigured{Reason: "SQLITE_PATH is required"}, nil
		}
		return NewSQLiteWaitlist(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown waitlist driver %q", cfg.Driver)
	}
}

// Unconfigured refuses every write.
type Unconfigured struct {
	Reason string
}

func (u Unconfigured) Insert(ctx context.Context, entry entity.WaitlistEntry) error {
	return fmt.Errorf("%w: %s", entity.ErrMisconfigured, u.Reason)
}

func (u Unconfigured) Close() error {
	return nil
}
