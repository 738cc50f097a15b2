package repository

import (
	"context"
	"kuroma-gateway/internal/domain/entity"
)

// IntentService forwards a prompt to the external intent service. The payload
// is the upstream body as json.RawMessage, or a string when it is not JSON.
type IntentService interface {
	Forward(ctx context.Context, req entity.IntentRequest) (any, error)
}

// WaitlistStore persists a signup with a single insert call.
type WaitlistStore interface {
	Insert(ctx context.Context, entry entity.WaitlistEntry) error
	Close() error
}
