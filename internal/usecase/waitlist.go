package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kuroma-gateway/internal/domain/entity"
	"kuroma-gateway/internal/domain/repository"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Waitlist validates signups and writes them to the configured store.
// Duplicate handling is left to the store.
type Waitlist struct {
	store  repository.WaitlistStore
	logger *log.Logger
	now    func() time.Time
}

func NewWaitlist(store repository.WaitlistStore, logger *log.Logger) *Waitlist {
	return &Waitlist{store: store, logger: logger.WithPrefix("waitlist"), now: time.Now}
}

// Join parses body and inserts the signup.
func (w *Waitlist) Join(ctx context.Context, requestID string, body []byte) (entity.WaitlistEntry, error) {
	logger := w.logger.With("request_id", requestID)

	var req entity.WaitlistRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Warn("rejected request body", "err", err)
		return entity.WaitlistEntry{}, fmt.Errorf("%w: %v", entity.ErrInvalidBody, err)
	}

	email, err := entity.ValidateEmail(req.Email)
	if err != nil {
		return entity.WaitlistEntry{}, err
	}

	entry := entity.WaitlistEntry{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: w.now().UTC(),
	}
	if err := w.store.Insert(ctx, entry); err != nil {
		logger.Error("waitlist insert failed", "err", err)
		return entity.WaitlistEntry{}, err
	}

	logger.Info("saved waitlist signup", "email", email)
	return entry, nil
}
