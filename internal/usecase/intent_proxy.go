package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kuroma-gateway/internal/domain/entity"
	"kuroma-gateway/internal/domain/repository"

	"github.com/charmbracelet/log"
)

// IntentProxy validates a demo prompt and forwards it to the intent service.
// It never reinterprets the upstream body.
type IntentProxy struct {
	upstream repository.IntentService
	logger   *log.Logger
}

func NewIntentProxy(upstream repository.IntentService, logger *log.Logger) *IntentProxy {
	return &IntentProxy{upstream: upstream, logger: logger.WithPrefix("intent")}
}

// Execute parses body, validates the prompt and returns the upstream payload
// unchanged. The request ID only decorates log entries.
func (p *IntentProxy) Execute(ctx context.Context, requestID string, body []byte) (any, error) {
	logger := p.logger.With("request_id", requestID)

	var req entity.IntentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Warn("rejected request body", "err", err)
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidBody, err)
	}

	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		logger.Warn("rejected empty prompt")
		return nil, entity.ErrMissingPrompt
	}
	req.SessionID = strings.TrimSpace(req.SessionID)

	payload, err := p.upstream.Forward(ctx, req)
	if err == nil {
		return payload, nil
	}

	var upstreamErr *entity.UpstreamError
	switch {
	case errors.Is(err, entity.ErrMisconfigured):
		logger.Error("intent API URL is not configured")
	case errors.As(err, &upstreamErr):
		logger.Error("intent API error", "status", upstreamErr.Status, "upstream", describe(upstreamErr.Payload))
	default:
		logger.Error("network error reaching intent API", "err", err)
	}
	return nil, err
}

func describe(payload any) string {
	switch v := payload.(type) {
	case json.RawMessage:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
