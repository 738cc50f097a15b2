package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kuroma-gateway/internal/config"
	"kuroma-gateway/internal/domain/entity"
)

// maxUpstreamBody caps the upstream answer. A longer body is rejected rather
// than cut, since a truncated payload cannot be passed through unchanged.
const maxUpstreamBody = 4 << 20

// IntentClient calls the external intent service with POST {text, session_id}.
type IntentClient struct {
	url        string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewIntentClient(cfg config.IntentConfig, httpClient *http.Client) *IntentClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultIntentTimeout
	}
	return &IntentClient{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// Forward sends the prompt upstream and returns the decoded-or-raw body.
// Non-2xx answers come back as *entity.UpstreamError, transport failures and
// timeouts as *entity.UnreachableError.
func (c *IntentClient) Forward(ctx context.Context, req entity.IntentRequest) (any, error) {
	if c.url == "" {
		return nil, fmt.Errorf("%w: missing intent API URL", entity.ErrMisconfigured)
	}

	body, err := json.Marshal(entity.UpstreamRequest{Text: req.Prompt, SessionID: req.SessionID})
	if err != nil {
		return nil, fmt.Errorf("intent client: marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &entity.UnreachableError{Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &entity.UnreachableError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody+1))
	if err != nil {
		return nil, &entity.UnreachableError{Err: fmt.Errorf("read response: %w", err)}
	}
	if len(raw) > maxUpstreamBody {
		return nil, &entity.UnreachableError{Err: fmt.Errorf("response exceeds %d bytes", maxUpstreamBody)}
	}

	payload := entity.DecodePayload(raw)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &entity.UpstreamError{Status: resp.StatusCode, Payload: payload}
	}
	return payload, nil
}
