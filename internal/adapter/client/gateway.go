package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Messages shown when the gateway answer cannot be interpreted.
const (
	NetworkErrorMessage = "Network error. Try again."
	GenericErrorMessage = "Something went wrong."
)

// GatewayError is a failure reported to a terminal user. Status is zero when
// the gateway could not be reached or answered with something other than JSON.
type GatewayError struct {
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// GatewayClient talks to a running gateway the same way the web pages do.
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGatewayClient(baseURL string, httpClient *http.Client) *GatewayClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &GatewayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Intent posts a prompt to /api/intent and returns the raw JSON answer.
func (c *GatewayClient) Intent(ctx context.Context, prompt, sessionID string) (json.RawMessage, error) {
	body := map[string]string{"prompt": prompt}
	if sessionID != "" {
		body["sessionId"] = sessionID
	}
	return c.post(ctx, "/api/intent", body)
}

// JoinWaitlist posts an email to /api/waitlist.
func (c *GatewayClient) JoinWaitlist(ctx context.Context, email string) error {
	_, err := c.post(ctx, "/api/waitlist", map[string]string{"email": email})
	return err
}

func (c *GatewayClient) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gateway client: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gateway client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Message: NetworkErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil || !json.Valid(data) {
		return nil, &GatewayError{Status: resp.StatusCode, Message: NetworkErrorMessage, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &envelope)
		msg := envelope.Error
		if msg == "" {
			msg = GenericErrorMessage
		}
		return nil, &GatewayError{Status: resp.StatusCode, Message: msg}
	}
	return data, nil
}
