package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kuroma-gateway/internal/domain/entity"
)

const supabaseTimeout = 10 * time.Second

// SupabaseWaitlist inserts signups through the PostgREST endpoint of a
// Supabase project.
type SupabaseWaitlist struct {
	baseURL    string
	serviceKey string
	table      string
	httpClient *http.Client
}

func NewSupabaseWaitlist(baseURL, serviceKey string, httpClient *http.Client) *SupabaseWaitlist {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: supabaseTimeout}
	}
	return &SupabaseWaitlist{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		table:      "waitlist",
		httpClient: httpClient,
	}
}

// Insert posts {email}. The response body is never returned to callers; it
// only ends up in the wrapped error for logging.
func (s *SupabaseWaitlist) Insert(ctx context.Context, entry entity.WaitlistEntry) error {
	body, err := json.Marshal(map[string]string{"email": entry.Email})
	if err != nil {
		return fmt.Errorf("%w: marshal entry: %v", entity.ErrStoreFailure, err)
	}

	url := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, s.table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", entity.ErrStoreUnreachable, err)
	}
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("%w: supabase returned %d: %s", entity.ErrStoreFailure, resp.StatusCode, strings.TrimSpace(string(text)))
	}
	return nil
}

func (s *SupabaseWaitlist) Close() error {
	return nil
}
