package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPRemote talks JSON to the portfolio service. The API key is sent as
// a bearer token and treated as opaque; it is never logged.
type HTTPRemote struct {
	base   string
	apiKey string
	client *http.Client
}

// NewHTTPRemote creates a remote client with a bounded per-request
// timeout; exceeding it surfaces as a transient failure.
func NewHTTPRemote(endpoint, apiKey string, timeout time.Duration) *HTTPRemote {
	return &HTTPRemote{
		base:   strings.TrimRight(endpoint, "/"),
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// Push sends one change batch.
func (r *HTTPRemote) Push(ctx context.Context, req PushRequest) (*PushResponse, error) {
	var resp PushResponse
	if err := r.post(ctx, "/changes/push", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pull fetches remote changes after sinceRevision.
func (r *HTTPRemote) Pull(ctx context.Context, sinceRevision int64) (*PullResponse, error) {
	var resp PullResponse
	req := map[string]int64{"sinceRevision": sinceRevision}
	if err := r.post(ctx, "/changes/pull", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *HTTPRemote) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return Permanent(fmt.Errorf("encoding request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+path, bytes.NewReader(data))
	if err != nil {
		return Permanent(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		// Connectivity and timeout failures are worth retrying.
		return Transient(fmt.Errorf("calling %s: %w", path, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Permanent(fmt.Errorf("%s: credentials rejected (status %d)", path, resp.StatusCode))
	case resp.StatusCode >= 500:
		return Transient(fmt.Errorf("%s: remote unavailable (status %d)", path, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return Permanent(fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return Permanent(fmt.Errorf("decoding %s response: %w", path, err))
	}
	return nil
}
