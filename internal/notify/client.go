package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Notifier is what the TUI calls to notify a user.
type Notifier interface {
	Notify(ctx context.Context, req Request) error
}

// Client posts requests to a running relay.
type Client struct {
	url  string
	http *http.Client
}

// NewClient returns a client for the relay at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		url:  strings.TrimRight(baseURL, "/") + SendPath,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify sends req to the relay and surfaces its error message on failure.
func (c *Client) Notify(ctx context.Context, req Request) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
		return fmt.Errorf("relay: %s", e.Error)
	}
	return fmt.Errorf("relay: unexpected status %d", resp.StatusCode)
}

// Nop discards notifications. Used when no relay is configured.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, Request) error { return nil }

