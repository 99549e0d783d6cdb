package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"expense-tracker/models"
)

// ReplayError reports a queued mutation that failed to reach the remote
// endpoint. The queue retries these up to the ceiling, then drops them.
type ReplayError struct {
	ItemID string
	Err    error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("failed to replay item %s: %v", e.ItemID, e.Err)
}

func (e *ReplayError) Unwrap() error { return e.Err }

// Client talks to the remote sync endpoint. With no endpoint configured
// every replay succeeds immediately and the probe always reports online,
// so the queue simply empties itself locally.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// SyncOne pushes a single queued mutation to the remote endpoint.
func (c *Client) SyncOne(ctx context.Context, item models.SyncQueueItem) error {
	if c.endpoint == "" {
		return nil
	}

	body, err := json.Marshal(item)
	if err != nil {
		return &ReplayError{ItemID: item.ID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/sync", bytes.NewReader(body))
	if err != nil {
		return &ReplayError{ItemID: item.ID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &ReplayError{ItemID: item.ID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ReplayError{ItemID: item.ID, Err: fmt.Errorf("sync endpoint returned %d", resp.StatusCode)}
	}
	return nil
}

// Probe checks whether the sync endpoint is reachable.
func (c *Client) Probe(ctx context.Context) bool {
	if c.endpoint == "" {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode < 500
}
