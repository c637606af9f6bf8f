// Package profile hands the device push token off to the user-profile
// service. The hand-off is fire-and-forget: failures are logged by the
// caller and never block anything.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TokenUpdater associates a push token with the signed-in user.
type TokenUpdater interface {
	UpdatePushToken(ctx context.Context, userID, token string) error
}

// Client posts push tokens to the profile service. A nil Client is a valid
// disabled updater, so callers never have to branch on configuration.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a profile client. An empty endpoint returns nil, which
// disables the hand-off.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		return nil
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// UpdatePushToken posts the token for the given user. No-op on a nil
// client.
func (c *Client) UpdatePushToken(ctx context.Context, userID, token string) error {
	if c == nil {
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"user_id":    userID,
		"push_token": token,
	})
	if err != nil {
		return fmt.Errorf("encode token update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build token update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post token update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("token update rejected: %s", resp.Status)
	}
	return nil
}
