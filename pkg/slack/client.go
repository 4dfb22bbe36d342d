package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultAPIURL = "https://slack.com/api"

// Client is the Slack Web API client.
type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a new Slack client with the given bot token.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{},
	}
}

// SetAPIURL overrides the default Slack API URL for testing purposes.
func (c *Client) SetAPIURL(url string) {
	c.apiURL = url
}

// PostMessage sends a message (optionally with blocks) to a channel or user.
func (c *Client) PostMessage(ctx context.Context, req PostMessageRequest) error {
	return c.call(ctx, "chat.postMessage", req)
}

// OpenView opens a modal in response to an interaction trigger. Trigger ids
// expire after a few seconds, so this must be called promptly.
func (c *Client) OpenView(ctx context.Context, triggerID string, view View) error {
	return c.call(ctx, "views.open", openViewRequest{TriggerID: triggerID, View: view})
}

// call posts a JSON payload to a Slack Web API method.
func (c *Client) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("slack: failed to marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/%s", c.apiURL, method)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("slack: failed to create %s request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("slack: failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack: %s API error %d: %s", method, resp.StatusCode, string(raw))
	}

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("slack: failed to decode %s response: %w", method, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("slack: %s failed: %s", method, apiResp.Error)
	}

	return nil
}
