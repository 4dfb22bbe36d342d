package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fetches page content from the Confluence REST API.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
}

// Config holds Confluence connection settings.
type Config struct {
	BaseURL string // e.g. https://example.atlassian.net/wiki
	Email   string
	Token   string
}

// contentResponse is the subset of the content API response we read.
type contentResponse struct {
	Body struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
}

// NewClient creates a new Confluence client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("confluence base URL is required")
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		email:   cfg.Email,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// SetBaseURL overrides the base URL for testing purposes.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// FetchPageContent returns the storage-format HTML body of a page.
func (c *Client) FetchPageContent(ctx context.Context, pageID string) (string, error) {
	url := fmt.Sprintf("%s/rest/api/content/%s?expand=body.storage", c.baseURL, pageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("confluence: failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("confluence: failed to fetch page %s: %w", pageID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("confluence: page %s fetch error %d: %s", pageID, resp.StatusCode, string(raw))
	}

	var content contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return "", fmt.Errorf("confluence: failed to decode page %s: %w", pageID, err)
	}

	return content.Body.Storage.Value, nil
}
