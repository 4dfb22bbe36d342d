package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal Jira Cloud REST API client (API v2, basic auth with
// an API token).
type Client struct {
	baseURL    string
	user       string
	token      string
	httpClient *http.Client
}

// Config holds Jira connection settings.
type Config struct {
	BaseURL string // e.g. https://example.atlassian.net
	User    string // Account email
	Token   string // API token
}

// NewClient creates a new Jira client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("jira base URL is required")
	}
	if cfg.User == "" || cfg.Token == "" {
		return nil, fmt.Errorf("jira credentials are required")
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		user:    cfg.User,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// SetBaseURL overrides the Jira base URL for testing purposes.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// CreateIssue creates an issue and returns its key and self link.
func (c *Client) CreateIssue(ctx context.Context, fields IssueFields) (*CreatedIssue, error) {
	body, err := json.Marshal(createIssueRequest{Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("jira: failed to marshal issue: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/api/2/issue", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("jira: failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jira: create issue failed: %s", readAPIError(resp))
	}

	var created CreatedIssue
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("jira: failed to decode create response: %w", err)
	}

	return &created, nil
}

// SearchUsers finds users matching a query (typically an email address).
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	u := fmt.Sprintf("%s/rest/api/2/user/search?query=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("jira: failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jira: user search failed: %s", readAPIError(resp))
	}

	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("jira: failed to decode user search response: %w", err)
	}

	return users, nil
}

// BrowseURL returns the user-facing URL for an issue key.
func (c *Client) BrowseURL(key string) string {
	return fmt.Sprintf("%s/browse/%s", c.baseURL, key)
}

func (c *Client) setHeaders(req *http.Request) {
	req.SetBasicAuth(c.user, c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// readAPIError extracts a readable message from a Jira error response.
func readAPIError(resp *http.Response) string {
	raw, _ := io.ReadAll(resp.Body)

	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil {
		var parts []string
		parts = append(parts, apiErr.ErrorMessages...)
		for field, msg := range apiErr.Errors {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
		if len(parts) > 0 {
			return fmt.Sprintf("status %d: %s", resp.StatusCode, strings.Join(parts, "; "))
		}
	}

	return fmt.Sprintf("status %d: %s", resp.StatusCode, string(raw))
}
