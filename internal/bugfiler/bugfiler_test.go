package bugfiler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"qa-triage-assistant/internal/model"
	"qa-triage-assistant/pkg/jira"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockJira struct {
	createdFields *jira.IssueFields
	createErr     error
	users         []jira.User
	searchErr     error
	searchedQuery string
}

func (m *mockJira) CreateIssue(ctx context.Context, fields jira.IssueFields) (*jira.CreatedIssue, error) {
	m.createdFields = &fields
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &jira.CreatedIssue{ID: "10001", Key: "QA-42"}, nil
}

func (m *mockJira) SearchUsers(ctx context.Context, query string) ([]jira.User, error) {
	m.searchedQuery = query
	return m.users, m.searchErr
}

func (m *mockJira) BrowseURL(key string) string {
	return "https://example.atlassian.net/browse/" + key
}

func newTestFiler(client issueCreator) *Filer {
	return &Filer{
		client:      client,
		l:           mockLogger{},
		projectKey:  "QA",
		component:   "E2E Test Automation",
		label:       "BUG_BY_TRIAGE",
		priority:    "P0",
		defaultTeam: "Others",
	}
}

func TestFiler_FileBug(t *testing.T) {
	t.Run("fills standard fields and returns browse url", func(t *testing.T) {
		client := &mockJira{}
		f := newTestFiler(client)

		url, err := f.FileBug(context.Background(), model.BugDraft{
			Title:        "[Auto] Test failure in nightly-regression",
			Description:  "AssertionError in checkout",
			TeamCategory: "Payments",
		})
		if err != nil {
			t.Fatalf("FileBug() error = %v", err)
		}
		if url != "https://example.atlassian.net/browse/QA-42" {
			t.Errorf("url = %q", url)
		}

		got := client.createdFields
		if got.Project.Key != "QA" {
			t.Errorf("project = %q", got.Project.Key)
		}
		if got.IssueType.Name != "Bug" {
			t.Errorf("issuetype = %q", got.IssueType.Name)
		}
		if len(got.Labels) != 1 || got.Labels[0] != "BUG_BY_TRIAGE" {
			t.Errorf("labels = %v", got.Labels)
		}
		if len(got.Components) != 1 || got.Components[0].Name != "E2E Test Automation" {
			t.Errorf("components = %v", got.Components)
		}
		if got.Priority == nil || got.Priority.Name != "P0" {
			t.Errorf("priority = %v", got.Priority)
		}
		if got.TeamCategory == nil || got.TeamCategory.Value != "Payments" {
			t.Errorf("team category = %v", got.TeamCategory)
		}
		if got.Assignee != nil {
			t.Error("expected unassigned ticket")
		}
	})

	t.Run("truncates title to 255 chars", func(t *testing.T) {
		client := &mockJira{}
		f := newTestFiler(client)

		_, err := f.FileBug(context.Background(), model.BugDraft{
			Title: strings.Repeat("x", 400),
		})
		if err != nil {
			t.Fatalf("FileBug() error = %v", err)
		}
		if len(client.createdFields.Summary) != 255 {
			t.Errorf("summary length = %d, want 255", len(client.createdFields.Summary))
		}
	})

	t.Run("empty description falls back to title", func(t *testing.T) {
		client := &mockJira{}
		f := newTestFiler(client)

		_, err := f.FileBug(context.Background(), model.BugDraft{Title: "flaky login"})
		if err != nil {
			t.Fatalf("FileBug() error = %v", err)
		}
		if client.createdFields.Description != "flaky login" {
			t.Errorf("description = %q", client.createdFields.Description)
		}
	})

	t.Run("empty team category defaults", func(t *testing.T) {
		client := &mockJira{}
		f := newTestFiler(client)

		_, err := f.FileBug(context.Background(), model.BugDraft{Title: "t"})
		if err != nil {
			t.Fatalf("FileBug() error = %v", err)
		}
		if client.createdFields.TeamCategory.Value != "Others" {
			t.Errorf("team category = %q", client.createdFields.TeamCategory.Value)
		}
	})

	t.Run("resolves assignee email to account id", func(t *testing.T) {
		client := &mockJira{users: []jira.User{{AccountID: "acc-123"}}}
		f := newTestFiler(client)

		_, err := f.FileBug(context.Background(), model.BugDraft{
			Title:    "t",
			Assignee: "dev@example.com",
		})
		if err != nil {
			t.Fatalf("FileBug() error = %v", err)
		}
		if client.searchedQuery != "dev@example.com" {
			t.Errorf("searched query = %q", client.searchedQuery)
		}
		if client.createdFields.Assignee == nil || client.createdFields.Assignee.AccountID != "acc-123" {
			t.Errorf("assignee = %v", client.createdFields.Assignee)
		}
	})

	t.Run("lookup failure degrades to unassigned", func(t *testing.T) {
		client := &mockJira{searchErr: errors.New("403")}
		f := newTestFiler(client)

		_, err := f.FileBug(context.Background(), model.BugDraft{
			Title:    "t",
			Assignee: "dev@example.com",
		})
		if err != nil {
			t.Fatalf("FileBug() error = %v", err)
		}
		if client.createdFields.Assignee != nil {
			t.Error("expected unassigned ticket after lookup failure")
		}
	})

	t.Run("create failure propagates", func(t *testing.T) {
		client := &mockJira{createErr: errors.New("400 field required")}
		f := newTestFiler(client)

		if _, err := f.FileBug(context.Background(), model.BugDraft{Title: "t"}); err == nil {
			t.Fatal("FileBug() expected error")
		}
	})
}
