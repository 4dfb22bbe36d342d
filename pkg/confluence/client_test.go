package confluence_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qa-triage-assistant/pkg/confluence"
)

func TestFetchPageContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/rest/api/content/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"no content found"}`))
			return
		}
		if r.URL.Query().Get("expand") != "body.storage" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"body":{"storage":{"value":"<h1>PRD</h1><p>Login flow</p>"}}}`))
	}))
	defer ts.Close()

	client, err := confluence.NewClient(confluence.Config{
		BaseURL: ts.URL,
		Email:   "bot@example.com",
		Token:   "token",
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		html, err := client.FetchPageContent(context.Background(), "12345")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(html, "Login flow") {
			t.Errorf("unexpected content: %q", html)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := client.FetchPageContent(context.Background(), "missing")
		if err == nil || !strings.Contains(err.Error(), "404") {
			t.Fatalf("expected 404 error, got: %v", err)
		}
	})
}
