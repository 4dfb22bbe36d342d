package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"qa-triage-assistant/internal/model"
	"qa-triage-assistant/pkg/slack"
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

type mockPoster struct {
	requests []slack.PostMessageRequest
	errs     []error
}

func (m *mockPoster) PostMessage(ctx context.Context, req slack.PostMessageRequest) error {
	m.requests = append(m.requests, req)
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return err
	}
	return nil
}

func newTestNotifier(poster *mockPoster) *Notifier {
	return &Notifier{
		client:  poster,
		channel: "#qa-alerts",
		l:       mockLogger{},
		now:     func() time.Time { return time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC) },
	}
}

func testReport() model.FailureReport {
	return model.FailureReport{
		Log:       "AssertionError: expected 200 but got 500",
		JobName:   "nightly-regression",
		CommitSHA: "abc123def456789",
	}
}

func TestNotifier_Notify(t *testing.T) {
	t.Run("rich message carries header, summary and button", func(t *testing.T) {
		poster := &mockPoster{}
		n := newTestNotifier(poster)

		err := n.Notify(context.Background(), "Main Issue: checkout broken", 0.87, testReport())
		if err != nil {
			t.Fatalf("Notify() error = %v", err)
		}
		if len(poster.requests) != 1 {
			t.Fatalf("got %d requests, want 1", len(poster.requests))
		}

		req := poster.requests[0]
		if req.Channel != "#qa-alerts" {
			t.Errorf("channel = %q", req.Channel)
		}
		if !strings.Contains(req.Text, "nightly-regression") {
			t.Error("text missing job name")
		}
		if !strings.Contains(req.Text, "abc123de") {
			t.Error("text missing short commit")
		}
		if !strings.Contains(req.Text, "0.87") {
			t.Error("text missing confidence score")
		}

		if len(req.Attachments) != 1 {
			t.Fatalf("got %d attachments, want 1", len(req.Attachments))
		}
		if req.Attachments[0].Color != "#36a64f" {
			t.Errorf("attachment color = %q for score 0.87", req.Attachments[0].Color)
		}

		var button *slack.BlockElement
		for _, b := range req.Attachments[0].Blocks {
			if b.Type != "actions" {
				continue
			}
			for i := range b.Elements {
				if b.Elements[i].ActionID == ActionIDCreateJira {
					button = &b.Elements[i]
				}
			}
		}
		if button == nil {
			t.Fatal("no create_jira button in blocks")
		}
		if button.Text == nil || button.Text.Text != ButtonText {
			t.Error("button label mismatch")
		}

		meta, err := model.DecodeBugMetadata(button.Value)
		if err != nil {
			t.Fatalf("button value does not decode: %v", err)
		}
		if meta.Summary != "checkout broken" {
			t.Errorf("metadata summary = %q", meta.Summary)
		}
		if meta.JobName != "nightly-regression" {
			t.Errorf("metadata job = %q", meta.JobName)
		}
		if meta.CommitSHA != "abc123de" {
			t.Errorf("metadata commit = %q", meta.CommitSHA)
		}
	})

	t.Run("button value stays inside the slack limit", func(t *testing.T) {
		poster := &mockPoster{}
		n := newTestNotifier(poster)

		longSummary := "Main Issue: everything broke\n" + strings.Repeat("detail line\n", 500)
		if err := n.Notify(context.Background(), longSummary, 0.9, testReport()); err != nil {
			t.Fatalf("Notify() error = %v", err)
		}

		req := poster.requests[0]
		if len(req.Attachments) != 1 {
			t.Fatalf("got %d attachments, want 1", len(req.Attachments))
		}
		for _, b := range req.Attachments[0].Blocks {
			if b.Type != "actions" {
				continue
			}
			for _, e := range b.Elements {
				if len(e.Value) > 2000 {
					t.Errorf("button value %d chars exceeds slack limit", len(e.Value))
				}
				if _, err := model.DecodeBugMetadata(e.Value); err != nil {
					t.Errorf("truncated value does not decode: %v", err)
				}
			}
		}
	})

	t.Run("falls back to plain message when rich post fails", func(t *testing.T) {
		poster := &mockPoster{errs: []error{errors.New("invalid_blocks")}}
		n := newTestNotifier(poster)

		if err := n.Notify(context.Background(), "summary text here", 0.5, testReport()); err != nil {
			t.Fatalf("Notify() error = %v", err)
		}
		if len(poster.requests) != 2 {
			t.Fatalf("got %d requests, want 2", len(poster.requests))
		}

		fallback := poster.requests[1]
		if len(fallback.Blocks) != 0 || len(fallback.Attachments) != 0 {
			t.Error("fallback message should not carry blocks or attachments")
		}
		rich := poster.requests[0]
		if len(rich.Attachments) != 1 || rich.Attachments[0].Color != "#ff0000" {
			t.Errorf("rich attachment color for score 0.5 = %+v", rich.Attachments)
		}
		if !strings.Contains(fallback.Text, "Test failure in nightly-regression") {
			t.Errorf("fallback text = %q", fallback.Text)
		}
	})

	t.Run("returns error when fallback also fails", func(t *testing.T) {
		poster := &mockPoster{errs: []error{errors.New("invalid_blocks"), errors.New("channel_not_found")}}
		n := newTestNotifier(poster)

		if err := n.Notify(context.Background(), "summary", 0.5, testReport()); err == nil {
			t.Fatal("Notify() expected error")
		}
	})
}
