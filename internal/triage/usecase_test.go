package triage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"qa-triage-assistant/internal/model"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockSummarizer struct {
	summary string
	err     error
}

func (m *mockSummarizer) Summarize(ctx context.Context, log string) (string, error) {
	return m.summary, m.err
}

type mockNotifier struct {
	err error

	gotSummary string
	gotScore   float64
	gotReport  model.FailureReport
	calls      int
}

func (m *mockNotifier) Notify(ctx context.Context, summary string, score float64, report model.FailureReport) error {
	m.calls++
	m.gotSummary = summary
	m.gotScore = score
	m.gotReport = report
	return m.err
}

type mockFiler struct {
	url string
	err error

	gotDraft model.BugDraft
	calls    int
}

func (m *mockFiler) FileBug(ctx context.Context, draft model.BugDraft) (string, error) {
	m.calls++
	m.gotDraft = draft
	return m.url, m.err
}

func newTestUseCase(s Summarizer, n Notifier, f BugFiler) UseCase {
	policy := Policy{
		AutoFileThreshold:   DefaultAutoFileThreshold,
		DefaultAssignee:     "qa-team@example.com",
		DefaultTeamCategory: "Others",
	}
	return New(&mockLogger{}, policy, s, n, f)
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestProcessFailureLowConfidence(t *testing.T) {
	notifier := &mockNotifier{}
	filer := &mockFiler{}
	uc := newTestUseCase(&mockSummarizer{summary: "something went wrong"}, notifier, filer)

	out := uc.ProcessFailure(context.Background(), ProcessFailureInput{
		Report: model.FailureReport{Log: "raw log", JobName: "unit-tests", CommitSHA: "deadbeefcafe"},
	})

	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
	if out.Message != "Processed" {
		t.Errorf("message = %q", out.Message)
	}
	if out.JiraURL != "" {
		t.Errorf("no jira url expected, got %q", out.JiraURL)
	}
	if notifier.calls != 1 {
		t.Errorf("notifier called %d times, want 1", notifier.calls)
	}
	if !almostEqual(notifier.gotScore, 0.4) {
		t.Errorf("notifier got score %v, want 0.4", notifier.gotScore)
	}
	if filer.calls != 0 {
		t.Errorf("filer should not be called on low confidence, got %d calls", filer.calls)
	}
}

func TestProcessFailureAutoFile(t *testing.T) {
	notifier := &mockNotifier{}
	filer := &mockFiler{url: "https://jira.example.com/browse/QA-123"}
	uc := newTestUseCase(&mockSummarizer{summary: "AssertionError: expected 5 but got 3"}, notifier, filer)

	out := uc.ProcessFailure(context.Background(), ProcessFailureInput{
		Report: model.FailureReport{Log: "raw log", JobName: "e2e-smoke", CommitSHA: "abcdef1234567890"},
	})

	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
	if out.Message != "Processed with auto bug filing" {
		t.Errorf("message = %q", out.Message)
	}
	if out.JiraURL != "https://jira.example.com/browse/QA-123" {
		t.Errorf("jira url = %q", out.JiraURL)
	}
	if filer.calls != 1 {
		t.Fatalf("filer called %d times, want 1", filer.calls)
	}
	if filer.gotDraft.Title != "[Auto] Test failure in e2e-smoke" {
		t.Errorf("draft title = %q", filer.gotDraft.Title)
	}
	if filer.gotDraft.Assignee != "qa-team@example.com" {
		t.Errorf("draft assignee = %q", filer.gotDraft.Assignee)
	}
}

func TestProcessFailureEmptySummaryRepaired(t *testing.T) {
	notifier := &mockNotifier{}
	uc := newTestUseCase(&mockSummarizer{summary: "   \n\t "}, notifier, &mockFiler{})

	out := uc.ProcessFailure(context.Background(), ProcessFailureInput{
		Report: model.FailureReport{Log: "raw log", JobName: "nightly-regression"},
	})

	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
	if notifier.gotSummary != "Test failure in nightly-regression" {
		t.Errorf("fallback summary not applied, notifier got %q", notifier.gotSummary)
	}
}

func TestProcessFailureSummarizerError(t *testing.T) {
	notifier := &mockNotifier{}
	uc := newTestUseCase(&mockSummarizer{err: errors.New("all providers failed")}, notifier, &mockFiler{})

	out := uc.ProcessFailure(context.Background(), ProcessFailureInput{
		Report: model.FailureReport{Log: "raw log", JobName: "unit-tests"},
	})

	if out.Success {
		t.Fatal("expected failure response")
	}
	if !strings.HasPrefix(out.Message, "Error:") {
		t.Errorf("message = %q, want Error prefix", out.Message)
	}
	if notifier.calls != 0 {
		t.Errorf("notifier should not be called when summarization fails")
	}
}

func TestProcessFailureNotifierErrorTolerated(t *testing.T) {
	notifier := &mockNotifier{err: errors.New("slack is down")}
	filer := &mockFiler{url: "https://jira.example.com/browse/QA-7"}
	uc := newTestUseCase(&mockSummarizer{summary: "AssertionError: expected true but got false"}, notifier, filer)

	out := uc.ProcessFailure(context.Background(), ProcessFailureInput{
		Report: model.FailureReport{Log: "raw log", JobName: "e2e-smoke", CommitSHA: "0011223344"},
	})

	// Notification failure must not abort the pipeline: the bug still files.
	if !out.Success {
		t.Fatalf("expected success despite notifier error, got %+v", out)
	}
	if filer.calls != 1 {
		t.Errorf("filer called %d times, want 1", filer.calls)
	}
}

func TestProcessFailureFilerError(t *testing.T) {
	filer := &mockFiler{err: errors.New("jira rejected the issue")}
	uc := newTestUseCase(&mockSummarizer{summary: "AssertionError: expected 1 but got 2"}, &mockNotifier{}, filer)

	out := uc.ProcessFailure(context.Background(), ProcessFailureInput{
		Report: model.FailureReport{Log: "raw log", JobName: "e2e-smoke"},
	})

	if out.Success {
		t.Fatal("expected failure response when filing fails")
	}
	if !strings.Contains(out.Message, "jira rejected the issue") {
		t.Errorf("message = %q", out.Message)
	}
}
