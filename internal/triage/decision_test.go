package triage

import (
	"strings"
	"testing"

	"qa-triage-assistant/internal/model"
)

func TestDecideThreshold(t *testing.T) {
	policy := Policy{
		AutoFileThreshold:   DefaultAutoFileThreshold,
		DefaultAssignee:     "qa-team@example.com",
		DefaultTeamCategory: "Others",
	}
	report := model.FailureReport{JobName: "e2e-smoke", CommitSHA: "abcdef1234567890"}

	cases := []struct {
		name     string
		score    float64
		autoFile bool
	}{
		{"well below", 0.4, false},
		{"just below", 0.7999, false},
		{"exactly at threshold", 0.8, true},
		{"above", 0.92, true},
		{"max", 1.0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := policy.Decide(tc.score, "some summary", report)
			if outcome.AutoFile != tc.autoFile {
				t.Errorf("Decide(%v).AutoFile = %v, want %v", tc.score, outcome.AutoFile, tc.autoFile)
			}
		})
	}
}

func TestDecideBugDraft(t *testing.T) {
	policy := Policy{
		AutoFileThreshold:   0.8,
		DefaultAssignee:     "qa-team@example.com",
		DefaultTeamCategory: "Others",
	}
	report := model.FailureReport{JobName: "e2e-smoke", CommitSHA: "abcdef1234567890"}

	outcome := policy.Decide(0.92, "AssertionError in checkout flow", report)

	if !outcome.AutoFile {
		t.Fatal("expected auto-file outcome")
	}
	bug := outcome.Bug
	if bug.Title != "[Auto] Test failure in e2e-smoke" {
		t.Errorf("unexpected title: %q", bug.Title)
	}
	if !strings.Contains(bug.Description, "AssertionError in checkout flow") {
		t.Errorf("description missing summary: %q", bug.Description)
	}
	if !strings.Contains(bug.Description, "abcdef12") {
		t.Errorf("description missing truncated commit: %q", bug.Description)
	}
	if strings.Contains(bug.Description, "abcdef123") {
		t.Errorf("commit not truncated to 8 chars: %q", bug.Description)
	}
	if !strings.Contains(bug.Description, "0.92") {
		t.Errorf("description missing formatted score: %q", bug.Description)
	}
	if bug.Assignee != "qa-team@example.com" || bug.TeamCategory != "Others" {
		t.Errorf("defaults not applied: %+v", bug)
	}
}

func TestDecideNoBugBelowThreshold(t *testing.T) {
	policy := Policy{AutoFileThreshold: 0.8}
	outcome := policy.Decide(0.79, "summary", model.FailureReport{JobName: "job"})

	if outcome.AutoFile {
		t.Error("expected no auto-file below threshold")
	}
	if outcome.Bug.Title != "" {
		t.Errorf("bug draft should be empty, got %+v", outcome.Bug)
	}
}

func TestFallbackSummary(t *testing.T) {
	got := FallbackSummary("nightly-regression")
	if got != "Test failure in nightly-regression" {
		t.Errorf("FallbackSummary = %q", got)
	}
}

func TestShortCommit(t *testing.T) {
	cases := []struct {
		sha  string
		want string
	}{
		{"abcdef1234567890", "abcdef12"},
		{"abc", "abc"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		got := model.FailureReport{CommitSHA: tc.sha}.ShortCommit()
		if got != tc.want {
			t.Errorf("ShortCommit(%q) = %q, want %q", tc.sha, got, tc.want)
		}
	}
}
