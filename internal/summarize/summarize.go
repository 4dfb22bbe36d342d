package summarize

import (
	"context"
	"fmt"
	"strings"

	"qa-triage-assistant/pkg/llmprovider"
	pkgLog "qa-triage-assistant/pkg/log"
)

const (
	// Keep summaries short. The summary feeds a Slack message and a Jira
	// description, not a full report.
	summaryMaxTokens   = 512
	summaryTemperature = 0.2

	// Raw CI logs can be enormous. Only the tail carries the failure.
	maxLogChars = 12000
)

const systemPrompt = "You are a QA assistant that summarizes CI test failure logs. " +
	"Identify the failing tests and the most likely cause. Be concise."

// Summarizer produces a natural-language summary of a raw failure log.
type Summarizer struct {
	llm *llmprovider.Manager
	l   pkgLog.Logger
}

func New(llm *llmprovider.Manager, l pkgLog.Logger) *Summarizer {
	return &Summarizer{llm: llm, l: l}
}

// Summarize sends the failure log to the configured LLM chain and returns
// the generated summary text.
func (s *Summarizer) Summarize(ctx context.Context, failureLog string) (string, error) {
	trimmed := truncateLog(failureLog)
	if trimmed != failureLog {
		s.l.Infof(ctx, "Summarize: log truncated from %d to %d chars", len(failureLog), len(trimmed))
	}

	resp, err := s.llm.GenerateContent(ctx, &llmprovider.Request{
		System:      systemPrompt,
		Prompt:      fmt.Sprintf("Summarize this failure log:\n%s", trimmed),
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to summarize log: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// truncateLog keeps the tail of oversized logs. Failures show up at the
// end of a CI log, so the head is the part we can afford to lose.
func truncateLog(failureLog string) string {
	if len(failureLog) <= maxLogChars {
		return failureLog
	}
	return "... (log head truncated)\n" + failureLog[len(failureLog)-maxLogChars:]
}
