package triage

import (
	"context"

	"qa-triage-assistant/internal/model"
)

// UseCase drives the failure-triage pipeline.
type UseCase interface {
	// ProcessFailure runs summarize → score → notify → conditionally file.
	// It never returns an error: every collaborator failure is caught,
	// logged, and reflected in the output.
	ProcessFailure(ctx context.Context, input ProcessFailureInput) ProcessFailureOutput
}

// Summarizer produces a free-text summary of a raw failure log. The text is
// opaque to the triage core and may be empty.
type Summarizer interface {
	Summarize(ctx context.Context, log string) (string, error)
}

// Notifier delivers a failure notification with an interactive action to the
// team channel. Failures are tolerated by the caller.
type Notifier interface {
	Notify(ctx context.Context, summary string, score float64, report model.FailureReport) error
}

// BugFiler creates a ticket in the bug tracker and returns its browse URL.
type BugFiler interface {
	FileBug(ctx context.Context, draft model.BugDraft) (string, error)
}
