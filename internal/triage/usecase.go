package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	pkgLog "qa-triage-assistant/pkg/log"
)

type usecase struct {
	scorer     *Scorer
	policy     Policy
	summarizer Summarizer
	notifier   Notifier
	filer      BugFiler
	l          pkgLog.Logger
}

// ProcessFailure runs the triage pipeline for one failure report. Steps are
// strictly sequential; no error escapes past this boundary.
func (uc *usecase) ProcessFailure(ctx context.Context, input ProcessFailureInput) ProcessFailureOutput {
	report := input.Report
	reportID := uuid.New().String()

	uc.l.Infof(ctx, "Processing failure report %s: job=%s commit=%s", reportID, report.JobName, report.ShortCommit())

	summary, err := uc.summarizer.Summarize(ctx, report.Log)
	if err != nil {
		uc.l.Errorf(ctx, "Report %s: summarization failed: %v", reportID, err)
		return ProcessFailureOutput{Message: fmt.Sprintf("Error: %v", err), Success: false}
	}

	// Input repair: never score empty text silently.
	if strings.TrimSpace(summary) == "" {
		uc.l.Warnf(ctx, "Report %s: empty summary generated from log, using fallback", reportID)
		summary = FallbackSummary(report.JobName)
	}

	result := uc.scorer.Score(summary)
	uc.l.Infof(ctx, "Report %s: confidence score %.2f (%d categories matched)", reportID, result.Score, len(result.Matches))

	// Notification always fires. A notifier failure is logged and tolerated;
	// it must not abort the rest of the pipeline.
	if err := uc.notifier.Notify(ctx, summary, result.Score, report); err != nil {
		uc.l.Errorf(ctx, "Report %s: notification failed: %v", reportID, err)
	}

	outcome := uc.policy.Decide(result.Score, summary, report)
	if !outcome.AutoFile {
		return ProcessFailureOutput{Message: "Processed", Success: true}
	}

	jiraURL, err := uc.filer.FileBug(ctx, outcome.Bug)
	if err != nil {
		uc.l.Errorf(ctx, "Report %s: auto bug filing failed: %v", reportID, err)
		return ProcessFailureOutput{Message: fmt.Sprintf("Error: %v", err), Success: false}
	}

	uc.l.Infof(ctx, "Report %s: automatically filed bug: %s", reportID, jiraURL)
	return ProcessFailureOutput{
		Message: "Processed with auto bug filing",
		Success: true,
		JiraURL: jiraURL,
	}
}
