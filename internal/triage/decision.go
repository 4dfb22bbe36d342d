package triage

import (
	"fmt"

	"qa-triage-assistant/internal/model"
)

// DefaultAutoFileThreshold is the score at or above which a bug is filed
// automatically. A policy constant, not a per-request knob.
const DefaultAutoFileThreshold = 0.8

// Policy holds the fixed triage decision constants. Exposed through config
// so they can be tuned per deployment, never per request.
type Policy struct {
	AutoFileThreshold   float64
	DefaultAssignee     string // Email used on the automatic path
	DefaultTeamCategory string
}

// TriageOutcome is the decision derived from a score: whether to auto-file,
// and the bug draft to file with. Consumed immediately by the dispatch step.
type TriageOutcome struct {
	AutoFile bool
	Bug      model.BugDraft // Populated only when AutoFile is true
}

// Decide applies the auto-file rule to a score. The threshold is inclusive:
// a score exactly at the threshold files a bug.
func (p Policy) Decide(score float64, summary string, report model.FailureReport) TriageOutcome {
	if score < p.AutoFileThreshold {
		return TriageOutcome{}
	}

	title := fmt.Sprintf("[Auto] Test failure in %s", report.JobName)
	description := fmt.Sprintf(
		"Automated bug filed by QA Triage Assistant due to high confidence failure detection.\n\n"+
			"*Summary:*\n%s\n\n"+
			"*Job:* %s\n*Commit:* %s\n*Confidence Score:* %.2f",
		summary, report.JobName, report.ShortCommit(), score,
	)

	return TriageOutcome{
		AutoFile: true,
		Bug: model.BugDraft{
			Title:        title,
			Description:  description,
			Assignee:     p.DefaultAssignee,
			TeamCategory: p.DefaultTeamCategory,
		},
	}
}

// FallbackSummary is the input-repair rule: scoring must never operate on
// empty text silently, so an empty or whitespace-only summary is replaced
// with a minimal one naming the job.
func FallbackSummary(jobName string) string {
	return fmt.Sprintf("Test failure in %s", jobName)
}
