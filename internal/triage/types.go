package triage

import "qa-triage-assistant/internal/model"

// ProcessFailureInput is the input for one triage run.
type ProcessFailureInput struct {
	Report model.FailureReport
}

// ProcessFailureOutput is the result reported back to the webhook caller.
// Always delivered with HTTP 200; failures are in-body.
type ProcessFailureOutput struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	JiraURL string `json:"jira_url,omitempty"`
}
