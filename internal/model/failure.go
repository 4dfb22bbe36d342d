package model

import "time"

// Environment represents the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the identity of the actor a request runs on behalf of.
type Scope struct {
	UserID   string
	Username string
}

// FailureReport represents one CI failure event received on the webhook.
// Immutable after creation, scoped to a single request, never persisted.
type FailureReport struct {
	Log        string    // Raw job log text
	JobName    string    // CI job name
	CommitSHA  string    // Full commit hash
	ReceivedAt time.Time // When the webhook was received
}

// ShortCommit returns the first 8 characters of the commit hash, or
// "unknown" when the report carries no commit.
func (r FailureReport) ShortCommit() string {
	if r.CommitSHA == "" {
		return "unknown"
	}
	if len(r.CommitSHA) > 8 {
		return r.CommitSHA[:8]
	}
	return r.CommitSHA
}
