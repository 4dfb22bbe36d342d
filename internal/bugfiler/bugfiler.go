package bugfiler

import (
	"context"
	"fmt"

	"qa-triage-assistant/config"
	"qa-triage-assistant/internal/model"
	"qa-triage-assistant/pkg/jira"
	pkgLog "qa-triage-assistant/pkg/log"
)

// maxSummaryLength is Jira's hard limit on the summary field. Enforced
// here, right before submission, so every filing path gets it.
const maxSummaryLength = 255

const issueTypeBug = "Bug"

type issueCreator interface {
	CreateIssue(ctx context.Context, fields jira.IssueFields) (*jira.CreatedIssue, error)
	SearchUsers(ctx context.Context, query string) ([]jira.User, error)
	BrowseURL(key string) string
}

// Filer files bug drafts as Jira issues.
type Filer struct {
	client      issueCreator
	l           pkgLog.Logger
	projectKey  string
	component   string
	label       string
	priority    string
	defaultTeam string
}

func New(client *jira.Client, cfg config.JiraConfig, l pkgLog.Logger) *Filer {
	return &Filer{
		client:      client,
		l:           l,
		projectKey:  cfg.ProjectKey,
		component:   cfg.Component,
		label:       cfg.Label,
		priority:    cfg.Priority,
		defaultTeam: "Others",
	}
}

// FileBug creates a Jira bug from the draft and returns its browse URL.
// Assignee lookup failures degrade to an unassigned ticket rather than
// blocking the filing.
func (f *Filer) FileBug(ctx context.Context, draft model.BugDraft) (string, error) {
	description := draft.Description
	if description == "" {
		description = draft.Title
	}

	team := draft.TeamCategory
	if team == "" {
		team = f.defaultTeam
	}

	fields := jira.IssueFields{
		Project:      jira.Project{Key: f.projectKey},
		Summary:      truncateSummary(draft.Title),
		Description:  description,
		IssueType:    jira.NamedField{Name: issueTypeBug},
		Labels:       []string{f.label},
		Components:   []jira.NamedField{{Name: f.component}},
		Priority:     &jira.NamedField{Name: f.priority},
		TeamCategory: &jira.ValueField{Value: team},
	}

	if draft.Assignee != "" {
		if accountID := f.lookupAccountID(ctx, draft.Assignee); accountID != "" {
			fields.Assignee = &jira.AccountField{AccountID: accountID}
		} else {
			f.l.Warnf(ctx, "FileBug: no accountId for %s, leaving ticket unassigned", draft.Assignee)
		}
	}

	f.l.Infof(ctx, "FileBug: creating issue in project %s: %.50s", f.projectKey, draft.Title)

	issue, err := f.client.CreateIssue(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("failed to create jira issue: %w", err)
	}

	url := f.client.BrowseURL(issue.Key)
	f.l.Infof(ctx, "FileBug: created issue %s", url)
	return url, nil
}

// lookupAccountID resolves an email to a Jira Cloud account id. Returns
// empty on any failure so the caller can degrade to unassigned.
func (f *Filer) lookupAccountID(ctx context.Context, email string) string {
	users, err := f.client.SearchUsers(ctx, email)
	if err != nil {
		f.l.Errorf(ctx, "FileBug: user search failed for %s: %v", email, err)
		return ""
	}
	if len(users) == 0 {
		f.l.Warnf(ctx, "FileBug: no jira user found for %s", email)
		return ""
	}
	return users[0].AccountID
}

func truncateSummary(s string) string {
	if len(s) <= maxSummaryLength {
		return s
	}
	return s[:maxSummaryLength]
}
