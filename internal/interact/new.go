package interact

import (
	"context"

	"qa-triage-assistant/internal/triage"
	pkgLog "qa-triage-assistant/pkg/log"
	"qa-triage-assistant/pkg/slack"
)

type slackAPI interface {
	PostMessage(ctx context.Context, req slack.PostMessageRequest) error
	OpenView(ctx context.Context, triggerID string, view slack.View) error
}

type Handler struct {
	slackClient slackAPI
	filer       triage.BugFiler
	assignees   []slack.Option
	l           pkgLog.Logger
}

func NewHandler(
	slackClient *slack.Client,
	filer triage.BugFiler,
	assignees map[string]string,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		slackClient: slackClient,
		filer:       filer,
		assignees:   assigneeOptions(assignees),
		l:           l,
	}
}
