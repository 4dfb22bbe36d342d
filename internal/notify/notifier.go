package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"qa-triage-assistant/internal/model"
	pkgLog "qa-triage-assistant/pkg/log"
	"qa-triage-assistant/pkg/slack"
)

// ActionIDCreateJira is the action id carried by the "File a bug" button.
// The interactivity handler dispatches on it.
const ActionIDCreateJira = "create_jira"

// ButtonText is the label on the filing button.
const ButtonText = "File a bug"

type slackPoster interface {
	PostMessage(ctx context.Context, req slack.PostMessageRequest) error
}

// Notifier posts failure reports to a Slack channel with a "File a bug"
// button carrying encoded bug metadata.
type Notifier struct {
	client  slackPoster
	channel string
	l       pkgLog.Logger
	now     func() time.Time
}

func New(client *slack.Client, channel string, l pkgLog.Logger) *Notifier {
	return &Notifier{
		client:  client,
		channel: channel,
		l:       l,
		now:     time.Now,
	}
}

// Notify sends the rich failure notification. If the Block Kit message is
// rejected it falls back to a plain text message before giving up.
func (n *Notifier) Notify(ctx context.Context, summary string, score float64, report model.FailureReport) error {
	timestamp := n.now().Format("2006-01-02 15:04:05")

	header := formatHeader(report.JobName, report.ShortCommit(), timestamp)
	body := formatSummary(summary)
	text := fmt.Sprintf("%s\n*Failure Summary:*\n%s\n\n*Confidence Score:* %.2f\n%s",
		header, body, score, divider)

	actionValue, err := n.buildActionValue(ctx, summary, report)
	if err != nil {
		return fmt.Errorf("failed to build button metadata: %w", err)
	}

	// The color bar rides on an attachment, so the blocks go inside one.
	req := slack.PostMessageRequest{
		Channel: n.channel,
		Text:    text,
		Attachments: []slack.Attachment{
			{
				Color: scoreColor(score),
				Blocks: []slack.Block{
					{Type: "divider"},
					{
						Type: "section",
						Text: &slack.TextObject{
							Type: "mrkdwn",
							Text: fmt.Sprintf("🆕 *New Report* | %s | ID: `%s`", timestamp, uuid.NewString()[:8]),
						},
					},
					{
						Type: "section",
						Text: &slack.TextObject{Type: "mrkdwn", Text: text},
					},
					{
						Type: "actions",
						Elements: []slack.BlockElement{
							{
								Type:     "button",
								ActionID: ActionIDCreateJira,
								Text:     &slack.TextObject{Type: "plain_text", Text: ButtonText},
								Value:    actionValue,
							},
						},
					},
				},
			},
		},
	}

	if postErr := n.client.PostMessage(ctx, req); postErr == nil {
		n.l.Infof(ctx, "Notify: sent failure report to %s", n.channel)
		return nil
	} else {
		n.l.Errorf(ctx, "Notify: rich message failed, trying plain fallback: %v", postErr)
	}

	fallback := slack.PostMessageRequest{
		Channel: n.channel,
		Text: fmt.Sprintf("Test failure in %s: %s... (Click the link to see full logs)",
			report.JobName, truncate(summary, 500)),
	}
	if err := n.client.PostMessage(ctx, fallback); err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}

	n.l.Infof(ctx, "Notify: sent plain fallback report to %s", n.channel)
	return nil
}

// buildActionValue packs just enough context into the button value to file
// a bug later, keeping each field inside Slack's 2000-char value limit.
func (n *Notifier) buildActionValue(ctx context.Context, summary string, report model.FailureReport) (string, error) {
	clean := cleanMarkdown(summary)

	meta := model.BugMetadata{
		Summary:     truncate(summaryTitle(summary, 60), 75),
		Description: truncate(clean, maxButtonValueLength-200),
		JobName:     truncate(report.JobName, 50),
		CommitSHA:   report.ShortCommit(),
	}

	encoded, err := model.EncodeBugMetadata(meta)
	if err != nil {
		return "", err
	}
	if len(encoded) > maxButtonValueLength {
		// Should not happen with the per-field budgets above.
		n.l.Warnf(ctx, "Notify: encoded metadata %d chars exceeds budget, trimming description", len(encoded))
		overflow := len(encoded) - maxButtonValueLength
		meta.Description = truncate(meta.Description, max(0, len(meta.Description)-overflow))
		encoded, err = model.EncodeBugMetadata(meta)
		if err != nil {
			return "", err
		}
	}
	return encoded, nil
}
