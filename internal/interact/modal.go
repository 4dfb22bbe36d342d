package interact

import (
	"fmt"
	"sort"

	"qa-triage-assistant/internal/model"
	"qa-triage-assistant/pkg/slack"
)

// CallbackIDSubmitBug identifies the bug filing modal on submission.
const CallbackIDSubmitBug = "submit_jira_bug"

// Block and action ids of the modal inputs. The submission handler reads
// the view state by these keys.
const (
	blockTitle        = "title_block"
	blockDescription  = "description_block"
	blockAssignee     = "assignee_block"
	blockTeamCategory = "team_category_block"

	actionTitle        = "title"
	actionDescription  = "description"
	actionAssignee     = "assignee"
	actionTeamCategory = "team_category"
)

// teamCategories are the selectable values of the team routing field.
var teamCategories = []string{"Catalog", "Platform", "UI", "Protection", "Others"}

// buildBugModal assembles the confirmation modal, pre-filled from the
// metadata the notification button carried. The raw blob rides along in
// private_metadata so the submission still has job and commit context.
func buildBugModal(meta model.BugMetadata, rawMetadata string, assignees []slack.Option) slack.View {
	title := meta.Summary
	if title == "" {
		title = fmt.Sprintf("Issue in %s", meta.JobName)
	}

	blocks := []slack.Block{
		{
			Type:    "input",
			BlockID: blockTitle,
			Label:   &slack.TextObject{Type: "plain_text", Text: "Bug Title"},
			Element: &slack.BlockElement{
				Type:         "plain_text_input",
				ActionID:     actionTitle,
				InitialValue: title,
			},
		},
		{
			Type:    "input",
			BlockID: blockDescription,
			Label:   &slack.TextObject{Type: "plain_text", Text: "Description"},
			Element: &slack.BlockElement{
				Type:         "plain_text_input",
				ActionID:     actionDescription,
				Multiline:    true,
				InitialValue: meta.Description,
			},
		},
	}

	if len(assignees) > 0 {
		blocks = append(blocks, slack.Block{
			Type:    "input",
			BlockID: blockAssignee,
			Label:   &slack.TextObject{Type: "plain_text", Text: "Assignee"},
			Element: &slack.BlockElement{
				Type:        "static_select",
				ActionID:    actionAssignee,
				Placeholder: &slack.TextObject{Type: "plain_text", Text: "Select an assignee"},
				Options:     assignees,
			},
		})
	}

	blocks = append(blocks, slack.Block{
		Type:    "input",
		BlockID: blockTeamCategory,
		Label:   &slack.TextObject{Type: "plain_text", Text: "Team Category"},
		Element: &slack.BlockElement{
			Type:        "static_select",
			ActionID:    actionTeamCategory,
			Placeholder: &slack.TextObject{Type: "plain_text", Text: "Select a team category"},
			Options:     teamOptions(),
		},
	})

	return slack.View{
		Type:            "modal",
		CallbackID:      CallbackIDSubmitBug,
		Title:           &slack.TextObject{Type: "plain_text", Text: "File a Jira Bug"},
		Submit:          &slack.TextObject{Type: "plain_text", Text: "Submit"},
		Close:           &slack.TextObject{Type: "plain_text", Text: "Cancel"},
		PrivateMetadata: rawMetadata,
		Blocks:          blocks,
	}
}

func teamOptions() []slack.Option {
	opts := make([]slack.Option, 0, len(teamCategories))
	for _, tc := range teamCategories {
		opts = append(opts, slack.Option{
			Text:  slack.TextObject{Type: "plain_text", Text: tc},
			Value: tc,
		})
	}
	return opts
}

// assigneeOptions converts the configured name -> email map into a stable
// option list.
func assigneeOptions(assignees map[string]string) []slack.Option {
	names := make([]string, 0, len(assignees))
	for name := range assignees {
		names = append(names, name)
	}
	sort.Strings(names)

	opts := make([]slack.Option, 0, len(names))
	for _, name := range names {
		opts = append(opts, slack.Option{
			Text:  slack.TextObject{Type: "plain_text", Text: name},
			Value: assignees[name],
		})
	}
	return opts
}
