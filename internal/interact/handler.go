package interact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qa-triage-assistant/internal/model"
	"qa-triage-assistant/internal/notify"
	"qa-triage-assistant/pkg/slack"
)

// HandleInteraction godoc
// @Summary Slack interactivity callback
// @Description Handles "File a bug" button clicks and bug modal submissions
// @Tags slack
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200
// @Router /slack/interact [post]
func (h *Handler) HandleInteraction(c *gin.Context) {
	ctx := c.Request.Context()

	raw := c.PostForm("payload")

	var payload slack.InteractionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		h.l.Errorf(ctx, "Failed to parse interaction payload: %v", err)
		c.JSON(http.StatusOK, gin.H{"text": "Error: malformed interaction payload"})
		return
	}

	switch payload.Type {
	case "block_actions":
		h.handleBlockActions(c, payload)
	case "view_submission":
		h.handleViewSubmission(c, payload)
	default:
		h.l.Infof(ctx, "Unsupported interaction type: %s", payload.Type)
		c.Status(http.StatusOK)
	}
}

// handleBlockActions opens the bug filing modal when the "File a bug"
// button is clicked. A metadata blob that does not decode is a hard stop,
// never a guess.
func (h *Handler) handleBlockActions(c *gin.Context, payload slack.InteractionPayload) {
	ctx := c.Request.Context()

	if len(payload.Actions) == 0 {
		c.Status(http.StatusOK)
		return
	}

	action := payload.Actions[0]
	if action.ActionID != notify.ActionIDCreateJira {
		h.l.Infof(ctx, "Ignoring action: %s", action.ActionID)
		c.Status(http.StatusOK)
		return
	}

	meta, err := model.DecodeBugMetadata(action.Value)
	if err != nil {
		h.l.Errorf(ctx, "Invalid bug metadata on button: %v", err)
		c.JSON(http.StatusOK, gin.H{"text": "Error: this report's bug data is corrupted and cannot be filed"})
		return
	}

	view := buildBugModal(meta, action.Value, h.assignees)
	if err := h.slackClient.OpenView(ctx, payload.TriggerID, view); err != nil {
		h.l.Errorf(ctx, "Failed to open bug modal: %v", err)
		c.JSON(http.StatusOK, gin.H{"text": fmt.Sprintf("Error creating modal: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": "Opening bug creation form..."})
}

// handleViewSubmission files the bug from the submitted modal values. The
// ack goes back immediately; the Jira call runs detached so Slack's 3s
// response window is never at risk.
func (h *Handler) handleViewSubmission(c *gin.Context, payload slack.InteractionPayload) {
	ctx := c.Request.Context()

	if payload.View == nil || payload.View.CallbackID != CallbackIDSubmitBug {
		c.Status(http.StatusOK)
		return
	}

	values := payload.View.State.Values

	title := inputValue(values, blockTitle, actionTitle)
	if title == "" {
		title = "Untitled Bug"
	}
	description := inputValue(values, blockDescription, actionDescription)
	assignee := selectedValue(values, blockAssignee, actionAssignee)
	teamCategory := selectedValue(values, blockTeamCategory, actionTeamCategory)

	commitSHA := "N/A"
	if meta, err := model.DecodeBugMetadata(payload.View.PrivateMetadata); err == nil {
		commitSHA = meta.CommitSHA
	} else {
		h.l.Warnf(ctx, "Submission metadata did not decode: %v", err)
	}

	draft := model.BugDraft{
		Title:        title,
		Description:  fmt.Sprintf("%s\n\nCommit: %s", description, commitSHA),
		Assignee:     assignee,
		TeamCategory: teamCategory,
	}

	sc := model.Scope{UserID: payload.User.ID, Username: payload.User.Username}
	go h.createAndNotify(sc, draft)

	// Close the modal before Slack times out
	c.JSON(http.StatusOK, gin.H{"response_action": "clear"})
}

// createAndNotify files the bug and DMs the submitting user the result.
// Runs detached from the request; nothing here propagates back.
func (h *Handler) createAndNotify(sc model.Scope, draft model.BugDraft) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	h.l.Infof(ctx, "Filing bug for user %s: %.50s", sc.UserID, draft.Title)

	url, err := h.filer.FileBug(ctx, draft)

	var text string
	if err != nil {
		h.l.Errorf(ctx, "Background bug filing failed: %v", err)
		text = fmt.Sprintf("❌ Error creating bug: %v", err)
	} else {
		text = fmt.Sprintf("✅ Bug created successfully: %s", url)
	}

	if err := h.slackClient.PostMessage(ctx, slack.PostMessageRequest{
		Channel: sc.UserID,
		Text:    text,
	}); err != nil {
		h.l.Errorf(ctx, "Failed to DM filing result to %s: %v", sc.UserID, err)
	}
}

func inputValue(values map[string]map[string]slack.ViewStateValue, blockID, actionID string) string {
	if block, ok := values[blockID]; ok {
		return block[actionID].Value
	}
	return ""
}

func selectedValue(values map[string]map[string]slack.ViewStateValue, blockID, actionID string) string {
	if block, ok := values[blockID]; ok {
		if opt := block[actionID].SelectedOption; opt != nil {
			return opt.Value
		}
	}
	return ""
}
