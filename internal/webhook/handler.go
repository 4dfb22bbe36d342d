package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qa-triage-assistant/internal/model"
	"qa-triage-assistant/internal/triage"
)

// HandleFailure godoc
// @Summary Report a CI test failure
// @Description Accepts a raw failure log, scores it, notifies Slack, and files a bug when confidence is high enough
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} triage.ProcessFailureOutput
// @Router /webhook/failure [post]
func (h *Handler) HandleFailure(c *gin.Context) {
	ctx := c.Request.Context()

	// Read body
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		c.JSON(http.StatusOK, triage.ProcessFailureOutput{
			Message: "Error: failed to read request body",
			Success: false,
		})
		return
	}

	// Verify signature when configured
	if h.security.Enabled() {
		signature := c.GetHeader("X-Hub-Signature-256")
		if err := h.security.ValidateSignature(body, signature); err != nil {
			h.l.Errorf(ctx, "Webhook signature verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	}

	// Check IP allowlist before spending a rate-limit token
	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "Webhook rejected: %v", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	// Check rate limit
	if err := h.security.CheckRateLimit(extractIP(c.Request)); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	var req failureRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.l.Errorf(ctx, "Failed to parse failure report: %v", err)
		c.JSON(http.StatusOK, triage.ProcessFailureOutput{
			Message: "Error: malformed failure report",
			Success: false,
		})
		return
	}

	h.l.Infof(ctx, "HandleFailure: job=%s commit=%s log=%d chars", req.JobName, req.CommitSHA, len(req.Log))

	// The triage pipeline runs synchronously and never raises past this
	// boundary. The caller always gets 200 with the outcome in-body.
	output := h.triageUC.ProcessFailure(ctx, triage.ProcessFailureInput{
		Report: model.FailureReport{
			Log:        req.Log,
			JobName:    req.JobName,
			CommitSHA:  req.CommitSHA,
			ReceivedAt: time.Now(),
		},
	})

	c.JSON(http.StatusOK, output)
}
