package prd

import (
	"github.com/gin-gonic/gin"

	pkgLog "qa-triage-assistant/pkg/log"
	pkgResponse "qa-triage-assistant/pkg/response"
)

type Handler struct {
	uc UseCase
	l  pkgLog.Logger
}

func NewHandler(uc UseCase, l pkgLog.Logger) *Handler {
	return &Handler{uc: uc, l: l}
}

// HandleParse godoc
// @Summary Parse a PRD page into test artifacts
// @Description Fetches a Confluence PRD page and generates features, test plans, and test cases
// @Tags prd
// @Produce json
// @Param page_id query string true "Confluence page id"
// @Success 200 {object} prd.ParseOutput
// @Router /prd/parse [get]
func (h *Handler) HandleParse(c *gin.Context) {
	ctx := c.Request.Context()

	pageID := c.Query("page_id")

	output, err := h.uc.ParsePRD(ctx, pageID)
	if err != nil {
		h.l.Errorf(ctx, "ParsePRD failed for page %s: %v", pageID, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	pkgResponse.OK(c, output)
}
