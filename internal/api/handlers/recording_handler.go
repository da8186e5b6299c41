package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yudhis/interviewmate/internal/services"
	"github.com/yudhis/interviewmate/internal/utils"
)

type RecordingHandler struct {
	svc services.RecordingService
}

func NewRecordingHandler(svc services.RecordingService) *RecordingHandler {
	return &RecordingHandler{svc: svc}
}

// Get reports recording availability. Lookup failures are soft: the response
// is always 200 with a status field, because recordings are a non-critical
// enhancement.
func (h *RecordingHandler) Get(c *gin.Context) {
	conversationID := c.Param("conversation_id")
	if conversationID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "RecordingHandler.Get", "conversation_id is required", nil))
		return
	}

	c.JSON(http.StatusOK, h.svc.Lookup(c.Request.Context(), conversationID))
}
