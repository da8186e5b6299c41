package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yudhis/interviewmate/internal/services"
	"github.com/yudhis/interviewmate/internal/tavus"
)

type ConversationHandler struct {
	svc services.InterviewService
}

func NewConversationHandler(svc services.InterviewService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

func (h *ConversationHandler) List(c *gin.Context) {
	items, err := h.svc.ListConversations(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []tavus.ConversationListItem{}
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// Get returns the verbose conversation detail. Transcript messages with the
// system role are filtered out for display; the feedback path keeps them.
func (h *ConversationHandler) Get(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	detail, err := h.svc.GetConversation(c.Request.Context(), conversationID)
	if err != nil {
		writeError(c, err)
		return
	}

	for i := range detail.Events {
		ev := &detail.Events[i]
		if ev.EventType != tavus.EventTranscriptionReady {
			continue
		}
		filtered := make([]tavus.TranscriptMessage, 0, len(ev.Properties.Transcript))
		for _, msg := range ev.Properties.Transcript {
			if msg.Role == "system" {
				continue
			}
			filtered = append(filtered, msg)
		}
		ev.Properties.Transcript = filtered
	}

	c.JSON(http.StatusOK, detail)
}
