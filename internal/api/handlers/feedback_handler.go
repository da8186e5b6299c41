package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/services"
	"github.com/yudhis/interviewmate/internal/utils"
)

type FeedbackHandler struct {
	svc services.FeedbackService
}

func NewFeedbackHandler(svc services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

type GenerateFeedbackRequest struct {
	ConversationID  string                 `json:"conversation_id" binding:"required"`
	InterviewConfig models.InterviewConfig `json:"interview_config"`
}

type GenerateFeedbackResponse struct {
	Feedback    string `json:"feedback"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

func (h *FeedbackHandler) Generate(c *gin.Context) {
	var req GenerateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FeedbackHandler.Generate", "conversation_id is required", err))
		return
	}

	rec, err := h.svc.Generate(c.Request.Context(), req.ConversationID, req.InterviewConfig)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateFeedbackResponse{
		Feedback:    rec.Markdown,
		Placeholder: rec.Placeholder,
	})
}
