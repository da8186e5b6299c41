package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/services"
	"github.com/yudhis/interviewmate/internal/utils"
)

type InterviewHandler struct {
	svc      services.InterviewService
	sessions services.SessionService
}

func NewInterviewHandler(svc services.InterviewService, sessions services.SessionService) *InterviewHandler {
	return &InterviewHandler{svc: svc, sessions: sessions}
}

type StartInterviewRequest struct {
	Category        string `json:"category" binding:"required"`
	Role            string `json:"role"`
	Industry        string `json:"industry"`
	ExperienceLevel string `json:"experience_level"`
	InterviewType   string `json:"interview_type"`

	// Either the tagged selection or the positional list; tagged wins.
	Documents   *models.DocumentSelection `json:"documents,omitempty"`
	DocumentIDs []string                  `json:"document_ids,omitempty"`
}

type StartInterviewResponse struct {
	SessionID       string   `json:"session_id"`
	ConversationID  string   `json:"conversation_id"`
	ConversationURL string   `json:"conversation_url"`
	DocumentIDs     []string `json:"document_ids"`
	Status          string   `json:"status"`
}

func (h *InterviewHandler) Start(c *gin.Context) {
	var req StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Start", "invalid request body", err))
		return
	}

	session, err := h.svc.Start(c.Request.Context(), services.StartParams{
		Config: models.InterviewConfig{
			Category:        req.Category,
			Role:            req.Role,
			Industry:        req.Industry,
			ExperienceLevel: req.ExperienceLevel,
			InterviewType:   req.InterviewType,
		},
		Documents:   req.Documents,
		DocumentIDs: req.DocumentIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	docIDs := req.DocumentIDs
	if req.Documents != nil {
		docIDs = req.Documents.IDs()
	}
	if docIDs == nil {
		docIDs = []string{}
	}

	c.JSON(http.StatusOK, StartInterviewResponse{
		SessionID:       session.ID,
		ConversationID:  session.ConversationID,
		ConversationURL: session.ConversationURL,
		DocumentIDs:     docIDs,
		Status:          session.Status,
	})
}

func (h *InterviewHandler) End(c *gin.Context) {
	sessionID := c.Param("session_id")

	session, err := h.svc.End(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

func (h *InterviewHandler) Reset(c *gin.Context) {
	sessionID := c.Param("session_id")

	session, err := h.sessions.Reset(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	sessionID := c.Param("session_id")

	session, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *InterviewHandler) History(c *gin.Context) {
	rows, err := h.sessions.History(c.Request.Context(), 50)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": rows})
}
