package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/services"
	"github.com/yudhis/interviewmate/internal/utils"
)

type DocumentHandler struct {
	svc services.DocumentService
}

func NewDocumentHandler(svc services.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

type UploadDocumentRequest struct {
	DocumentURL  string   `json:"document_url" binding:"required"`
	DocumentName string   `json:"document_name" binding:"required"`
	Tags         []string `json:"tags"`
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	var req UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentHandler.Upload", "document_url and document_name are required", err))
		return
	}

	doc, err := h.svc.Upload(c.Request.Context(), req.DocumentURL, req.DocumentName, req.Tags)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	tag := c.Query("tag")

	docs, err := h.svc.List(c.Request.Context(), tag)
	if err != nil {
		writeError(c, err)
		return
	}
	if docs == nil {
		docs = []models.KnowledgeDocument{}
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID := c.Param("document_id")

	if err := h.svc.Delete(c.Request.Context(), documentID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "document_id": documentID})
}
