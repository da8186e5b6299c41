package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/services"
	"github.com/yudhis/interviewmate/internal/tavus"
	"github.com/yudhis/interviewmate/internal/utils"
)

func TestWriteError_AppErrorMapping(t *testing.T) {
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		writeError(c, utils.E(utils.CodeInvalidArgument, "Test.Op", "bad input", nil))
	})

	w := doJSON(t, r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "bad input", env.Error)
	assert.Empty(t, env.Details)
	assert.Zero(t, env.UpstreamStatus)
}

func TestWriteError_RelaysUpstreamStatusAndBody(t *testing.T) {
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		upstream := &tavus.APIError{Op: "tavus.CreateConversation", StatusCode: 422, Body: `{"message":"replica busy"}`}
		writeError(c, utils.E(utils.CodeUpstream, "Test.Op", "failed to create conversation", upstream))
	})

	w := doJSON(t, r, http.MethodGet, "/boom", "")
	assert.Equal(t, 422, w.Code)

	var env APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "failed to create conversation", env.Error)
	assert.Equal(t, `{"message":"replica busy"}`, env.Details)
	assert.Equal(t, 422, env.UpstreamStatus)
}

func TestWriteError_TruncatesDetailsOnRuneBoundary(t *testing.T) {
	// 80 three-byte runes: 240 bytes, with byte 200 inside a rune.
	body := strings.Repeat("€", 80)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		upstream := &tavus.APIError{Op: "tavus.GetConversation", StatusCode: 502, Body: body}
		writeError(c, utils.E(utils.CodeUpstream, "Test.Op", "provider failed", upstream))
	})

	w := doJSON(t, r, http.MethodGet, "/boom", "")
	assert.Equal(t, 502, w.Code)

	var env APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, utf8.ValidString(env.Details))
	assert.LessOrEqual(t, len(env.Details), 200)
	assert.Equal(t, 198, len(env.Details))
}

func TestInterviewStart_BindRejectsMissingCategory(t *testing.T) {
	h := NewInterviewHandler(&stubInterviewService{}, &stubSessionService{})
	r := gin.New()
	r.POST("/api/interviews", h.Start)

	w := doJSON(t, r, http.MethodPost, "/api/interviews", `{"role":"QA"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInterviewStart_Success(t *testing.T) {
	svc := &stubInterviewService{
		start: func(ctx context.Context, p services.StartParams) (*models.InterviewSession, error) {
			assert.Equal(t, models.CategoryGeneral, p.Config.Category)
			require.NotNil(t, p.Documents)
			assert.Equal(t, "docA", p.Documents.ResumeID)
			return &models.InterviewSession{
				ID:              "s1",
				ConversationID:  "c1",
				ConversationURL: "https://call/c1",
				Status:          models.SessionActive,
			}, nil
		},
	}
	h := NewInterviewHandler(svc, &stubSessionService{})
	r := gin.New()
	r.POST("/api/interviews", h.Start)

	body := `{"category":"general","role":"QA","industry":"gaming","experience_level":"mid","interview_type":"mixed",
		"documents":{"resume_id":"docA","job_description_id":"docB"}}`
	w := doJSON(t, r, http.MethodPost, "/api/interviews", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StartInterviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, "c1", resp.ConversationID)
	assert.Equal(t, []string{"docA", "docB"}, resp.DocumentIDs)
	assert.Equal(t, models.SessionActive, resp.Status)
}

func TestInterviewStart_DocumentIDsNeverNull(t *testing.T) {
	svc := &stubInterviewService{
		start: func(ctx context.Context, p services.StartParams) (*models.InterviewSession, error) {
			return &models.InterviewSession{ID: "s1", Status: models.SessionActive}, nil
		},
	}
	h := NewInterviewHandler(svc, &stubSessionService{})
	r := gin.New()
	r.POST("/api/interviews", h.Start)

	w := doJSON(t, r, http.MethodPost, "/api/interviews", `{"category":"leetcode"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"document_ids":[]`)
}

func TestInterviewReset(t *testing.T) {
	sessions := &stubSessionService{
		reset: func(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
			assert.Equal(t, "s1", sessionID)
			return &models.InterviewSession{ID: "s1", Status: models.SessionIdle}, nil
		},
	}
	h := NewInterviewHandler(&stubInterviewService{}, sessions)
	r := gin.New()
	r.POST("/api/interviews/:session_id/reset", h.Reset)

	w := doJSON(t, r, http.MethodPost, "/api/interviews/s1/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"idle"`)
}

func TestFeedbackGenerate_RequiresConversationID(t *testing.T) {
	h := NewFeedbackHandler(&stubFeedbackService{})
	r := gin.New()
	r.POST("/api/feedback", h.Generate)

	w := doJSON(t, r, http.MethodPost, "/api/feedback", `{"interview_config":{"role":"QA"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackGenerate_Success(t *testing.T) {
	svc := &stubFeedbackService{
		generate: func(ctx context.Context, conversationID string, cfg models.InterviewConfig) (*models.FeedbackRecord, error) {
			assert.Equal(t, "c1", conversationID)
			assert.Equal(t, "QA", cfg.Role)
			return &models.FeedbackRecord{ConversationID: "c1", Markdown: "## Overall Performance\nGood."}, nil
		},
	}
	h := NewFeedbackHandler(svc)
	r := gin.New()
	r.POST("/api/feedback", h.Generate)

	w := doJSON(t, r, http.MethodPost, "/api/feedback", `{"conversation_id":"c1","interview_config":{"role":"QA"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GenerateFeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "## Overall Performance\nGood.", resp.Feedback)
	assert.False(t, resp.Placeholder)
}

func TestFeedbackGenerate_PlaceholderFlagged(t *testing.T) {
	svc := &stubFeedbackService{
		generate: func(ctx context.Context, conversationID string, cfg models.InterviewConfig) (*models.FeedbackRecord, error) {
			return &models.FeedbackRecord{ConversationID: "c1", Markdown: "pending", Placeholder: true}, nil
		},
	}
	h := NewFeedbackHandler(svc)
	r := gin.New()
	r.POST("/api/feedback", h.Generate)

	w := doJSON(t, r, http.MethodPost, "/api/feedback", `{"conversation_id":"c1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"placeholder":true`)
}

func TestRecordingGet_SoftStatusIsStill200(t *testing.T) {
	svc := &stubRecordingService{
		lookup: func(ctx context.Context, conversationID string) models.RecordingStatus {
			return models.RecordingStatus{Status: models.RecordingError, Message: "Failed to check recording status. Please try again later."}
		},
	}
	h := NewRecordingHandler(svc)
	r := gin.New()
	r.GET("/api/recordings/:conversation_id", h.Get)

	w := doJSON(t, r, http.MethodGet, "/api/recordings/c1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestConversationList_EmptyIsDataArray(t *testing.T) {
	svc := &stubInterviewService{
		list: func(ctx context.Context) ([]tavus.ConversationListItem, error) { return nil, nil },
	}
	h := NewConversationHandler(svc)
	r := gin.New()
	r.GET("/api/conversations", h.List)

	w := doJSON(t, r, http.MethodGet, "/api/conversations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestConversationGet_FiltersSystemMessages(t *testing.T) {
	svc := &stubInterviewService{
		getConv: func(ctx context.Context, conversationID string) (*tavus.ConversationDetail, error) {
			return &tavus.ConversationDetail{
				ConversationID: conversationID,
				Events: []tavus.ConversationEvent{
					{EventType: tavus.EventTranscriptionReady, Properties: tavus.EventProperties{
						Transcript: []tavus.TranscriptMessage{
							{Role: "system", Content: "persona instructions"},
							{Role: "assistant", Content: "Tell me about yourself."},
							{Role: "user", Content: "Sure."},
						},
					}},
				},
			}, nil
		},
	}
	h := NewConversationHandler(svc)
	r := gin.New()
	r.GET("/api/conversations/:conversation_id", h.Get)

	w := doJSON(t, r, http.MethodGet, "/api/conversations/c1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var detail tavus.ConversationDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Events, 1)
	msgs := detail.Events[0].Properties.Transcript
	require.Len(t, msgs, 2)
	assert.Equal(t, "assistant", msgs[0].Role)
	assert.Equal(t, "user", msgs[1].Role)
	assert.NotContains(t, w.Body.String(), "persona instructions")
}

func TestDocumentUploadAndDelete(t *testing.T) {
	svc := &stubDocumentService{
		upload: func(ctx context.Context, documentURL, documentName string, tags []string) (*models.KnowledgeDocument, error) {
			return &models.KnowledgeDocument{DocumentID: "d1", DocumentName: documentName, Status: models.DocumentProcessing, Tags: tags}, nil
		},
		del: func(ctx context.Context, documentID string) error { return nil },
	}
	h := NewDocumentHandler(svc)
	r := gin.New()
	r.POST("/api/documents", h.Upload)
	r.DELETE("/api/documents/:document_id", h.Delete)

	w := doJSON(t, r, http.MethodPost, "/api/documents", `{"document_url":"https://example.com/r.pdf","document_name":"resume","tags":["resume"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"document_id":"d1"`)

	w = doJSON(t, r, http.MethodPost, "/api/documents", `{"document_name":"resume"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/documents/d1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"document_id":"d1"}`, w.Body.String())
}

func TestDocumentList_EmptyIsArray(t *testing.T) {
	svc := &stubDocumentService{
		list: func(ctx context.Context, tag string) ([]models.KnowledgeDocument, error) {
			assert.Equal(t, models.TagResume, tag)
			return nil, nil
		},
	}
	h := NewDocumentHandler(svc)
	r := gin.New()
	r.GET("/api/documents", h.List)

	w := doJSON(t, r, http.MethodGet, "/api/documents?tag=resume", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"documents":[]}`, w.Body.String())
}
