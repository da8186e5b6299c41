package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/services"
	"github.com/yudhis/interviewmate/internal/tavus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errStubNotArranged = errors.New("stub method not arranged")

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type stubInterviewService struct {
	start   func(ctx context.Context, p services.StartParams) (*models.InterviewSession, error)
	end     func(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	list    func(ctx context.Context) ([]tavus.ConversationListItem, error)
	getConv func(ctx context.Context, conversationID string) (*tavus.ConversationDetail, error)
}

func (s *stubInterviewService) Start(ctx context.Context, p services.StartParams) (*models.InterviewSession, error) {
	if s.start == nil {
		return nil, errStubNotArranged
	}
	return s.start(ctx, p)
}

func (s *stubInterviewService) End(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	if s.end == nil {
		return nil, errStubNotArranged
	}
	return s.end(ctx, sessionID)
}

func (s *stubInterviewService) ListConversations(ctx context.Context) ([]tavus.ConversationListItem, error) {
	if s.list == nil {
		return nil, errStubNotArranged
	}
	return s.list(ctx)
}

func (s *stubInterviewService) GetConversation(ctx context.Context, conversationID string) (*tavus.ConversationDetail, error) {
	if s.getConv == nil {
		return nil, errStubNotArranged
	}
	return s.getConv(ctx, conversationID)
}

type stubSessionService struct {
	get     func(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	reset   func(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	history func(ctx context.Context, limit int) ([]models.InterviewSession, error)
}

func (s *stubSessionService) Begin(ctx context.Context, cfg models.InterviewConfig, documentIDs []string) (*models.InterviewSession, error) {
	return nil, errStubNotArranged
}

func (s *stubSessionService) Activate(ctx context.Context, sessionID, conversationID, conversationURL, personaID string) (*models.InterviewSession, error) {
	return nil, errStubNotArranged
}

func (s *stubSessionService) Fail(ctx context.Context, sessionID, message string) error {
	return errStubNotArranged
}

func (s *stubSessionService) End(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	return nil, errStubNotArranged
}

func (s *stubSessionService) Reset(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	if s.reset == nil {
		return nil, errStubNotArranged
	}
	return s.reset(ctx, sessionID)
}

func (s *stubSessionService) Get(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	if s.get == nil {
		return nil, errStubNotArranged
	}
	return s.get(ctx, sessionID)
}

func (s *stubSessionService) History(ctx context.Context, limit int) ([]models.InterviewSession, error) {
	if s.history == nil {
		return nil, errStubNotArranged
	}
	return s.history(ctx, limit)
}

type stubFeedbackService struct {
	generate func(ctx context.Context, conversationID string, cfg models.InterviewConfig) (*models.FeedbackRecord, error)
}

func (s *stubFeedbackService) Generate(ctx context.Context, conversationID string, cfg models.InterviewConfig) (*models.FeedbackRecord, error) {
	if s.generate == nil {
		return nil, errStubNotArranged
	}
	return s.generate(ctx, conversationID, cfg)
}

type stubRecordingService struct {
	lookup func(ctx context.Context, conversationID string) models.RecordingStatus
}

func (s *stubRecordingService) Lookup(ctx context.Context, conversationID string) models.RecordingStatus {
	if s.lookup == nil {
		return models.RecordingStatus{Status: models.RecordingError, Message: "stub not arranged"}
	}
	return s.lookup(ctx, conversationID)
}

type stubDocumentService struct {
	upload func(ctx context.Context, documentURL, documentName string, tags []string) (*models.KnowledgeDocument, error)
	list   func(ctx context.Context, tag string) ([]models.KnowledgeDocument, error)
	del    func(ctx context.Context, documentID string) error
}

func (s *stubDocumentService) Upload(ctx context.Context, documentURL, documentName string, tags []string) (*models.KnowledgeDocument, error) {
	if s.upload == nil {
		return nil, errStubNotArranged
	}
	return s.upload(ctx, documentURL, documentName, tags)
}

func (s *stubDocumentService) List(ctx context.Context, tag string) ([]models.KnowledgeDocument, error) {
	if s.list == nil {
		return nil, errStubNotArranged
	}
	return s.list(ctx, tag)
}

func (s *stubDocumentService) Delete(ctx context.Context, documentID string) error {
	if s.del == nil {
		return errStubNotArranged
	}
	return s.del(ctx, documentID)
}

func (s *stubDocumentService) Watch(ctx context.Context, tag string, interval time.Duration, send func([]models.KnowledgeDocument) error) error {
	return errStubNotArranged
}
