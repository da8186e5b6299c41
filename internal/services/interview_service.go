package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yudhis/interviewmate/config"
	"github.com/yudhis/interviewmate/internal/cache"
	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/prompt"
	"github.com/yudhis/interviewmate/internal/tavus"
	"github.com/yudhis/interviewmate/internal/utils"
)

const conversationListCacheKey = "tavus:conversations"

// StartParams is the start-interview submission. Documents carries the
// explicit resume/job-description tagging; DocumentIDs is the positional
// fallback (first = resume, second = job description) kept for older clients.
type StartParams struct {
	Config      models.InterviewConfig
	Documents   *models.DocumentSelection
	DocumentIDs []string
}

// InterviewService ties persona selection, conversation creation, and the
// session lifecycle together.
type InterviewService interface {
	Start(ctx context.Context, p StartParams) (*models.InterviewSession, error)
	End(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	ListConversations(ctx context.Context) ([]tavus.ConversationListItem, error)
	GetConversation(ctx context.Context, conversationID string) (*tavus.ConversationDetail, error)
}

type interviewService struct {
	cfg      *config.Config
	tavus    TavusAPI
	sessions SessionService
	cache    cache.Cache
	log      *logrus.Logger
}

func NewInterviewService(cfg *config.Config, tavusAPI TavusAPI, sessions SessionService, c cache.Cache, log *logrus.Logger) InterviewService {
	return &interviewService{cfg: cfg, tavus: tavusAPI, sessions: sessions, cache: c, log: log}
}

// resolveDocuments returns the ordered provider document-id list and the
// resume/job-description flags from either input shape.
func resolveDocuments(p StartParams) (ids []string, flags prompt.Flags, err error) {
	if p.Documents != nil {
		flags = prompt.Flags{
			HasResume:         p.Documents.ResumeID != "",
			HasJobDescription: p.Documents.JobDescriptionID != "",
		}
		return p.Documents.IDs(), flags, nil
	}

	if len(p.DocumentIDs) > 2 {
		return nil, prompt.Flags{}, fmt.Errorf("at most two documents can be attached")
	}
	hasResume, hasJD := models.DeriveDocumentFlags(p.DocumentIDs)
	return p.DocumentIDs, prompt.Flags{HasResume: hasResume, HasJobDescription: hasJD}, nil
}

func (s *interviewService) Start(ctx context.Context, p StartParams) (*models.InterviewSession, error) {
	const op = "InterviewService.Start"

	cfg := p.Config
	switch cfg.Category {
	case models.CategoryLeetCode:
		// role is optional for the coding track
	case models.CategoryGeneral:
		if cfg.Role == "" || cfg.Industry == "" || cfg.ExperienceLevel == "" || cfg.InterviewType == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op,
				"role, industry, experience_level, and interview_type are required", nil)
		}
	default:
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid interview category", nil)
	}

	documentIDs, flags, err := resolveDocuments(p)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}

	session, err := s.sessions.Begin(ctx, cfg, documentIDs)
	if err != nil {
		return nil, err
	}

	personaID, err := s.resolvePersona(ctx, cfg, flags)
	if err != nil {
		s.fail(ctx, session.ID, "failed to prepare persona")
		return nil, err
	}

	req := tavus.ConversationRequest{
		ReplicaID:      s.cfg.ReplicaID,
		PersonaID:      personaID,
		CustomGreeting: prompt.Greeting(cfg),
		DocumentIDs:    documentIDs,
		Properties:     tavus.DefaultConversationProperties(),
	}
	conv, err := s.tavus.CreateConversation(ctx, req)
	if err != nil {
		s.fail(ctx, session.ID, "failed to create conversation")
		return nil, utils.E(utils.CodeUpstream, op, "failed to create conversation", err)
	}

	session, err = s.sessions.Activate(ctx, session.ID, conv.ConversationID, conv.ConversationURL, personaID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Del(ctx, conversationListCacheKey)

	s.log.WithFields(logrus.Fields{
		"session_id":      session.ID,
		"conversation_id": conv.ConversationID,
		"category":        cfg.Category,
		"persona_id":      personaID,
	}).Info("interview started")

	return session, nil
}

// resolvePersona picks the leetcode persona as-is, or prepares the general
// recruiter: by default the shared persona is patched in place (two
// simultaneous general interviews can race on it; the provider resolves with
// whichever patch lands last), unless EphemeralPersona creates a private one.
func (s *interviewService) resolvePersona(ctx context.Context, cfg models.InterviewConfig, flags prompt.Flags) (string, error) {
	const op = "InterviewService.resolvePersona"

	if cfg.Category == models.CategoryLeetCode {
		return s.cfg.LeetCodePersonaID, nil
	}

	systemPrompt := prompt.SystemPrompt(cfg, flags)
	contextLine := prompt.ContextLine(cfg, flags)

	if s.cfg.EphemeralPersona {
		p, err := s.tavus.CreatePersona(ctx, tavus.PersonaRequest{
			PersonaName:      fmt.Sprintf("Interviewer-%d", time.Now().UnixMilli()),
			SystemPrompt:     systemPrompt,
			Context:          contextLine,
			DefaultReplicaID: s.cfg.ReplicaID,
		})
		if err != nil {
			return "", utils.E(utils.CodeUpstream, op, "failed to create persona", err)
		}
		return p.PersonaID, nil
	}

	ops := []tavus.PatchOp{
		{Op: "replace", Path: "/system_prompt", Value: systemPrompt},
		{Op: "replace", Path: "/context", Value: contextLine},
	}
	if err := s.tavus.PatchPersona(ctx, s.cfg.GeneralRecruiterID, ops); err != nil {
		return "", utils.E(utils.CodeUpstream, op, "failed to update persona", err)
	}
	return s.cfg.GeneralRecruiterID, nil
}

func (s *interviewService) End(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	session, err := s.sessions.End(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Del(ctx, conversationListCacheKey)
	return session, nil
}

// ListConversations relays the provider's conversation list, cached briefly
// so the history screen does not hammer the provider.
func (s *interviewService) ListConversations(ctx context.Context) ([]tavus.ConversationListItem, error) {
	const op = "InterviewService.ListConversations"

	var cached []tavus.ConversationListItem
	if hit, err := s.cache.GetJSON(ctx, conversationListCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	items, err := s.tavus.ListConversations(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to fetch conversations", err)
	}

	_ = s.cache.SetJSON(ctx, conversationListCacheKey, items, 30*time.Second)
	return items, nil
}

func (s *interviewService) GetConversation(ctx context.Context, conversationID string) (*tavus.ConversationDetail, error) {
	const op = "InterviewService.GetConversation"

	if conversationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "conversation_id is required", nil)
	}
	detail, err := s.tavus.GetConversation(ctx, conversationID, true)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to fetch conversation details", err)
	}
	return detail, nil
}

func (s *interviewService) fail(ctx context.Context, sessionID, msg string) {
	if err := s.sessions.Fail(ctx, sessionID, msg); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("failed to mark session errored")
	}
}
