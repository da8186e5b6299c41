package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/yudhis/interviewmate/internal/models"
	pgrepo "github.com/yudhis/interviewmate/internal/repositories/postgres"
	"github.com/yudhis/interviewmate/internal/utils"
)

// SessionService owns the interview-session lifecycle. Transitions are only
// reachable through these operations: idle -> loading -> {active, error};
// active -> ended; ended/error -> idle via Reset.
type SessionService interface {
	Begin(ctx context.Context, cfg models.InterviewConfig, documentIDs []string) (*models.InterviewSession, error)
	Activate(ctx context.Context, sessionID, conversationID, conversationURL, personaID string) (*models.InterviewSession, error)
	Fail(ctx context.Context, sessionID, message string) error
	End(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	Reset(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	Get(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	History(ctx context.Context, limit int) ([]models.InterviewSession, error)
}

type sessionService struct {
	sessions pgrepo.SessionRepository
	tavus    TavusAPI
	log      *logrus.Logger

	// endTimeout bounds the fire-and-forget end-conversation notification.
	endTimeout time.Duration
}

func NewSessionService(sessions pgrepo.SessionRepository, tavusAPI TavusAPI, log *logrus.Logger) SessionService {
	return &sessionService{
		sessions:   sessions,
		tavus:      tavusAPI,
		log:        log,
		endTimeout: 10 * time.Second,
	}
}

func (s *sessionService) Begin(ctx context.Context, cfg models.InterviewConfig, documentIDs []string) (*models.InterviewSession, error) {
	const op = "SessionService.Begin"

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode config", err)
	}
	docsJSON, err := json.Marshal(documentIDs)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode document ids", err)
	}

	row := &models.InterviewSession{
		ID:          uuid.NewString(),
		Status:      models.SessionLoading,
		Config:      datatypes.JSON(cfgJSON),
		DocumentIDs: datatypes.JSON(docsJSON),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.sessions.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return row, nil
}

func (s *sessionService) Activate(ctx context.Context, sessionID, conversationID, conversationURL, personaID string) (*models.InterviewSession, error) {
	const op = "SessionService.Activate"

	row, err := s.get(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}
	if row.Status != models.SessionLoading {
		return nil, utils.E(utils.CodeConflict, op, "session is not loading", nil)
	}

	now := time.Now().UTC()
	row.Status = models.SessionActive
	row.ConversationID = conversationID
	row.ConversationURL = conversationURL
	row.PersonaID = personaID
	row.Error = ""
	row.StartedAt = &now
	if err := s.sessions.Update(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update session", err)
	}
	return row, nil
}

func (s *sessionService) Fail(ctx context.Context, sessionID, message string) error {
	const op = "SessionService.Fail"

	row, err := s.get(ctx, op, sessionID)
	if err != nil {
		return err
	}
	if row.Status != models.SessionLoading && row.Status != models.SessionActive {
		return utils.E(utils.CodeConflict, op, "session is not in a failable state", nil)
	}

	row.Status = models.SessionError
	row.Error = message
	if err := s.sessions.Update(ctx, row); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update session", err)
	}
	return nil
}

// End transitions the session to ended and notifies the provider without
// blocking on the result; a failed notification is logged, never surfaced.
func (s *sessionService) End(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	const op = "SessionService.End"

	row, err := s.get(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}
	if row.Status != models.SessionActive {
		return nil, utils.E(utils.CodeConflict, op, "session is not active", nil)
	}

	now := time.Now().UTC()
	row.Status = models.SessionEnded
	row.EndedAt = &now
	if err := s.sessions.Update(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update session", err)
	}

	if row.ConversationID != "" {
		conversationID := row.ConversationID
		go func() {
			// Detached from the request so navigation away cannot orphan it
			// mid-flight, with an explicit deadline instead of relying on GC.
			ctx, cancel := context.WithTimeout(context.Background(), s.endTimeout)
			defer cancel()
			if err := s.tavus.EndConversation(ctx, conversationID); err != nil {
				s.log.WithError(err).WithField("conversation_id", conversationID).
					Warn("end-conversation notification failed")
			}
		}()
	}

	return row, nil
}

func (s *sessionService) Reset(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	const op = "SessionService.Reset"

	row, err := s.get(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}
	if row.Status != models.SessionEnded && row.Status != models.SessionError {
		return nil, utils.E(utils.CodeConflict, op, "only ended or errored sessions can be reset", nil)
	}

	row.Status = models.SessionIdle
	row.Error = ""
	if err := s.sessions.Update(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update session", err)
	}
	return row, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	return s.get(ctx, "SessionService.Get", sessionID)
}

func (s *sessionService) History(ctx context.Context, limit int) ([]models.InterviewSession, error) {
	const op = "SessionService.History"

	rows, err := s.sessions.Latest(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list sessions", err)
	}
	return rows, nil
}

func (s *sessionService) get(ctx context.Context, op, sessionID string) (*models.InterviewSession, error) {
	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	row, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get session", err)
	}
	return row, nil
}
