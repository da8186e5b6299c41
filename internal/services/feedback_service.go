package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yudhis/interviewmate/config"
	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/providers/llm"
	mongorepo "github.com/yudhis/interviewmate/internal/repositories/mongo"
	"github.com/yudhis/interviewmate/internal/tavus"
	"github.com/yudhis/interviewmate/internal/utils"
)

// transcriptRetryDelay is the single fixed wait before the one re-fetch when
// the transcript has not arrived yet. No backoff, no second retry.
const transcriptRetryDelay = 10 * time.Second

const (
	feedbackTemperature = 0.7
	feedbackMaxTokens   = 2000
)

const feedbackSystemPrompt = `You are an expert interview coach providing constructive feedback on mock interviews. Analyze both the transcript and visual analysis to provide detailed, actionable feedback.

CRITICAL FORMATTING RULES:
- Use strict markdown formatting with clear hierarchy
- Start with an overall performance summary (2-3 sentences)
- Organize feedback into EXACTLY these sections with ## headers:
  ## Overall Performance
  ## Key Strengths
  ## Areas for Improvement
  ## Specific Recommendations
  ## Visual Presence & Body Language (only if perception analysis is available)
- Use bullet points with meaningful content only (NO empty bullets)
- Each bullet should be specific and actionable
- Use **bold** for emphasis on key points
- Keep feedback constructive and professional
- The feedback is for the 'user' role in the transcript, not 'system' or 'assistant'
- Aim for 8-15 total bullet points across all sections
- Each section should have 2-4 substantive bullet points

STRUCTURE EXAMPLE:
## Overall Performance
[2-3 sentence summary of performance]

## Key Strengths
- **[Strength category]**: Specific observation with example from interview
- **[Strength category]**: Specific observation with example

## Areas for Improvement
- **[Area]**: What to improve and why, with specific suggestion
- **[Area]**: What to improve and why, with specific suggestion

## Specific Recommendations
- **[Action item]**: Concrete next step to practice
- **[Action item]**: Concrete next step to practice

## Visual Presence & Body Language
[Only if perception analysis is available]
- **[Observation]**: Based on visual analysis data`

const transcriptUnavailableFeedback = "# Interview Feedback\n\n" +
	"⚠️ No transcript available yet. The conversation may still be processing.\n\n" +
	"## What You Can Do:\n" +
	"- The interview may have been too short to generate a transcript\n" +
	"- Try having a longer conversation (at least 1-2 minutes)\n" +
	"- Wait a few moments and refresh the page\n\n" +
	"**Tip:** For best results, have a natural conversation with the interviewer for at least 2-3 questions."

// FeedbackService synthesizes markdown feedback from the conversation
// transcript and optional perception analysis.
type FeedbackService interface {
	Generate(ctx context.Context, conversationID string, cfg models.InterviewConfig) (*models.FeedbackRecord, error)
}

type feedbackService struct {
	cfg      *config.Config
	tavus    TavusAPI
	llm      llm.Provider
	feedback mongorepo.FeedbackRepository
	log      *logrus.Logger

	// sleep is replaced in tests so the retry delay is observable without
	// waiting it out.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewFeedbackService(cfg *config.Config, tavusAPI TavusAPI, provider llm.Provider, repo mongorepo.FeedbackRepository, log *logrus.Logger) FeedbackService {
	return &feedbackService{
		cfg:      cfg,
		tavus:    tavusAPI,
		llm:      provider,
		feedback: repo,
		log:      log,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *feedbackService) Generate(ctx context.Context, conversationID string, cfg models.InterviewConfig) (*models.FeedbackRecord, error) {
	const op = "FeedbackService.Generate"

	if conversationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "conversation_id is required", nil)
	}

	// A report generated earlier is returned as-is; only real feedback is
	// archived, so a not-yet-ready transcript can still be retried later.
	if rec, err := s.feedback.GetByConversationID(ctx, conversationID); err == nil {
		return rec, nil
	} else if !errors.Is(err, utils.ErrNotFound) {
		s.log.WithError(err).Warn("feedback archive lookup failed, regenerating")
	}

	detail, err := s.tavus.GetConversation(ctx, conversationID, true)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to fetch conversation", err)
	}

	transcript, ok := detail.Transcript()
	perception, hasPerception := detail.Perception()

	if !ok {
		s.log.WithField("conversation_id", conversationID).
			Info("transcript not ready, retrying once after delay")
		if err := s.sleep(ctx, transcriptRetryDelay); err != nil {
			return nil, utils.E(utils.CodeTimeout, op, "cancelled while waiting for transcript", err)
		}

		retry, rerr := s.tavus.GetConversation(ctx, conversationID, true)
		if rerr != nil {
			// The retry fetch failing is treated like an empty transcript:
			// the caller gets the placeholder, not an error.
			s.log.WithError(rerr).Warn("transcript retry fetch failed")
		} else {
			transcript, ok = retry.Transcript()
			perception, hasPerception = retry.Perception()
		}
	}

	if !ok {
		return &models.FeedbackRecord{
			ConversationID: conversationID,
			Markdown:       transcriptUnavailableFeedback,
			Config:         cfg,
			Placeholder:    true,
			CreatedAt:      time.Now().UTC(),
		}, nil
	}

	userPrompt := composeFeedbackPrompt(cfg, transcript, perception)

	markdown, err := s.llm.Complete(ctx, llm.Request{
		System:      feedbackSystemPrompt,
		User:        userPrompt,
		Model:       s.cfg.FeedbackModel,
		Temperature: feedbackTemperature,
		MaxTokens:   feedbackMaxTokens,
	})
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to generate feedback", err)
	}

	rec := &models.FeedbackRecord{
		ConversationID: conversationID,
		Markdown:       markdown,
		Config:         cfg,
		HasPerception:  hasPerception,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.feedback.Upsert(ctx, rec); err != nil {
		s.log.WithError(err).WithField("conversation_id", conversationID).
			Warn("failed to archive feedback report")
	}
	return rec, nil
}

// composeFeedbackPrompt renders the transcript as "role: content" lines (all
// roles, including system) and appends the perception analysis as a JSON
// block when present.
func composeFeedbackPrompt(cfg models.InterviewConfig, transcript []tavus.TranscriptMessage, perception json.RawMessage) string {
	lines := make([]string, 0, len(transcript))
	for _, msg := range transcript {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}

	perceptionText := ""
	if len(perception) > 0 {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, perception, "", "  "); err == nil {
			perceptionText = "\n\nVisual Analysis:\n" + pretty.String()
		} else {
			perceptionText = "\n\nVisual Analysis:\n" + string(perception)
		}
	}

	return fmt.Sprintf(`Interview Details:
- Role: %s
- Industry: %s
- Experience Level: %s
- Interview Type: %s

Transcript:
%s%s

Provide detailed, constructive feedback following the exact format specified in the system prompt.`,
		cfg.Role, cfg.Industry, cfg.ExperienceLevel, cfg.InterviewType,
		strings.Join(lines, "\n\n"), perceptionText)
}
