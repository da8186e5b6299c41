package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/storage"
)

const (
	// signedURLTTL is the fixed lifetime of a recording link. The link is
	// recomputed on every request and never cached.
	signedURLTTL = time.Hour

	// notRecordedAge: a conversation past this age with no stored object is
	// presumed to never have been recorded.
	notRecordedAge = 2 * time.Hour
)

// RecordingService locates session recordings in object storage. Lookup never
// hard-fails: storage trouble is reported as a soft "error" status because
// recording availability is a non-critical enhancement.
type RecordingService interface {
	Lookup(ctx context.Context, conversationID string) models.RecordingStatus
}

type recordingService struct {
	store  storage.ObjectStore // nil when storage is not configured
	tavus  TavusAPI
	prefix string
	log    *logrus.Logger
	now    func() time.Time
}

func NewRecordingService(store storage.ObjectStore, tavusAPI TavusAPI, prefix string, log *logrus.Logger) RecordingService {
	return &recordingService{
		store:  store,
		tavus:  tavusAPI,
		prefix: strings.TrimSuffix(prefix, "/"),
		log:    log,
		now:    time.Now,
	}
}

func (s *recordingService) Lookup(ctx context.Context, conversationID string) models.RecordingStatus {
	if s.store == nil {
		return models.RecordingStatus{
			Status:  models.RecordingNotConfigured,
			Message: "Recording feature is not configured for this application",
		}
	}

	prefix := s.prefix + "/" + conversationID + "/"
	keys, err := s.store.ListKeys(ctx, prefix)
	if err != nil {
		s.log.WithError(err).WithField("conversation_id", conversationID).Warn("recording lookup failed")
		return models.RecordingStatus{
			Status:  models.RecordingError,
			Message: "Failed to check recording status. Please try again later.",
		}
	}

	if key, ok := pickRecording(keys); ok {
		url, err := s.store.SignedGetURL(ctx, key, signedURLTTL)
		if err != nil {
			s.log.WithError(err).WithField("key", key).Warn("failed to sign recording url")
			return models.RecordingStatus{
				Status:  models.RecordingError,
				Message: "Failed to check recording status. Please try again later.",
			}
		}
		return models.RecordingStatus{
			URL:     url,
			Status:  models.RecordingReady,
			Message: "Recording is ready to watch",
		}
	}

	// No object yet: classify by conversation age. If the provider lookup
	// fails, fall through to "processing" rather than failing the request.
	if detail, err := s.tavus.GetConversation(ctx, conversationID, false); err == nil {
		if created, perr := time.Parse(time.RFC3339, detail.CreatedAt); perr == nil {
			// Strictly older than the cutoff; exactly two hours still
			// reports processing.
			if s.now().Sub(created) > notRecordedAge {
				return models.RecordingStatus{
					Status:  models.RecordingNotAvailable,
					Message: "This conversation does not have a recording. Recording may not have been enabled when this interview was conducted.",
				}
			}
		}
	} else {
		s.log.WithError(err).Debug("could not fetch conversation metadata for recording age check")
	}

	return models.RecordingStatus{
		Status:  models.RecordingProcessing,
		Message: "Recording is still processing. Try refreshing in a few minutes.",
	}
}

// pickRecording selects the first listed object that is not a folder marker
// and looks like a video: a known extension, or no extension at all (the
// provider sometimes omits it).
func pickRecording(keys []string) (string, bool) {
	for _, key := range keys {
		if strings.HasSuffix(key, "/") {
			continue
		}
		base := key
		if i := strings.LastIndexByte(key, '/'); i >= 0 {
			base = key[i+1:]
		}
		if strings.HasSuffix(base, ".mp4") || strings.HasSuffix(base, ".webm") || !strings.Contains(base, ".") {
			return key, true
		}
	}
	return "", false
}
