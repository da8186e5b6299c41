package services

import (
	"context"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/tavus"
	"github.com/yudhis/interviewmate/internal/utils"
)

// DocumentWatchInterval is how often a status watch polls the provider.
const DocumentWatchInterval = 5 * time.Second

// DocumentService manages the knowledge base: URL-registered resumes and job
// descriptions whose processing status is driven entirely by the provider.
type DocumentService interface {
	Upload(ctx context.Context, documentURL, documentName string, tags []string) (*models.KnowledgeDocument, error)
	List(ctx context.Context, tag string) ([]models.KnowledgeDocument, error)
	Delete(ctx context.Context, documentID string) error
	Watch(ctx context.Context, tag string, interval time.Duration, send func([]models.KnowledgeDocument) error) error
}

type documentService struct {
	tavus TavusAPI
	log   *logrus.Logger
}

func NewDocumentService(tavusAPI TavusAPI, log *logrus.Logger) DocumentService {
	return &documentService{tavus: tavusAPI, log: log}
}

func (s *documentService) Upload(ctx context.Context, documentURL, documentName string, tags []string) (*models.KnowledgeDocument, error) {
	const op = "DocumentService.Upload"

	if documentURL == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "document_url is required", nil)
	}
	if documentName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "document_name is required", nil)
	}
	u, err := url.ParseRequestURI(documentURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, utils.E(utils.CodeInvalidArgument, op, "document_url must be a valid http(s) URL", err)
	}

	doc, err := s.tavus.CreateDocument(ctx, tavus.DocumentRequest{
		DocumentURL:  documentURL,
		DocumentName: documentName,
		Tags:         tags,
	})
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to upload document", err)
	}
	return doc, nil
}

// List returns the knowledge base, optionally filtered by tag.
func (s *documentService) List(ctx context.Context, tag string) ([]models.KnowledgeDocument, error) {
	const op = "DocumentService.List"

	docs, err := s.tavus.ListDocuments(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to fetch documents", err)
	}

	if tag == "" {
		return docs, nil
	}
	filtered := make([]models.KnowledgeDocument, 0, len(docs))
	for _, d := range docs {
		if d.HasTag(tag) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

func (s *documentService) Delete(ctx context.Context, documentID string) error {
	const op = "DocumentService.Delete"

	if documentID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "document_id is required", nil)
	}
	if err := s.tavus.DeleteDocument(ctx, documentID); err != nil {
		return utils.E(utils.CodeUpstream, op, "failed to delete document", err)
	}
	return nil
}

// Watch polls the document list on a fixed interval and pushes each snapshot
// through send. It returns when ctx is cancelled or send fails, so the poll
// loop's lifetime is exactly the subscriber's.
func (s *documentService) Watch(ctx context.Context, tag string, interval time.Duration, send func([]models.KnowledgeDocument) error) error {
	if interval <= 0 {
		interval = DocumentWatchInterval
	}

	push := func() error {
		docs, err := s.List(ctx, tag)
		if err != nil {
			// Provider hiccups should not tear the watch down.
			s.log.WithError(err).Debug("document watch poll failed")
			return nil
		}
		return send(docs)
	}

	if err := push(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := push(); err != nil {
				return err
			}
		}
	}
}
