package tavus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/yudhis/interviewmate/internal/models"
)

// APIError carries a non-2xx provider response so callers can relay the
// remote status and body verbatim.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: tavus returned %d: %s", e.Op, e.StatusCode, excerpt(e.Body, 200))
}

func (e *APIError) UpstreamStatus() int  { return e.StatusCode }
func (e *APIError) UpstreamBody() string { return e.Body }

// excerpt truncates on a rune boundary so a multi-byte character is never
// split mid-sequence.
func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Client is the outbound gateway to the video-persona provider. Every method
// issues exactly one HTTP request; retries are the caller's decision.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(apiKey, baseURL string, log *logrus.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log,
	}
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

// CreatePersona provisions a new persona on the provider.
func (c *Client) CreatePersona(ctx context.Context, req PersonaRequest) (*Persona, error) {
	var p Persona
	if err := c.do(ctx, "tavus.CreatePersona", http.MethodPost, "/personas", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PatchPersona applies JSON-Patch operations to an existing persona.
// HTTP 304 means the persona already matches the desired state and is
// treated as success.
func (c *Client) PatchPersona(ctx context.Context, personaID string, ops []PatchOp) error {
	const op = "tavus.PatchPersona"

	b, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/personas/"+url.PathEscape(personaID), bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		c.log.WithField("persona_id", personaID).Debug("persona already up to date")
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return nil
}

// CreateConversation starts a live session bound to a persona and replica.
func (c *Client) CreateConversation(ctx context.Context, req ConversationRequest) (*Conversation, error) {
	var conv Conversation
	if err := c.do(ctx, "tavus.CreateConversation", http.MethodPost, "/conversations", req, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// EndConversation asks the provider to terminate a live session.
func (c *Client) EndConversation(ctx context.Context, conversationID string) error {
	return c.do(ctx, "tavus.EndConversation", http.MethodPost,
		"/conversations/"+url.PathEscape(conversationID)+"/end", nil, nil)
}

// GetConversation fetches one conversation; verbose includes the event list
// with transcript and perception analysis.
func (c *Client) GetConversation(ctx context.Context, conversationID string, verbose bool) (*ConversationDetail, error) {
	path := "/conversations/" + url.PathEscape(conversationID)
	if verbose {
		path += "?verbose=true"
	}
	var d ConversationDetail
	if err := c.do(ctx, "tavus.GetConversation", http.MethodGet, path, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListConversations returns all conversations for the account.
func (c *Client) ListConversations(ctx context.Context) ([]ConversationListItem, error) {
	var out struct {
		Data []ConversationListItem `json:"data"`
	}
	if err := c.do(ctx, "tavus.ListConversations", http.MethodGet, "/conversations", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateDocument registers a URL-hosted document with the knowledge base.
func (c *Client) CreateDocument(ctx context.Context, req DocumentRequest) (*models.KnowledgeDocument, error) {
	const op = "tavus.CreateDocument"

	var raw rawDocument
	if err := c.do(ctx, op, http.MethodPost, "/documents", req, &raw); err != nil {
		return nil, err
	}

	id := raw.identifier()
	if id == "" {
		return nil, fmt.Errorf("%s: response missing uuid/document_id/id field", op)
	}

	status := raw.Status
	if status == "" {
		status = models.DocumentProcessing
	}
	return &models.KnowledgeDocument{
		DocumentID:   id,
		DocumentName: raw.DocumentName,
		DocumentURL:  raw.DocumentURL,
		Status:       status,
		CreatedAt:    raw.CreatedAt,
		UpdatedAt:    raw.UpdatedAt,
		Tags:         raw.Tags,
	}, nil
}

// ListDocuments returns the knowledge base, identifiers normalized. Items
// with no recognizable identifier are logged and excluded rather than
// defaulted.
func (c *Client) ListDocuments(ctx context.Context) ([]models.KnowledgeDocument, error) {
	var out struct {
		Data []rawDocument `json:"data"`
	}
	if err := c.do(ctx, "tavus.ListDocuments", http.MethodGet, "/documents", nil, &out); err != nil {
		return nil, err
	}

	docs := make([]models.KnowledgeDocument, 0, len(out.Data))
	for _, raw := range out.Data {
		id := raw.identifier()
		if id == "" {
			c.log.WithField("document_name", raw.DocumentName).
				Warn("dropping document with no recognizable identifier")
			continue
		}
		tags := raw.Tags
		if tags == nil {
			tags = []string{}
		}
		docs = append(docs, models.KnowledgeDocument{
			DocumentID:   id,
			DocumentName: raw.DocumentName,
			DocumentURL:  raw.DocumentURL,
			Status:       raw.Status,
			CreatedAt:    raw.CreatedAt,
			UpdatedAt:    raw.UpdatedAt,
			Tags:         tags,
		})
	}
	return docs, nil
}

// DeleteDocument removes a document from the knowledge base.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	return c.do(ctx, "tavus.DeleteDocument", http.MethodDelete,
		"/documents/"+url.PathEscape(documentID), nil, nil)
}
