package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/providers/llm"
	"github.com/yudhis/interviewmate/internal/tavus"
	"github.com/yudhis/interviewmate/internal/utils"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeTavus substitutes the provider client. Unset methods fail loudly so a
// test cannot silently exercise a call path it did not arrange.
type fakeTavus struct {
	createPersona      func(ctx context.Context, req tavus.PersonaRequest) (*tavus.Persona, error)
	patchPersona       func(ctx context.Context, personaID string, ops []tavus.PatchOp) error
	createConversation func(ctx context.Context, req tavus.ConversationRequest) (*tavus.Conversation, error)
	endConversation    func(ctx context.Context, conversationID string) error
	getConversation    func(ctx context.Context, conversationID string, verbose bool) (*tavus.ConversationDetail, error)
	listConversations  func(ctx context.Context) ([]tavus.ConversationListItem, error)
	createDocument     func(ctx context.Context, req tavus.DocumentRequest) (*models.KnowledgeDocument, error)
	listDocuments      func(ctx context.Context) ([]models.KnowledgeDocument, error)
	deleteDocument     func(ctx context.Context, documentID string) error
}

var errUnexpectedCall = errors.New("unexpected provider call")

func (f *fakeTavus) CreatePersona(ctx context.Context, req tavus.PersonaRequest) (*tavus.Persona, error) {
	if f.createPersona == nil {
		return nil, errUnexpectedCall
	}
	return f.createPersona(ctx, req)
}

func (f *fakeTavus) PatchPersona(ctx context.Context, personaID string, ops []tavus.PatchOp) error {
	if f.patchPersona == nil {
		return errUnexpectedCall
	}
	return f.patchPersona(ctx, personaID, ops)
}

func (f *fakeTavus) CreateConversation(ctx context.Context, req tavus.ConversationRequest) (*tavus.Conversation, error) {
	if f.createConversation == nil {
		return nil, errUnexpectedCall
	}
	return f.createConversation(ctx, req)
}

func (f *fakeTavus) EndConversation(ctx context.Context, conversationID string) error {
	if f.endConversation == nil {
		return errUnexpectedCall
	}
	return f.endConversation(ctx, conversationID)
}

func (f *fakeTavus) GetConversation(ctx context.Context, conversationID string, verbose bool) (*tavus.ConversationDetail, error) {
	if f.getConversation == nil {
		return nil, errUnexpectedCall
	}
	return f.getConversation(ctx, conversationID, verbose)
}

func (f *fakeTavus) ListConversations(ctx context.Context) ([]tavus.ConversationListItem, error) {
	if f.listConversations == nil {
		return nil, errUnexpectedCall
	}
	return f.listConversations(ctx)
}

func (f *fakeTavus) CreateDocument(ctx context.Context, req tavus.DocumentRequest) (*models.KnowledgeDocument, error) {
	if f.createDocument == nil {
		return nil, errUnexpectedCall
	}
	return f.createDocument(ctx, req)
}

func (f *fakeTavus) ListDocuments(ctx context.Context) ([]models.KnowledgeDocument, error) {
	if f.listDocuments == nil {
		return nil, errUnexpectedCall
	}
	return f.listDocuments(ctx)
}

func (f *fakeTavus) DeleteDocument(ctx context.Context, documentID string) error {
	if f.deleteDocument == nil {
		return errUnexpectedCall
	}
	return f.deleteDocument(ctx, documentID)
}

// memSessionRepo is an in-memory stand-in for the Postgres session store.
type memSessionRepo struct {
	mu   sync.Mutex
	rows map[string]models.InterviewSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{rows: make(map[string]models.InterviewSession)}
}

func (r *memSessionRepo) Insert(ctx context.Context, s *models.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.ID] = *s
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*models.InterviewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := row
	return &out, nil
}

func (r *memSessionRepo) GetByConversationID(ctx context.Context, conversationID string) (*models.InterviewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ConversationID == conversationID {
			out := row
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *memSessionRepo) Update(ctx context.Context, s *models.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.ID] = *s
	return nil
}

func (r *memSessionRepo) Latest(ctx context.Context, limit int) ([]models.InterviewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.InterviewSession, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memFeedbackRepo is an in-memory stand-in for the Mongo feedback archive.
type memFeedbackRepo struct {
	mu   sync.Mutex
	recs map[string]models.FeedbackRecord

	upsertErr error
}

func newMemFeedbackRepo() *memFeedbackRepo {
	return &memFeedbackRepo{recs: make(map[string]models.FeedbackRecord)}
}

func (r *memFeedbackRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *memFeedbackRepo) Upsert(ctx context.Context, rec *models.FeedbackRecord) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[rec.ConversationID] = *rec
	return nil
}

func (r *memFeedbackRepo) GetByConversationID(ctx context.Context, conversationID string) (*models.FeedbackRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[conversationID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := rec
	return &out, nil
}

// memCache implements the cache the way the Redis adapter behaves, minus TTL
// expiry (tests delete keys explicitly).
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// fakeLLM records the last completion request.
type fakeLLM struct {
	calls int
	last  llm.Request

	out string
	err error
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeLLM) Close() error { return nil }

// fakeStore implements storage.ObjectStore.
type fakeStore struct {
	keys    []string
	listErr error

	signedURL string
	signErr   error

	listCalls  int
	lastPrefix string
}

func (s *fakeStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	s.listCalls++
	s.lastPrefix = prefix
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.keys, nil
}

func (s *fakeStore) SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return s.signedURL, nil
}
