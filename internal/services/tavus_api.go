package services

import (
	"context"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/tavus"
)

// TavusAPI is the provider surface the services consume. *tavus.Client
// implements it; tests substitute fakes.
type TavusAPI interface {
	CreatePersona(ctx context.Context, req tavus.PersonaRequest) (*tavus.Persona, error)
	PatchPersona(ctx context.Context, personaID string, ops []tavus.PatchOp) error
	CreateConversation(ctx context.Context, req tavus.ConversationRequest) (*tavus.Conversation, error)
	EndConversation(ctx context.Context, conversationID string) error
	GetConversation(ctx context.Context, conversationID string, verbose bool) (*tavus.ConversationDetail, error)
	ListConversations(ctx context.Context) ([]tavus.ConversationListItem, error)
	CreateDocument(ctx context.Context, req tavus.DocumentRequest) (*models.KnowledgeDocument, error)
	ListDocuments(ctx context.Context) ([]models.KnowledgeDocument, error)
	DeleteDocument(ctx context.Context, documentID string) error
}
