package models

import (
	"time"

	"gorm.io/datatypes"
)

// Session lifecycle states. ended and error are terminal; only Reset leaves them.
const (
	SessionIdle    = "idle"
	SessionLoading = "loading"
	SessionActive  = "active"
	SessionEnded   = "ended"
	SessionError   = "error"
)

// InterviewSession is one mock-interview lifecycle, persisted so the history
// screen can list past sessions alongside the provider's conversation list.
type InterviewSession struct {
	ID              string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ConversationID  string `gorm:"column:conversation_id;type:text;index" json:"conversation_id,omitempty"`
	ConversationURL string `gorm:"column:conversation_url;type:text" json:"conversation_url,omitempty"`
	PersonaID       string `gorm:"column:persona_id;type:text" json:"persona_id,omitempty"`

	Status string `gorm:"column:status;type:text" json:"status"` // idle|loading|active|ended|error
	Error  string `gorm:"column:error;type:text" json:"error,omitempty"`

	Config      datatypes.JSON `gorm:"column:config;type:jsonb" json:"config,omitempty"`
	DocumentIDs datatypes.JSON `gorm:"column:document_ids;type:jsonb" json:"document_ids,omitempty"`

	StartedAt *time.Time `gorm:"column:started_at;type:timestamptz" json:"started_at,omitempty"`
	EndedAt   *time.Time `gorm:"column:ended_at;type:timestamptz" json:"ended_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (InterviewSession) TableName() string { return "interview_sessions" }
