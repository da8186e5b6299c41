package tavus

import "encoding/json"

// Conversation event types observed from the provider. The event list is
// unordered and heterogeneous; absence of any event type is a valid state.
const (
	EventTranscriptionReady = "application.transcription_ready"
	EventPerceptionAnalysis = "application.perception_analysis"
	EventShutdown           = "system.shutdown"
)

type TranscriptMessage struct {
	Role      string `json:"role"` // user|assistant|system
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

type EventProperties struct {
	Transcript     []TranscriptMessage `json:"transcript,omitempty"`
	Analysis       json.RawMessage     `json:"analysis,omitempty"`
	ShutdownReason string              `json:"shutdown_reason,omitempty"`
	ReplicaID      string              `json:"replica_id,omitempty"`
}

type ConversationEvent struct {
	EventType   string          `json:"event_type"`
	MessageType string          `json:"message_type,omitempty"`
	Properties  EventProperties `json:"properties"`
	Timestamp   string          `json:"timestamp,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

type ConversationDetail struct {
	ConversationID   string              `json:"conversation_id"`
	ConversationName string              `json:"conversation_name,omitempty"`
	ConversationURL  string              `json:"conversation_url,omitempty"`
	CreatedAt        string              `json:"created_at,omitempty"`
	Status           string              `json:"status,omitempty"`
	ReplicaID        string              `json:"replica_id,omitempty"`
	PersonaID        string              `json:"persona_id,omitempty"`
	Events           []ConversationEvent `json:"events,omitempty"`
}

// Transcript returns the transcript payload of the transcription-ready event.
// ok is false when the event has not arrived yet; that is not an error.
func (d *ConversationDetail) Transcript() (msgs []TranscriptMessage, ok bool) {
	for _, ev := range d.Events {
		if ev.EventType == EventTranscriptionReady {
			return ev.Properties.Transcript, len(ev.Properties.Transcript) > 0
		}
	}
	return nil, false
}

// Perception returns the perception-analysis payload, if present.
func (d *ConversationDetail) Perception() (analysis json.RawMessage, ok bool) {
	for _, ev := range d.Events {
		if ev.EventType == EventPerceptionAnalysis && len(ev.Properties.Analysis) > 0 {
			return ev.Properties.Analysis, true
		}
	}
	return nil, false
}

// ShutdownReason returns the shutdown reason, if the session has one.
func (d *ConversationDetail) ShutdownReason() (reason string, ok bool) {
	for _, ev := range d.Events {
		if ev.EventType == EventShutdown && ev.Properties.ShutdownReason != "" {
			return ev.Properties.ShutdownReason, true
		}
	}
	return "", false
}

type ConversationListItem struct {
	ConversationID   string `json:"conversation_id"`
	ConversationName string `json:"conversation_name,omitempty"`
	ConversationURL  string `json:"conversation_url,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	Status           string `json:"status,omitempty"`
	ReplicaID        string `json:"replica_id,omitempty"`
	PersonaID        string `json:"persona_id,omitempty"`
}

type Conversation struct {
	ConversationID  string `json:"conversation_id"`
	ConversationURL string `json:"conversation_url"`
	Status          string `json:"status,omitempty"`
}

// Conversation policy values fixed by the product.
const (
	MaxCallDurationSeconds        = 600
	ParticipantLeftTimeoutSeconds = 30
	ConversationLanguage          = "english"
)

type ConversationProperties struct {
	MaxCallDuration        int    `json:"max_call_duration"`
	ParticipantLeftTimeout int    `json:"participant_left_timeout"`
	EnableRecording        bool   `json:"enable_recording"`
	Language               string `json:"language"`
}

// DefaultConversationProperties returns the fixed call policy: 10 minute cap,
// 30s participant-left timeout, recording on, English.
func DefaultConversationProperties() ConversationProperties {
	return ConversationProperties{
		MaxCallDuration:        MaxCallDurationSeconds,
		ParticipantLeftTimeout: ParticipantLeftTimeoutSeconds,
		EnableRecording:        true,
		Language:               ConversationLanguage,
	}
}

type ConversationRequest struct {
	ReplicaID      string                 `json:"replica_id"`
	PersonaID      string                 `json:"persona_id"`
	CustomGreeting string                 `json:"custom_greeting,omitempty"`
	DocumentIDs    []string               `json:"document_ids,omitempty"`
	Properties     ConversationProperties `json:"properties"`
}

type Persona struct {
	PersonaID   string `json:"persona_id"`
	PersonaName string `json:"persona_name,omitempty"`
}

type PersonaRequest struct {
	PersonaName      string `json:"persona_name"`
	SystemPrompt     string `json:"system_prompt"`
	Context          string `json:"context,omitempty"`
	DefaultReplicaID string `json:"default_replica_id,omitempty"`
}

// PatchOp is one JSON-Patch operation for persona updates.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value string `json:"value"`
}

type DocumentRequest struct {
	DocumentURL  string   `json:"document_url"`
	DocumentName string   `json:"document_name"`
	Tags         []string `json:"tags,omitempty"`
}

// rawDocument mirrors the provider's document shape. The identifier arrives
// under uuid, document_id, or id depending on the endpoint.
type rawDocument struct {
	UUID         string   `json:"uuid,omitempty"`
	DocumentID   string   `json:"document_id,omitempty"`
	ID           string   `json:"id,omitempty"`
	DocumentName string   `json:"document_name"`
	DocumentURL  string   `json:"document_url,omitempty"`
	Status       string   `json:"status,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// identifier normalizes the document id: uuid first, then document_id, then
// id. Empty result means the item is unusable and must be dropped, not
// defaulted.
func (r rawDocument) identifier() string {
	switch {
	case r.UUID != "":
		return r.UUID
	case r.DocumentID != "":
		return r.DocumentID
	default:
		return r.ID
	}
}
