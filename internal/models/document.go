package models

// Knowledge-base document statuses as reported by the provider.
const (
	DocumentProcessing = "processing"
	DocumentReady      = "ready"
	DocumentFailed     = "failed"
)

// Document tags used by the setup screen.
const (
	TagResume         = "resume"
	TagJobDescription = "job-description"
)

// KnowledgeDocument is a provider-hosted reference document (resume or job
// description). The identifier is normalized from the provider's inconsistent
// field naming before it reaches this shape.
type KnowledgeDocument struct {
	DocumentID   string   `json:"document_id"`
	DocumentName string   `json:"document_name"`
	DocumentURL  string   `json:"document_url,omitempty"`
	Status       string   `json:"status"` // processing|ready|failed
	CreatedAt    string   `json:"created_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	Tags         []string `json:"tags"`
}

// HasTag reports whether the document carries the given tag.
func (d KnowledgeDocument) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
