package models

// Recording lookup statuses. Recomputed on every request; the URL is a
// short-lived signed link and must not be cached.
const (
	RecordingReady         = "ready"
	RecordingProcessing    = "processing"
	RecordingNotConfigured = "not_configured"
	RecordingNotAvailable  = "not_available"
	RecordingError         = "error"
)

type RecordingStatus struct {
	URL     string `json:"recording_url,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
