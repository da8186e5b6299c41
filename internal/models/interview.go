package models

// Interview categories.
const (
	CategoryLeetCode = "leetcode"
	CategoryGeneral  = "general"
)

// Experience levels.
const (
	LevelEntry     = "entry"
	LevelMid       = "mid"
	LevelSenior    = "senior"
	LevelExecutive = "executive"
)

// Interview types.
const (
	TypeBehavioral = "behavioral"
	TypeTechnical  = "technical"
	TypeMixed      = "mixed"
)

// InterviewConfig is the setup-screen submission. Immutable for the session.
type InterviewConfig struct {
	Category        string `json:"category"`
	Role            string `json:"role"`
	Industry        string `json:"industry"`
	ExperienceLevel string `json:"experience_level"`
	InterviewType   string `json:"interview_type"`
}

// DocumentSelection tags the attached knowledge-base documents explicitly.
// The provider convention couples document order to meaning (first = resume,
// second = job description); this struct carries the meaning instead.
type DocumentSelection struct {
	ResumeID         string `json:"resume_id,omitempty"`
	JobDescriptionID string `json:"job_description_id,omitempty"`
}

// IDs returns the ordered document-id list the provider expects:
// resume first, job description second.
func (d DocumentSelection) IDs() []string {
	var ids []string
	if d.ResumeID != "" {
		ids = append(ids, d.ResumeID)
	}
	if d.JobDescriptionID != "" {
		ids = append(ids, d.JobDescriptionID)
	}
	return ids
}

// DeriveDocumentFlags maps a positional document-id list to the
// hasResume/hasJobDescription pair the way the provider convention reads it:
// one document is assumed to be a resume, two means resume plus job
// description. A lone job description sent positionally is therefore
// misread as a resume; callers who care use DocumentSelection instead.
func DeriveDocumentFlags(documentIDs []string) (hasResume, hasJobDescription bool) {
	return len(documentIDs) > 0, len(documentIDs) > 1
}
