package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Config carries every externally sourced setting. It is constructed once in
// main and injected, so a missing credential fails at startup instead of
// surfacing as an ambient nil inside a request handler.
type Config struct {
	Port string

	// Video-persona provider (Tavus)
	TavusAPIKey        string
	TavusBaseURL       string
	ReplicaID          string
	LeetCodePersonaID  string
	GeneralRecruiterID string
	// When true, general-category interviews create a fresh persona instead
	// of patching the shared recruiter persona. Patching a shared persona is
	// racy when two general interviews start at once; this trades extra
	// provider resources for isolation.
	EphemeralPersona bool

	// Completion provider
	LLMProvider    string // "openai" | "vertex"
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	FeedbackModel  string
	VertexProject  string
	VertexLocation string
	VertexModel    string

	// Recording storage (optional; absence is a supported state)
	RecordingsBucket string
	RecordingsPrefix string

	// Datastores
	PostgresURI string
	MongoURI    string
	MongoDB     string
	RedisAddr   string

	// Optional bearer auth for the inbound API
	AuthJWTSecret string
}

const (
	defaultTavusBaseURL  = "https://tavusapi.com/v2"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultFeedbackModel = "gpt-4o"
	defaultRecordPrefix  = "tavus"
)

// Load reads the environment into a Config. Only structural defaults are
// applied here; Validate decides what is required.
func Load() *Config {
	c := &Config{
		Port:               getenv("PORT", "8080"),
		TavusAPIKey:        os.Getenv("TAVUS_API_KEY"),
		TavusBaseURL:       getenv("TAVUS_BASE_URL", defaultTavusBaseURL),
		ReplicaID:          os.Getenv("REPLICA_ID"),
		LeetCodePersonaID:  os.Getenv("LEET_CODE_PERSONA_ID"),
		GeneralRecruiterID: os.Getenv("GENERAL_RECRUITER_ID"),
		EphemeralPersona:   os.Getenv("TAVUS_EPHEMERAL_PERSONA") == "true",

		LLMProvider:    getenv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getenv("OPENAI_BASE_URL", defaultOpenAIBaseURL),
		FeedbackModel:  getenv("FEEDBACK_MODEL", defaultFeedbackModel),
		VertexProject:  os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation: getenv("VERTEX_LOCATION", "us-central1"),
		VertexModel:    os.Getenv("VERTEX_MODEL"),

		RecordingsBucket: os.Getenv("RECORDINGS_BUCKET"),
		RecordingsPrefix: getenv("RECORDINGS_PREFIX", defaultRecordPrefix),

		PostgresURI: os.Getenv("POSTGRES_URI"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "interviewmate"),
		RedisAddr:   firstenv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),

		AuthJWTSecret: os.Getenv("AUTH_JWT_SECRET"),
	}
	return c
}

// Validate reports every missing required setting at once. Recording storage
// and bearer auth are optional and self-detect absence.
func (c *Config) Validate() error {
	var missing []string
	if c.TavusAPIKey == "" {
		missing = append(missing, "TAVUS_API_KEY")
	}
	if c.ReplicaID == "" {
		missing = append(missing, "REPLICA_ID")
	}
	if c.LeetCodePersonaID == "" {
		missing = append(missing, "LEET_CODE_PERSONA_ID")
	}
	if c.GeneralRecruiterID == "" && !c.EphemeralPersona {
		missing = append(missing, "GENERAL_RECRUITER_ID")
	}
	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case "vertex":
		if c.VertexProject == "" {
			missing = append(missing, "VERTEX_PROJECT_ID")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (want openai or vertex)", c.LLMProvider)
	}
	if c.PostgresURI == "" {
		missing = append(missing, "POSTGRES_URI")
	}
	if c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.RedisAddr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

// RecordingsConfigured reports whether the recording-storage integration is
// enabled. Absence is a valid deployment, not an error.
func (c *Config) RecordingsConfigured() bool {
	return c.RecordingsBucket != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstenv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
