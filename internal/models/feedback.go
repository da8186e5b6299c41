package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackRecord archives a generated feedback report so a repeat request for
// the same conversation returns the stored markdown instead of re-synthesizing.
type FeedbackRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID string             `bson:"conversation_id" json:"conversation_id"`

	Markdown      string          `bson:"markdown" json:"markdown"`
	Config        InterviewConfig `bson:"config,omitempty" json:"config,omitempty"`
	HasPerception bool            `bson:"has_perception" json:"has_perception"`
	Placeholder   bool            `bson:"placeholder" json:"placeholder"` // transcript was not available

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
