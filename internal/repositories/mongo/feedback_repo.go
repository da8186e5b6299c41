package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/utils"
)

type FeedbackRepository interface {
	EnsureIndexes(ctx context.Context) error
	Upsert(ctx context.Context, rec *models.FeedbackRecord) error
	GetByConversationID(ctx context.Context, conversationID string) (*models.FeedbackRecord, error)
}

type feedbackRepo struct {
	col *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database) FeedbackRepository {
	return &feedbackRepo{col: db.Collection("feedback_reports")}
}

// EnsureIndexes creates the conversation-id lookup index.
func (r *feedbackRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "conversation_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *feedbackRepo) Upsert(ctx context.Context, rec *models.FeedbackRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"conversation_id": rec.ConversationID},
		bson.M{"$set": bson.M{
			"markdown":       rec.Markdown,
			"config":         rec.Config,
			"has_perception": rec.HasPerception,
			"placeholder":    rec.Placeholder,
			"created_at":     rec.CreatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *feedbackRepo) GetByConversationID(ctx context.Context, conversationID string) (*models.FeedbackRecord, error) {
	var rec models.FeedbackRecord
	err := r.col.FindOne(ctx, bson.M{"conversation_id": conversationID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &rec, err
}
