package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/repositories"
)

// FeedbackRepo wraps the feedback collection.
type FeedbackRepo struct {
	col *mongo.Collection
}

func NewFeedbackRepo(c *Client) (*FeedbackRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	col := db.Collection("feedback")
	r := &FeedbackRepo{col: col}

	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "interviewId", Value: 1}, {Key: "userId", Value: 1}},
	})

	return r, nil
}

// Upsert writes the feedback document in a single atomic set. Replacing by
// id makes a duplicate invocation a last-write-wins overwrite.
func (r *FeedbackRepo) Upsert(ctx context.Context, feedback *models.Feedback) (string, error) {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": feedback.ID}, feedback, opts); err != nil {
		return "", err
	}
	return feedback.ID, nil
}

// ListCreatedAfter returns feedback documents stamped after the given
// RFC3339 instant, oldest first. Used by the export job.
func (r *FeedbackRepo) ListCreatedAfter(ctx context.Context, since string, limit int64) ([]models.Feedback, error) {
	filter := bson.M{"createdAt": bson.M{"$gt": since}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Feedback
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FeedbackRepo) GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	var feedback models.Feedback
	filter := bson.M{"interviewId": interviewID, "userId": userID}
	err := r.col.FindOne(ctx, filter).Decode(&feedback)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}
