package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/repositories"
)

// InterviewRepo wraps the interviews collection. Deleting an interview also
// removes its feedback documents, so it keeps a handle to both collections.
type InterviewRepo struct {
	col      *mongo.Collection
	feedback *mongo.Collection
}

// NewInterviewRepo connects the repo and ensures the query indexes used by
// the list endpoints.
func NewInterviewRepo(c *Client) (*InterviewRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	col := db.Collection("interviews")
	r := &InterviewRepo{col: col, feedback: db.Collection("feedback")}

	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "finalized", Value: 1}, {Key: "createdAt", Value: -1}}},
	})

	return r, nil
}

func (r *InterviewRepo) Create(ctx context.Context, interview *models.Interview) (*models.Interview, error) {
	if interview.Role == "" {
		return nil, errors.New("role required")
	}
	if interview.ID == "" {
		interview.ID = uuid.New().String()
	}
	if interview.CreatedAt == "" {
		interview.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if _, err := r.col.InsertOne(ctx, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

func (r *InterviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&interview)
	if err == mongo.ErrNoDocuments {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepo) ListByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Interview
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InterviewRepo) ListLatest(ctx context.Context, excludeUserID string, limit int64) ([]models.Interview, error) {
	filter := bson.M{
		"finalized": true,
		"userId":    bson.M{"$ne": excludeUserID},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Interview
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InterviewRepo) Delete(ctx context.Context, interviewID, userID string) error {
	var interview models.Interview
	err := r.col.FindOne(ctx, bson.M{"_id": interviewID}).Decode(&interview)
	if err == mongo.ErrNoDocuments {
		return repositories.ErrNotFound
	}
	if err != nil {
		return err
	}
	if interview.UserID != userID {
		return errors.New("unauthorized to delete this interview")
	}

	if _, err := r.feedback.DeleteMany(ctx, bson.M{"interviewId": interviewID, "userId": userID}); err != nil {
		return err
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": interviewID})
	return err
}
