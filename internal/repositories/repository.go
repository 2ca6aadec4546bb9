package repositories

import (
	"context"
	"errors"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// InterviewRepository provides access to the interviews collection.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) (*models.Interview, error)
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	ListByUser(ctx context.Context, userID string) ([]models.Interview, error)
	// ListLatest returns finalized interviews from other users, newest first.
	ListLatest(ctx context.Context, excludeUserID string, limit int64) ([]models.Interview, error)
	// Delete removes the interview and all feedback attached to it.
	Delete(ctx context.Context, interviewID, userID string) error
}

// FeedbackRepository provides access to the feedback collection.
type FeedbackRepository interface {
	// Upsert writes the whole document in one set. A document with the same
	// id is overwritten (last write wins); an empty id creates a new one.
	// Returns the id of the written document.
	Upsert(ctx context.Context, feedback *models.Feedback) (string, error)
	GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*models.Feedback, error)
}
