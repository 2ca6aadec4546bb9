package generator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/repositories"
)

// Service creates interview records, either from an explicit generation
// request or from a finished generation conversation.
type Service struct {
	store  repositories.InterviewRepository
	logger *zap.Logger
}

func NewService(store repositories.InterviewRepository, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// CreateInterview builds the question list from the request parameters and
// persists a finalized interview record.
func (s *Service) CreateInterview(ctx context.Context, req *models.GenerateInterviewRequest) (*models.Interview, error) {
	techstack := SplitTechstack(req.Techstack)
	questions := BuildQuestions(req.Type, req.Role, techstack, req.Amount)

	interview := &models.Interview{
		Role:       req.Role,
		Type:       req.Type,
		Level:      req.Level,
		Techstack:  techstack,
		Questions:  questions,
		UserID:     req.UserID,
		Finalized:  true,
		CoverImage: RandomInterviewCover(),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	created, err := s.store.Create(ctx, interview)
	if err != nil {
		s.logger.Error("Failed to persist interview",
			zap.Error(err),
			zap.String("user_id", req.UserID))
		return nil, err
	}

	s.logger.Info("Interview created",
		zap.String("interview_id", created.ID),
		zap.String("role", created.Role),
		zap.Int("questions", len(created.Questions)))

	return created, nil
}

// CreateFromConversation extracts interview parameters from a generation
// session's transcript and persists the resulting interview. Used when the
// service, not the external workflow, owns generation persistence.
func (s *Service) CreateFromConversation(ctx context.Context, userID string, messages []models.TranscriptMessage) (*models.Interview, error) {
	params := ExtractParams(messages)

	s.logger.Info("Extracted interview parameters",
		zap.String("role", params.Role),
		zap.String("level", params.Level),
		zap.String("techstack", params.Techstack),
		zap.String("type", params.Type),
		zap.Int("amount", params.Amount))

	return s.CreateInterview(ctx, &models.GenerateInterviewRequest{
		Type:      params.Type,
		Role:      params.Role,
		Level:     params.Level,
		Techstack: params.Techstack,
		Amount:    params.Amount,
		UserID:    userID,
	})
}
