package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/llm"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/metrics"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/prompts"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/repositories"
)

// Pipeline turns a finished interview transcript into exactly one persisted
// feedback record. Sessions with at most one user turn skip the scoring
// model entirely and receive a fixed minimal-participation record, so every
// session yields a result.
type Pipeline struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	store    repositories.FeedbackRepository
	logger   *zap.Logger
}

func NewPipeline(provider llm.Provider, promptManager prompts.PromptProvider, store repositories.FeedbackRepository, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		provider: provider,
		prompts:  promptManager,
		store:    store,
		logger:   logger,
	}
}

// CreateFeedback runs the full pipeline for one session. Failures are
// recovered here and returned as a typed result; nothing is persisted on a
// scoring or parsing failure.
func (p *Pipeline) CreateFeedback(ctx context.Context, req *models.CreateFeedbackRequest) models.FeedbackResult {
	userTurns := 0
	for _, msg := range req.Transcript {
		if msg.Role == models.RoleUser {
			userTurns++
		}
	}

	var feedback *models.Feedback
	outcome := "scored"
	if userTurns <= 1 {
		p.logger.Info("Minimal participation, skipping scoring model",
			zap.String("interview_id", req.InterviewID),
			zap.Int("user_turns", userTurns))
		feedback = minimalParticipationFeedback(req.InterviewID, req.UserID)
		outcome = "minimal"
	} else {
		assessment, err := p.Score(ctx, FormatTranscript(req.Transcript))
		if err != nil {
			p.logger.Error("Scoring failed",
				zap.Error(err),
				zap.String("interview_id", req.InterviewID))
			metrics.FeedbackOutcome("failed")
			return models.FeedbackResult{Success: false, Message: err.Error()}
		}
		feedback = &models.Feedback{
			InterviewID:         req.InterviewID,
			UserID:              req.UserID,
			TotalScore:          assessment.TotalScore,
			CategoryScores:      assessment.CategoryScores,
			Strengths:           assessment.Strengths,
			AreasForImprovement: assessment.AreasForImprovement,
			FinalAssessment:     assessment.FinalAssessment,
		}
	}

	feedback.ID = req.FeedbackID
	feedback.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	id, err := p.store.Upsert(ctx, feedback)
	if err != nil {
		p.logger.Error("Failed to persist feedback",
			zap.Error(err),
			zap.String("interview_id", req.InterviewID))
		metrics.FeedbackOutcome("failed")
		return models.FeedbackResult{Success: false, Message: "failed to save feedback"}
	}
	metrics.FeedbackOutcome(outcome)

	p.logger.Info("Feedback saved",
		zap.String("feedback_id", id),
		zap.String("interview_id", req.InterviewID),
		zap.Int("total_score", feedback.TotalScore))

	return models.FeedbackResult{Success: true, FeedbackID: id}
}

// Score invokes the scoring model once on a formatted transcript and
// validates the structured response. Used by CreateFeedback and by the
// scoring-only endpoint.
func (p *Pipeline) Score(ctx context.Context, formattedTranscript string) (*models.ScoredAssessment, error) {
	if p.provider == nil {
		return nil, fmt.Errorf("scoring model unavailable: no AI provider configured")
	}

	prompt, err := p.prompts.BuildPrompt("feedback", map[string]string{
		"Transcript": formattedTranscript,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring prompt: %w", err)
	}

	response, err := p.provider.GenerateText(ctx, prompt, "")
	if err != nil {
		return nil, err
	}

	assessment, err := ParseAssessment(response.Content)
	if err != nil {
		return nil, err
	}
	return assessment, nil
}

// FormatTranscript flattens the transcript into the "- role: content" block
// the scoring prompt expects.
func FormatTranscript(transcript []models.TranscriptMessage) string {
	var b strings.Builder
	for _, msg := range transcript {
		b.WriteString("- ")
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func minimalParticipationFeedback(interviewID, userID string) *models.Feedback {
	return &models.Feedback{
		InterviewID: interviewID,
		UserID:      userID,
		TotalScore:  1,
		CategoryScores: []models.CategoryScore{
			{Name: "Communication Skills", Score: 1, Comment: "The candidate provided minimal or no responses during the interview."},
			{Name: "Technical Knowledge", Score: 1, Comment: "Unable to assess technical knowledge due to lack of participation."},
			{Name: "Problem Solving", Score: 1, Comment: "Unable to assess problem-solving skills due to lack of participation."},
			{Name: "Cultural Fit", Score: 1, Comment: "Minimal interaction makes it difficult to assess cultural fit."},
			{Name: "Confidence and Clarity", Score: 1, Comment: "The candidate did not engage sufficiently to demonstrate confidence or clarity."},
		},
		Strengths: []string{"No strengths identified due to limited participation."},
		AreasForImprovement: []string{
			"Active participation in the interview process",
			"Providing detailed responses to questions",
			"Completing the full interview to allow proper assessment",
		},
		FinalAssessment: "The interview was ended prematurely with minimal or no participation from the candidate. A proper assessment could not be made due to insufficient interaction. We recommend retaking the interview with full engagement to receive meaningful feedback.",
	}
}
