package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/middleware"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/repositories"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/scoring"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/utils"
)

type FeedbackHandler struct {
	pipeline *scoring.Pipeline
	store    repositories.FeedbackRepository
	logger   *zap.Logger
}

func NewFeedbackHandler(pipeline *scoring.Pipeline, store repositories.FeedbackRepository, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		pipeline: pipeline,
		store:    store,
		logger:   logger,
	}
}

// CreateFeedbackHandler runs the full feedback pipeline for a finished
// interview transcript.
func (h *FeedbackHandler) CreateFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateFeedbackRequest](r)

	result := h.pipeline.CreateFeedback(r.Context(), req)
	if !result.Success {
		utils.JSON(w, http.StatusInternalServerError, result)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// ScoreHandler invokes the scoring model directly on a formatted transcript
// and returns the structured assessment without persisting anything.
func (h *FeedbackHandler) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ScoreTranscriptRequest](r)

	assessment, err := h.pipeline.Score(r.Context(), req.FormattedTranscript)
	if err != nil {
		h.logger.Error("Scoring request failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "scoring_error",
			Message: err.Error(),
		})
		return
	}
	utils.JSON(w, http.StatusOK, assessment)
}

// GetFeedbackHandler returns the feedback for an interview and user.
func (h *FeedbackHandler) GetFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "interviewId")
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_user_id",
			Message: "userId query parameter is required",
		})
		return
	}

	feedback, err := h.store.GetByInterviewAndUser(r.Context(), interviewID, userID)
	if err == repositories.ErrNotFound {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "feedback_not_found",
			Message: "No feedback found for this interview",
		})
		return
	}
	if err != nil {
		h.logger.Error("Failed to load feedback", zap.Error(err), zap.String("interview_id", interviewID))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to load feedback",
		})
		return
	}
	utils.JSON(w, http.StatusOK, feedback)
}
