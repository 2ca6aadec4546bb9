package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/generator"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/middleware"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/repositories"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/utils"
)

type InterviewHandler struct {
	generator  *generator.Service
	store      repositories.InterviewRepository
	maxListing int64
	logger     *zap.Logger
}

func NewInterviewHandler(gen *generator.Service, store repositories.InterviewRepository, maxListing int, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		generator:  gen,
		store:      store,
		maxListing: int64(maxListing),
		logger:     logger,
	}
}

// GenerateHandler creates an interview record from explicit parameters.
func (h *InterviewHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateInterviewRequest](r)

	interview, err := h.generator.CreateInterview(r.Context(), req)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.GenerateResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}
	utils.JSON(w, http.StatusOK, models.GenerateResponse{
		Success:     true,
		InterviewID: interview.ID,
	})
}

// GenerateAckHandler answers health probes against the generation endpoint.
func (h *InterviewHandler) GenerateAckHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    "Thank you!",
	})
}

func (h *InterviewHandler) GetInterviewHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "interviewId")

	interview, err := h.store.GetByID(r.Context(), id)
	if err == repositories.ErrNotFound {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "interview_not_found",
			Message: "Interview not found",
		})
		return
	}
	if err != nil {
		h.logger.Error("Failed to load interview", zap.Error(err), zap.String("interview_id", id))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to load interview",
		})
		return
	}
	utils.JSON(w, http.StatusOK, interview)
}

// ListInterviewsHandler returns the caller's own interviews, newest first.
func (h *InterviewHandler) ListInterviewsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_user_id",
			Message: "userId query parameter is required",
		})
		return
	}

	interviews, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list interviews", zap.Error(err), zap.String("user_id", userID))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to list interviews",
		})
		return
	}
	utils.JSON(w, http.StatusOK, interviews)
}

// ListLatestHandler returns finalized interviews from other users.
func (h *InterviewHandler) ListLatestHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	interviews, err := h.store.ListLatest(r.Context(), userID, h.maxListing)
	if err != nil {
		h.logger.Error("Failed to list latest interviews", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "storage_error",
			Message: "Failed to list interviews",
		})
		return
	}
	utils.JSON(w, http.StatusOK, interviews)
}

// DeleteInterviewHandler removes an interview and its feedback. Only the
// owner may delete.
func (h *InterviewHandler) DeleteInterviewHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "interviewId")
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_user_id",
			Message: "userId query parameter is required",
		})
		return
	}

	err := h.store.Delete(r.Context(), id, userID)
	if err == repositories.ErrNotFound {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "interview_not_found",
			Message: "Interview not found",
		})
		return
	}
	if err != nil {
		h.logger.Error("Failed to delete interview", zap.Error(err), zap.String("interview_id", id))
		utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
			Code:    "delete_failed",
			Message: err.Error(),
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Interview deleted successfully",
	})
}
