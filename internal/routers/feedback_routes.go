package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/handlers"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/middleware"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
)

func FeedbackRoutes(router *chi.Mux, feedbackHandler *handlers.FeedbackHandler) {
	router.Route("/api/v1/feedback", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.CreateFeedbackRequest]()).Post("/", feedbackHandler.CreateFeedbackHandler)
		r.With(middleware.ValidateRequest[*models.ScoreTranscriptRequest]()).Post("/score", feedbackHandler.ScoreHandler)
		r.Get("/{interviewId}", feedbackHandler.GetFeedbackHandler)
	})
}
