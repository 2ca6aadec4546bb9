package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/handlers"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/middleware"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, feedbackHandler *handlers.FeedbackHandler) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.GenerateInterviewRequest]()).Post("/generate", interviewHandler.GenerateHandler)
		r.Get("/generate", interviewHandler.GenerateAckHandler)
		r.Get("/", interviewHandler.ListInterviewsHandler)
		r.Get("/latest", interviewHandler.ListLatestHandler)
		r.Get("/{interviewId}", interviewHandler.GetInterviewHandler)
		r.Delete("/{interviewId}", interviewHandler.DeleteInterviewHandler)
		r.Get("/{interviewId}/feedback", feedbackHandler.GetFeedbackHandler)
	})
}
