package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/handlers"
)

func SessionRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, presenceHandler *handlers.PresenceHandler) {
	router.Route("/api/v1/session", func(r chi.Router) {
		r.Get("/generate", sessionHandler.GenerateSessionWS)
		r.Get("/active", presenceHandler.ListActiveSessionsHandler)
		r.Get("/{interviewId}", sessionHandler.InterviewSessionWS)
	})
}
