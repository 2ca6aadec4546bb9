package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/handlers"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/metrics"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
	router.Handle("/metrics", metrics.Handler())
}
