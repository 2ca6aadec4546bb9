package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sudeeppatil24315/ai-mock-interview/internal/models"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/presence"
	"github.com/sudeeppatil24315/ai-mock-interview/internal/utils"
)

// PresenceHandler exposes the live-session registry for dashboards.
type PresenceHandler struct {
	registry *presence.Registry
	logger   *zap.Logger
}

func NewPresenceHandler(registry *presence.Registry, logger *zap.Logger) *PresenceHandler {
	return &PresenceHandler{registry: registry, logger: logger}
}

func (h *PresenceHandler) ListActiveSessionsHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.registry.ListActive(r.Context())
	if err != nil {
		h.logger.Error("Failed to list active sessions", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "registry_error",
			Message: "Failed to list active sessions",
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"sessions": sessions,
	})
}
