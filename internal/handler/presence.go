package handler

import (
	"net/http"

	"github.com/foxsrv/companyeconomy/internal/model"
	"github.com/foxsrv/companyeconomy/internal/service"
)

// PresenceHandler lets the game server report player sessions. Routes
// are gated by bridge tokens in the router.
type PresenceHandler struct {
	registry *service.PresenceRegistry
}

// NewPresenceHandler creates a new presence handler
func NewPresenceHandler(registry *service.PresenceRegistry) *PresenceHandler {
	return &PresenceHandler{registry: registry}
}

// Connect handles POST /v1/presence/{playerId}/connect
func (h *PresenceHandler) Connect(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerId")
	if playerID == "" {
		WriteError(w, model.NewBadRequestError("player ID required"))
		return
	}

	session := h.registry.Connect(playerID)
	WriteData(w, http.StatusOK, session, nil)
}

// Disconnect handles POST /v1/presence/{playerId}/disconnect
func (h *PresenceHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerId")
	if playerID == "" {
		WriteError(w, model.NewBadRequestError("player ID required"))
		return
	}

	h.registry.Disconnect(playerID)
	WriteNoContent(w)
}

// Status handles GET /v1/presence/{playerId}
func (h *PresenceHandler) Status(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerId")
	if playerID == "" {
		WriteError(w, model.NewBadRequestError("player ID required"))
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"player": playerID,
		"online": h.registry.IsOnline(playerID),
	}, nil)
}
