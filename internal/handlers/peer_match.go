package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type peerMatchRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.PeerMatch, error)
}

type PeerMatchHandler struct {
	matchRepo peerMatchRepository
	log       *logger.Logger
}

func NewPeerMatchHandler(matchRepo peerMatchRepository, log *logger.Logger) *PeerMatchHandler {
	return &PeerMatchHandler{matchRepo: matchRepo, log: log}
}

func (h *PeerMatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchRepo.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to fetch peer matches")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}
