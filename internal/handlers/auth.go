package handlers

import (
	"context"
	"net/http"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type identityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type AuthHandler struct {
	resolver identityResolver
	log      *logger.Logger
}

func NewAuthHandler(resolver identityResolver, log *logger.Logger) *AuthHandler {
	return &AuthHandler{resolver: resolver, log: log}
}

// Verify exchanges an identity token for the application user, creating the
// user on first login.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyTokenRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResp("Invalid token"))
		return
	}

	user, err := h.resolver.Resolve(r.Context(), req.IDToken)
	if err != nil {
		handleServiceError(w, r, h.log, err, "Authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
