package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/repository"
)

type userRepository interface {
	UpdateProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.User, error)
}

type UserHandler struct {
	userRepo userRepository
	log      *logger.Logger
}

func NewUserHandler(userRepo userRepository, log *logger.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, log: log}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": middleware.CurrentUser(r.Context())})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())

	var req models.UpdateProfileRequest
	if err := decode(r, &req); err != nil {
		handleServiceError(w, r, h.log, err, msgInvalidData)
		return
	}
	if req.Empty() {
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": current})
		return
	}

	user, err := h.userRepo.UpdateProfile(r.Context(), current.ID, req)
	if errors.Is(err, repository.ErrDuplicate) {
		writeJSON(w, http.StatusBadRequest, errorResp("Email already in use"))
		return
	}
	if err != nil {
		handleServiceError(w, r, h.log, notFound(err, "User not found"), "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
