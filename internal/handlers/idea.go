package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
)

type ideaRepository interface {
	List(ctx context.Context) ([]*models.Idea, error)
	Create(ctx context.Context, i *models.Idea) error
	Like(ctx context.Context, id uuid.UUID) (*models.Idea, error)
}

type IdeaHandler struct {
	ideaRepo ideaRepository
	notifier services.Notifier
	log      *logger.Logger
}

func NewIdeaHandler(ideaRepo ideaRepository, notifier services.Notifier, log *logger.Logger) *IdeaHandler {
	return &IdeaHandler{ideaRepo: ideaRepo, notifier: notifier, log: log}
}

func (h *IdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.ideaRepo.List(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to fetch ideas")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ideas": ideas})
}

func (h *IdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIdeaRequest
	if err := decode(r, &req); err != nil {
		handleServiceError(w, r, h.log, err, msgInvalidData)
		return
	}

	idea := &models.Idea{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		UserID:      middleware.GetUserID(r.Context()),
	}
	if err := h.ideaRepo.Create(r.Context(), idea); err != nil {
		handleServiceError(w, r, h.log, err, "Failed to submit idea")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"idea": idea})
}

func (h *IdeaHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	user := middleware.CurrentUser(r.Context())
	idea, err := h.ideaRepo.Like(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.log, notFound(err, "Idea not found"), "Failed to like idea")
		return
	}

	if idea.UserID != user.ID {
		message := fmt.Sprintf("%s liked your idea %q.", user.Name, idea.Title)
		if _, err := h.notifier.Notify(r.Context(), idea.UserID, "Your idea got a like", message, models.NotificationIdeaLiked); err != nil {
			h.log.Warn("idea like notification", "idea_id", idea.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Idea liked successfully"})
}
