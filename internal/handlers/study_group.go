package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/repository"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
)

type studyGroupRepository interface {
	ListActive(ctx context.Context) ([]*models.StudyGroup, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.StudyGroup, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.StudyGroup, error)
	Create(ctx context.Context, g *models.StudyGroup) error
	Join(ctx context.Context, groupID, userID uuid.UUID) (*models.StudyGroup, error)
}

type StudyGroupHandler struct {
	groupRepo studyGroupRepository
	notifier  services.Notifier
	log       *logger.Logger
}

func NewStudyGroupHandler(groupRepo studyGroupRepository, notifier services.Notifier, log *logger.Logger) *StudyGroupHandler {
	return &StudyGroupHandler{groupRepo: groupRepo, notifier: notifier, log: log}
}

func (h *StudyGroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupRepo.ListActive(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to fetch study groups")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

func (h *StudyGroupHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupRepo.ListByMember(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to fetch user study groups")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

func (h *StudyGroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	group, err := h.groupRepo.GetByID(r.Context(), id)
	if err == nil && !group.IsActive {
		err = repository.ErrNotFound
	}
	if err != nil {
		handleServiceError(w, r, h.log, notFound(err, "Study group not found"), "Failed to fetch study group")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"group": group})
}

func (h *StudyGroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudyGroupRequest
	if err := decode(r, &req); err != nil {
		handleServiceError(w, r, h.log, err, msgInvalidData)
		return
	}

	group := &models.StudyGroup{
		Name:        req.Name,
		Subject:     req.Subject,
		Description: req.Description,
		OwnerID:     middleware.GetUserID(r.Context()),
	}
	if err := h.groupRepo.Create(r.Context(), group); err != nil {
		handleServiceError(w, r, h.log, err, "Failed to create study group")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"group": group})
}

func (h *StudyGroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	user := middleware.CurrentUser(r.Context())
	group, err := h.groupRepo.Join(r.Context(), id, user.ID)
	if err != nil {
		handleServiceError(w, r, h.log, notFound(err, "Study group not found"), "Failed to join study group")
		return
	}

	if group.OwnerID != user.ID {
		message := fmt.Sprintf("%s joined %s.", user.Name, group.Name)
		if _, err := h.notifier.Notify(r.Context(), group.OwnerID, "New group member", message, models.NotificationGroupJoined); err != nil {
			h.log.Warn("group join notification", "group_id", group.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Joined study group successfully"})
}
