package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type notificationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error)
}

type NotificationHandler struct {
	notificationRepo notificationRepository
	log              *logger.Logger
}

func NewNotificationHandler(notificationRepo notificationRepository, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationRepo: notificationRepo, log: log}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationRepo.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to fetch notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if _, err := h.notificationRepo.MarkRead(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		handleServiceError(w, r, h.log, notFound(err, "Notification not found"), "Failed to mark notification as read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}
