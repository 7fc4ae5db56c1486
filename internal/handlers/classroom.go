package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
)

type classroomGateway interface {
	Assignments(ctx context.Context, accessToken string) ([]models.ClassroomAssignment, error)
	Courses(ctx context.Context, accessToken string) ([]models.ClassroomCourse, error)
}

type ClassroomHandler struct {
	gateway classroomGateway
	log     *logger.Logger
}

func NewClassroomHandler(gateway classroomGateway, log *logger.Logger) *ClassroomHandler {
	return &ClassroomHandler{gateway: gateway, log: log}
}

func accessToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := strings.TrimSpace(r.URL.Query().Get("accessToken"))
	if token == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Access token required"))
		return "", false
	}
	return token, true
}

func (h *ClassroomHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	token, ok := accessToken(w, r)
	if !ok {
		return
	}

	assignments, err := h.gateway.Assignments(r.Context(), token)
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to fetch classroom assignments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"assignments": assignments})
}

func (h *ClassroomHandler) Courses(w http.ResponseWriter, r *http.Request) {
	token, ok := accessToken(w, r)
	if !ok {
		return
	}

	courses, err := h.gateway.Courses(r.Context(), token)
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to fetch classroom courses")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}
