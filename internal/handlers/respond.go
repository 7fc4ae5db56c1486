package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	authmw "github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/repository"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
)

const msgInvalidData = "Invalid data"

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Message: message}
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &services.ValidationError{Fields: map[string]string{"body": err.Error()}}
	}
	if err := validateStruct(dst); err != nil {
		return &services.ValidationError{Fields: validationFields(err)}
	}
	return nil
}

func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps err to a status. Anything unrecognised is logged
// and answered with fallback as a 500 so internals never leak.
func handleServiceError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error, fallback string) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Debug("invalid request", "path", r.URL.Path, "fields", validationErr.Fields)
		writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidData))
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorResp(notFoundErr.Message))
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResp("Not found"))
	case errors.Is(err, services.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResp("Invalid token"))
	case errors.Is(err, services.ErrClassroomUnavailable):
		log.Warn("classroom request failed", requestFields(r, err)...)
		writeJSON(w, http.StatusBadGateway, errorResp(fallback))
	default:
		log.Error(fallback, requestFields(r, err)...)
		writeJSON(w, http.StatusInternalServerError, errorResp(fallback))
	}
}

func requestFields(r *http.Request, err error) []interface{} {
	fields := []interface{}{
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	}
	if id := authmw.GetUserID(r.Context()); id != uuid.Nil {
		fields = append(fields, "user_id", id)
	}
	return fields
}

// notFound turns a missing row into a resource specific 404.
func notFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &services.NotFoundError{Message: message}
	}
	return err
}
