package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/repository"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
)

const defaultQuizDifficulty = "Medium"

type quizRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Quiz, error)
	Create(ctx context.Context, q *models.Quiz) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Quiz, error)
	Complete(ctx context.Context, id, userID uuid.UUID, score int) (*models.Quiz, int, error)
}

type QuizHandler struct {
	quizRepo  quizRepository
	assistant services.Assistant
	notifier  services.Notifier
	log       *logger.Logger
}

func NewQuizHandler(quizRepo quizRepository, assistant services.Assistant, notifier services.Notifier, log *logger.Logger) *QuizHandler {
	return &QuizHandler{quizRepo: quizRepo, assistant: assistant, notifier: notifier, log: log}
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizRepo.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to fetch quizzes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes})
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	quiz, err := h.quizRepo.GetByID(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.log, notFound(err, "Quiz not found"), "Failed to fetch quiz")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"quiz": quiz})
}

func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if err := decode(r, &req); err != nil {
		handleServiceError(w, r, h.log, err, msgInvalidData)
		return
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = models.DefaultQuizQuestions
	}
	if strings.TrimSpace(req.Difficulty) == "" {
		req.Difficulty = defaultQuizDifficulty
	}

	questions, err := h.assistant.GenerateQuiz(r.Context(), req.Subject, req.Difficulty, req.NumQuestions)
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to generate quiz")
		return
	}

	quiz := &models.Quiz{
		UserID:    middleware.GetUserID(r.Context()),
		Title:     req.Subject + " Quiz",
		Subject:   req.Subject,
		Questions: questions,
	}
	if err := h.quizRepo.Create(r.Context(), quiz); err != nil {
		handleServiceError(w, r, h.log, err, "Failed to generate quiz")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"quiz": quiz})
}

// Complete records a score. Study points follow the recorded score, so a
// repeated completion only moves them by the difference.
func (h *QuizHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.CompleteQuizRequest
	if err := decode(r, &req); err != nil {
		handleServiceError(w, r, h.log, err, msgInvalidData)
		return
	}

	userID := middleware.GetUserID(r.Context())
	quiz, delta, err := h.quizRepo.Complete(r.Context(), id, userID, *req.Score)
	if errors.Is(err, repository.ErrScoreOutOfRange) {
		writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidData))
		return
	}
	if err != nil {
		handleServiceError(w, r, h.log, notFound(err, "Quiz not found"), "Failed to complete quiz")
		return
	}

	if delta > 0 {
		message := fmt.Sprintf("You scored %d/%d on %s and earned %d points.",
			*req.Score, quiz.TotalQuestions, quiz.Title, delta)
		if _, err := h.notifier.Notify(r.Context(), userID, "Quiz completed", message, models.NotificationQuizCompleted); err != nil {
			h.log.Warn("quiz completion notification", "quiz_id", quiz.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"quiz": quiz})
}
