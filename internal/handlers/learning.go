package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
)

type completedQuizLister interface {
	ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]*models.Quiz, error)
}

type studyPlanLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.StudyPlan, error)
}

// LearningHandler serves the assistant backed endpoints that do not persist
// anything: concept explanations and performance analysis.
type LearningHandler struct {
	assistant services.Assistant
	quizRepo  completedQuizLister
	planRepo  studyPlanLister
	log       *logger.Logger
}

func NewLearningHandler(assistant services.Assistant, quizRepo completedQuizLister, planRepo studyPlanLister, log *logger.Logger) *LearningHandler {
	return &LearningHandler{assistant: assistant, quizRepo: quizRepo, planRepo: planRepo, log: log}
}

func (h *LearningHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req models.ExplainRequest
	if err := decode(r, &req); err != nil {
		handleServiceError(w, r, h.log, err, msgInvalidData)
		return
	}

	explanation, err := h.assistant.ExplainConcept(r.Context(), req.Concept, req.Context)
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to explain concept")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

func (h *LearningHandler) Performance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	quizzes, err := h.quizRepo.ListCompletedByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to analyze performance")
		return
	}
	plans, err := h.planRepo.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to analyze performance")
		return
	}

	analysis, err := h.assistant.AnalyzePerformance(r.Context(), quizzes, plannedHours(plans))
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to analyze performance")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

func plannedHours(plans []*models.StudyPlan) float64 {
	minutes := 0
	for _, p := range plans {
		if p.Duration != nil {
			minutes += *p.Duration
		}
	}
	return float64(minutes) / 60
}
