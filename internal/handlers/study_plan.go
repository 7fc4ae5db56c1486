package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/PrafullShinde28/CAMPUSAI/internal/logger"
	"github.com/PrafullShinde28/CAMPUSAI/internal/middleware"
	"github.com/PrafullShinde28/CAMPUSAI/internal/models"
	"github.com/PrafullShinde28/CAMPUSAI/internal/services"
)

type studyPlanRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.StudyPlan, error)
	Create(ctx context.Context, p *models.StudyPlan) error
	CreateBatch(ctx context.Context, plans []*models.StudyPlan) error
	Update(ctx context.Context, id, userID uuid.UUID, req models.UpdateStudyPlanRequest) (*models.StudyPlan, error)
}

type StudyPlanHandler struct {
	planRepo  studyPlanRepository
	assistant services.Assistant
	log       *logger.Logger
	now       func() time.Time
}

func NewStudyPlanHandler(planRepo studyPlanRepository, assistant services.Assistant, log *logger.Logger) *StudyPlanHandler {
	return &StudyPlanHandler{planRepo: planRepo, assistant: assistant, log: log, now: time.Now}
}

func (h *StudyPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planRepo.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to fetch study plans")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})
}

func (h *StudyPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudyPlanRequest
	if err := decode(r, &req); err != nil {
		handleServiceError(w, r, h.log, err, msgInvalidData)
		return
	}

	plan := &models.StudyPlan{
		UserID:      middleware.GetUserID(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: *req.ScheduledAt,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		Completed:   req.Completed,
	}
	if err := h.planRepo.Create(r.Context(), plan); err != nil {
		handleServiceError(w, r, h.log, err, "Failed to create study plan")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"plan": plan})
}

func (h *StudyPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateStudyPlanRequest
	if err := decode(r, &req); err != nil || req.Empty() {
		writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidData))
		return
	}

	plan, err := h.planRepo.Update(r.Context(), id, middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, h.log, notFound(err, "Study plan not found"), "Failed to update study plan")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"plan": plan})
}

// Generate asks the assistant for a plan and schedules its items one per day
// starting now.
func (h *StudyPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateStudyPlanRequest
	if err := decode(r, &req); err != nil {
		handleServiceError(w, r, h.log, err, msgInvalidData)
		return
	}

	items, err := h.assistant.GenerateStudyPlan(r.Context(), req.Subjects, req.AvailableHours, req.Goals)
	if err != nil {
		handleServiceError(w, r, h.log, err, "Failed to generate study plan")
		return
	}

	plans := schedulePlanItems(middleware.GetUserID(r.Context()), items, h.now())
	if err := h.planRepo.CreateBatch(r.Context(), plans); err != nil {
		handleServiceError(w, r, h.log, err, "Failed to generate study plan")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})
}

func schedulePlanItems(userID uuid.UUID, items []models.StudyPlanItem, start time.Time) []*models.StudyPlan {
	plans := make([]*models.StudyPlan, 0, len(items))
	for i, item := range items {
		description := item.Description
		duration := item.Duration
		difficulty := item.Difficulty
		plans = append(plans, &models.StudyPlan{
			UserID:      userID,
			Title:       item.Title,
			Description: &description,
			ScheduledAt: start.Add(time.Duration(i) * 24 * time.Hour),
			Duration:    &duration,
			Difficulty:  &difficulty,
		})
	}
	return plans
}
