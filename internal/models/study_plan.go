package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyLow    = "Low"
	DifficultyMedium = "Medium"
	DifficultyHigh   = "High"
)

type StudyPlan struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Duration    *int      `json:"duration"` // minutes
	Difficulty  *string   `json:"difficulty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateStudyPlanRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitnil,max=4000"`
	ScheduledAt *time.Time `json:"scheduledAt" validate:"required"`
	Duration    *int       `json:"duration" validate:"omitnil,gt=0,lte=1440"`
	Difficulty  *string    `json:"difficulty" validate:"omitnil,oneof=Low Medium High"`
	Completed   bool       `json:"completed"`
}

type UpdateStudyPlanRequest struct {
	Title       *string    `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string    `json:"description" validate:"omitnil,max=4000"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Duration    *int       `json:"duration" validate:"omitnil,gt=0,lte=1440"`
	Difficulty  *string    `json:"difficulty" validate:"omitnil,oneof=Low Medium High"`
	Completed   *bool      `json:"completed"`
}

func (r UpdateStudyPlanRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.ScheduledAt == nil &&
		r.Duration == nil && r.Difficulty == nil && r.Completed == nil
}

type GenerateStudyPlanRequest struct {
	Subjects       []string `json:"subjects" validate:"required,min=1,max=20,dive,required,max=120"`
	AvailableHours float64  `json:"availableHours" validate:"gt=0,lte=168"`
	Goals          []string `json:"goals" validate:"max=20,dive,required,max=300"`
}

// StudyPlanItem is one task proposed by the assistant before it is scheduled.
type StudyPlanItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Difficulty  string `json:"difficulty"`
	Priority    int    `json:"priority"`
}
