package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuizOptionCount      = 4
	DefaultQuizQuestions = 5
	MaxQuizQuestions     = 20
	PointsPerCorrect     = 10
)

type Quiz struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"userId"`
	Title          string         `json:"title"`
	Subject        string         `json:"subject"`
	Questions      []QuizQuestion `json:"questions"`
	Score          *int           `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Completed      bool           `json:"completed"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type GenerateQuizRequest struct {
	Subject      string `json:"subject" validate:"required,max=120"`
	Difficulty   string `json:"difficulty" validate:"max=40"`
	NumQuestions int    `json:"numQuestions" validate:"omitempty,gte=1,lte=20"`
}

type CompleteQuizRequest struct {
	Score *int `json:"score" validate:"required,gte=0"`
}
