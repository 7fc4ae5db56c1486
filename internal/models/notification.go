package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationStudyReminder = "study_reminder"
	NotificationQuizCompleted = "quiz_completed"
	NotificationGroupJoined   = "group_joined"
	NotificationIdeaLiked     = "idea_liked"
)

type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
