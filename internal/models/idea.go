package models

import (
	"time"

	"github.com/google/uuid"
)

type Idea struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	UserID      uuid.UUID `json:"userId"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateIdeaRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=4000"`
	Category    string `json:"category" validate:"required,max=80"`
}
