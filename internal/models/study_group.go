package models

import (
	"time"

	"github.com/google/uuid"
)

type StudyGroup struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	Description  *string   `json:"description"`
	OwnerID      uuid.UUID `json:"ownerId"`
	MembersCount int       `json:"membersCount"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type StudyGroupMember struct {
	ID       uuid.UUID `json:"id"`
	GroupID  uuid.UUID `json:"groupId"`
	UserID   uuid.UUID `json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
}

type CreateStudyGroupRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Subject     string  `json:"subject" validate:"required,max=120"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
}
