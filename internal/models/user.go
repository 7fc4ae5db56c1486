package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	ProfileImage       *string   `json:"profileImage"`
	FirebaseUID        string    `json:"firebaseUid"`
	StudyStreak        int       `json:"studyStreak"`
	StudyPoints        int       `json:"studyPoints"`
	CollaborationScore int       `json:"collaborationScore"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// NewUser is the insert shape used when an identity is seen for the first time.
type NewUser struct {
	Email        string
	Name         string
	ProfileImage *string
	FirebaseUID  string
}

type VerifyTokenRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateProfileRequest only carries the fields a user may change themselves.
// Counters (points, streak, collaboration score) are server-owned.
type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitnil,min=1,max=120"`
	Email        *string `json:"email" validate:"omitnil,email,max=254"`
	ProfileImage *string `json:"profileImage" validate:"omitnil,url,max=2048"`
}

func (r UpdateProfileRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.ProfileImage == nil
}
