package models

import (
	"time"

	"github.com/google/uuid"
)

type PeerMatch struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	MatchedUserID uuid.UUID `json:"matchedUserId"`
	Compatibility *int      `json:"compatibility"`
	Subjects      []string  `json:"subjects"`
	Status        string    `json:"status"` // "pending" | "connected" | "declined"
	CreatedAt     time.Time `json:"createdAt"`
}
