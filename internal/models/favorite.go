package models

import (
	"time"
)

// Favorite marks a project saved by a user.
type Favorite struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"userUid"`
	ProjectID string    `json:"projectId"`
	CreatedAt time.Time `json:"createdAt"`
}
