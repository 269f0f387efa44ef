package models

import (
	"time"

	"github.com/google/uuid"
)

type PublicTemplate struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	CreatorID   *uuid.UUID `json:"creator_id,omitempty"`
	IsPublic    bool       `json:"is_public"`
	Tags        []string   `json:"tags"`
	UsageCount  int        `json:"usage_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
