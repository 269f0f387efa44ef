package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddCollaboratorRequest struct {
	UserEmail  string `json:"userEmail"`
	Permission string `json:"permission"`
}

type UpdateCollaboratorRequest struct {
	Permission string `json:"permission"`
}

type CollaboratorResponse struct {
	UserID     uuid.UUID    `json:"user_id"`
	Permission string       `json:"permission"`
	AddedAt    time.Time    `json:"added_at"`
	User       UserResponse `json:"user"`
}

type CollaboratorListResponse struct {
	Owner         UserResponse           `json:"owner"`
	Collaborators []CollaboratorResponse `json:"collaborators"`
}
