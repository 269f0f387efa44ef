package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	IsPublic bool     `json:"is_public"`
	Tags     []string `json:"tags,omitempty"`
}

// UpdateDocumentRequest is a partial update: only fields present in the
// request body are applied. is_public and status are owner-only and silently
// dropped for everyone else.
type UpdateDocumentRequest struct {
	Title    *string  `json:"title,omitempty"`
	Content  *string  `json:"content,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	IsPublic *bool    `json:"is_public,omitempty"`
	Status   *string  `json:"status,omitempty"`
}

type DocumentResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	IsPublic     bool      `json:"is_public"`
	Status       string    `json:"status"`
	Version      int       `json:"version"`
	ViewCount    int       `json:"view_count"`
	LastEditedBy uuid.UUID `json:"last_edited_by"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// UserPermission is the caller's resolved role: "owner", "admin",
	// "edit", "view", or null when access comes only from public visibility.
	UserPermission *string `json:"user_permission"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}
