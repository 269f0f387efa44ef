package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Permission is the access level stored for a collaborator entry. The owner
// relationship is never stored here; it lives on Document.OwnerID.
type Permission string

const (
	PermissionView  Permission = "view"
	PermissionEdit  Permission = "edit"
	PermissionAdmin Permission = "admin"
)

func ParsePermission(s string) (Permission, error) {
	switch Permission(s) {
	case PermissionView, PermissionEdit, PermissionAdmin:
		return Permission(s), nil
	default:
		return "", fmt.Errorf("invalid permission %q", s)
	}
}

type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "draft"
	StatusActive   DocumentStatus = "active"
	StatusArchived DocumentStatus = "archived"
)

func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch DocumentStatus(s) {
	case StatusDraft, StatusActive, StatusArchived:
		return DocumentStatus(s), nil
	default:
		return "", fmt.Errorf("invalid document status %q", s)
	}
}

const MaxTitleLength = 200

type Document struct {
	ID           uuid.UUID      `json:"id"`
	OwnerID      uuid.UUID      `json:"owner_id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	IsPublic     bool           `json:"is_public"`
	Status       DocumentStatus `json:"status"`
	Version      int            `json:"version"`
	ViewCount    int            `json:"view_count"`
	LastEditedBy uuid.UUID      `json:"last_edited_by"`
	Tags         []string       `json:"tags"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Collaborators is the ordered collaborator list, loaded alongside the
	// document row. At most one entry per user; the owner never appears.
	Collaborators []Collaborator `json:"collaborators,omitempty"`
}

type Collaborator struct {
	ID         uuid.UUID  `json:"id"`
	DocumentID uuid.UUID  `json:"document_id"`
	UserID     uuid.UUID  `json:"user_id"`
	Permission Permission `json:"permission"`
	AddedAt    time.Time  `json:"added_at"`
	User       *User      `json:"user,omitempty"`
}

// DocumentPatch carries a partial update. Nil fields are left untouched.
type DocumentPatch struct {
	Title    *string
	Content  *string
	Tags     []string
	IsPublic *bool
	Status   *DocumentStatus
}
