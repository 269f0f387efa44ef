// Package access computes a user's effective role on a document and exposes
// the boolean gates the handlers enforce. Everything here is a pure function
// over an already-loaded document; nothing errors.
package access

import (
	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell-api/internal/models"
)

// Role is the effective access level of a user on a document, ordered from
// weakest to strongest. RoleOwner is derived from Document.OwnerID and is
// never stored in the collaborators table.
type Role int

const (
	RoleNone Role = iota
	RoleViewer
	RoleEditor
	RoleAdmin
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleViewer:
		return "view"
	case RoleEditor:
		return "edit"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	default:
		return "none"
	}
}

func FromPermission(p models.Permission) Role {
	switch p {
	case models.PermissionView:
		return RoleViewer
	case models.PermissionEdit:
		return RoleEditor
	case models.PermissionAdmin:
		return RoleAdmin
	default:
		return RoleNone
	}
}

// RoleFor returns the actor's role on doc: RoleOwner for the owner, the
// collaborator entry's level if one exists, RoleNone otherwise. Public
// visibility is not a role; CanRead accounts for it.
func RoleFor(doc *models.Document, actorID uuid.UUID) Role {
	if doc.OwnerID == actorID {
		return RoleOwner
	}
	for _, collab := range doc.Collaborators {
		if collab.UserID == actorID {
			return FromPermission(collab.Permission)
		}
	}
	return RoleNone
}

func CanRead(doc *models.Document, actorID uuid.UUID) bool {
	return doc.IsPublic || RoleFor(doc, actorID) != RoleNone
}

// CanWrite requires edit or better. Public documents grant read, never write.
func CanWrite(doc *models.Document, actorID uuid.UUID) bool {
	return RoleFor(doc, actorID) >= RoleEditor
}

// CanManageCollaborators is owner-only. Admin collaborators deliberately do
// not get collaborator management.
func CanManageCollaborators(doc *models.Document, actorID uuid.UUID) bool {
	return RoleFor(doc, actorID) == RoleOwner
}

func CanDelete(doc *models.Document, actorID uuid.UUID) bool {
	return RoleFor(doc, actorID) == RoleOwner
}
