package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/inkwell-hq/inkwell-api/internal/models"
)

func docWith(ownerID uuid.UUID, collabs ...models.Collaborator) *models.Document {
	return &models.Document{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Title:         "Plan",
		Status:        models.StatusActive,
		Collaborators: collabs,
	}
}

func TestRoleFor_Owner(t *testing.T) {
	ownerID := uuid.New()
	doc := docWith(ownerID)

	assert.Equal(t, RoleOwner, RoleFor(doc, ownerID))
}

func TestRoleFor_Collaborator(t *testing.T) {
	ownerID := uuid.New()
	viewerID := uuid.New()
	editorID := uuid.New()
	adminID := uuid.New()
	doc := docWith(ownerID,
		models.Collaborator{UserID: viewerID, Permission: models.PermissionView},
		models.Collaborator{UserID: editorID, Permission: models.PermissionEdit},
		models.Collaborator{UserID: adminID, Permission: models.PermissionAdmin},
	)

	assert.Equal(t, RoleViewer, RoleFor(doc, viewerID))
	assert.Equal(t, RoleEditor, RoleFor(doc, editorID))
	assert.Equal(t, RoleAdmin, RoleFor(doc, adminID))
}

func TestRoleFor_NoRelation(t *testing.T) {
	doc := docWith(uuid.New())

	assert.Equal(t, RoleNone, RoleFor(doc, uuid.New()))
}

func TestCanRead_PublicDocument(t *testing.T) {
	doc := docWith(uuid.New())
	doc.IsPublic = true
	stranger := uuid.New()

	assert.True(t, CanRead(doc, stranger))
	assert.False(t, CanWrite(doc, stranger), "public grants read, never write")
}

func TestCanRead_PrivateDocument(t *testing.T) {
	ownerID := uuid.New()
	viewerID := uuid.New()
	doc := docWith(ownerID, models.Collaborator{UserID: viewerID, Permission: models.PermissionView})

	assert.True(t, CanRead(doc, ownerID))
	assert.True(t, CanRead(doc, viewerID))
	assert.False(t, CanRead(doc, uuid.New()))
}

func TestCanWrite(t *testing.T) {
	ownerID := uuid.New()
	viewerID := uuid.New()
	editorID := uuid.New()
	adminID := uuid.New()
	doc := docWith(ownerID,
		models.Collaborator{UserID: viewerID, Permission: models.PermissionView},
		models.Collaborator{UserID: editorID, Permission: models.PermissionEdit},
		models.Collaborator{UserID: adminID, Permission: models.PermissionAdmin},
	)

	assert.True(t, CanWrite(doc, ownerID))
	assert.True(t, CanWrite(doc, editorID))
	assert.True(t, CanWrite(doc, adminID))
	assert.False(t, CanWrite(doc, viewerID))
	assert.False(t, CanWrite(doc, uuid.New()))
}

func TestCanManageCollaborators_OwnerOnly(t *testing.T) {
	ownerID := uuid.New()
	adminID := uuid.New()
	doc := docWith(ownerID, models.Collaborator{UserID: adminID, Permission: models.PermissionAdmin})

	assert.True(t, CanManageCollaborators(doc, ownerID))
	assert.False(t, CanManageCollaborators(doc, adminID), "admin collaborators cannot manage membership")
	assert.False(t, CanManageCollaborators(doc, uuid.New()))
}

func TestCanDelete_OwnerOnly(t *testing.T) {
	ownerID := uuid.New()
	adminID := uuid.New()
	doc := docWith(ownerID, models.Collaborator{UserID: adminID, Permission: models.PermissionAdmin})

	assert.True(t, CanDelete(doc, ownerID))
	assert.False(t, CanDelete(doc, adminID))
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "none", RoleNone.String())
	assert.Equal(t, "view", RoleViewer.String())
	assert.Equal(t, "edit", RoleEditor.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "owner", RoleOwner.String())
}

func TestParsePermission(t *testing.T) {
	for _, valid := range []string{"view", "edit", "admin"} {
		p, err := models.ParsePermission(valid)
		assert.NoError(t, err)
		assert.Equal(t, models.Permission(valid), p)
	}

	_, err := models.ParsePermission("owner")
	assert.Error(t, err, "owner is derived, never a stored permission")

	_, err = models.ParsePermission("write")
	assert.Error(t, err)
}
