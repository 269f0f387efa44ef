package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/inkwell-hq/inkwell-api/internal/access"
	"github.com/inkwell-hq/inkwell-api/internal/middleware"
	"github.com/inkwell-hq/inkwell-api/internal/models"
	"github.com/inkwell-hq/inkwell-api/internal/services"
	"github.com/inkwell-hq/inkwell-api/pkg/dto"
)

type CollaborationHandler struct {
	documentService DocumentServiceInterface
	userService     UserServiceInterface
	emailService    EmailServiceInterface
	frontendURL     string
}

func NewCollaborationHandler(
	documentService DocumentServiceInterface,
	userService UserServiceInterface,
	emailService EmailServiceInterface,
	frontendURL string,
) *CollaborationHandler {
	return &CollaborationHandler{
		documentService: documentService,
		userService:     userService,
		emailService:    emailService,
		frontendURL:     frontendURL,
	}
}

func (h *CollaborationHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)

	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	if !access.CanRead(doc, userID) {
		c.Forbidden("no access to this document")
		return
	}

	ctx := context.Background()

	owner, err := h.userService.GetByID(ctx, doc.OwnerID)
	if err != nil {
		c.InternalServerError("failed to load owner")
		return
	}

	collabs, err := h.documentService.ListCollaborators(ctx, doc.ID)
	if err != nil {
		c.InternalServerError("failed to list collaborators")
		return
	}

	responses := make([]dto.CollaboratorResponse, 0, len(collabs))
	for i := range collabs {
		responses = append(responses, toCollaboratorResponse(&collabs[i]))
	}

	_ = c.JSON(200, dto.CollaboratorListResponse{
		Owner:         toUserResponse(owner),
		Collaborators: responses,
	})
}

func (h *CollaborationHandler) Add(c *drift.Context) {
	userID := middleware.GetUserID(c)

	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	if !access.CanManageCollaborators(doc, userID) {
		c.Forbidden("only the owner can manage collaborators")
		return
	}

	var req dto.AddCollaboratorRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	permission, err := models.ParsePermission(req.Permission)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	ctx := context.Background()

	target, err := h.userService.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(req.UserEmail)))
	if err != nil {
		c.NotFound("no user with that email")
		return
	}

	if target.ID == userID {
		c.BadRequest("cannot add yourself as a collaborator")
		return
	}

	collab, err := h.documentService.AddCollaborator(ctx, doc.ID, target.ID, permission)
	if err != nil {
		c.InternalServerError("failed to add collaborator")
		return
	}
	collab.User = target

	// Non-blocking notification; failure to send never fails the add.
	go h.notifyCollaborator(target.Email, doc, userID, string(permission))

	_ = c.JSON(200, toCollaboratorResponse(collab))
}

func (h *CollaborationHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)

	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	if !access.CanManageCollaborators(doc, userID) {
		c.Forbidden("only the owner can manage collaborators")
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	var req dto.UpdateCollaboratorRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	permission, err := models.ParsePermission(req.Permission)
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	err = h.documentService.UpdateCollaboratorPermission(context.Background(), doc.ID, targetID, permission)
	if err != nil {
		if errors.Is(err, services.ErrNotCollaborator) {
			c.NotFound("not a collaborator on this document")
			return
		}
		c.InternalServerError("failed to update collaborator")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "permission updated"})
}

func (h *CollaborationHandler) Remove(c *drift.Context) {
	userID := middleware.GetUserID(c)

	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	// Self-removal is always allowed, whatever the actor's role.
	if targetID != userID && !access.CanManageCollaborators(doc, userID) {
		c.Forbidden("only the owner can remove other collaborators")
		return
	}

	if err := h.documentService.RemoveCollaborator(context.Background(), doc.ID, targetID); err != nil {
		c.InternalServerError("failed to remove collaborator")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "collaborator removed"})
}

func (h *CollaborationHandler) loadDocument(c *drift.Context) (*models.Document, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid document id")
		return nil, false
	}

	doc, err := h.documentService.GetByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.NotFound("document not found")
		} else {
			c.InternalServerError("failed to load document")
		}
		return nil, false
	}

	return doc, true
}

func (h *CollaborationHandler) notifyCollaborator(to string, doc *models.Document, ownerID uuid.UUID, permission string) {
	owner, err := h.userService.GetByID(context.Background(), ownerID)
	if err != nil {
		log.Printf("failed to load owner for collaborator email: %v", err)
		return
	}

	documentURL := fmt.Sprintf("%s/documents/%s", h.frontendURL, doc.ID)
	if err := h.emailService.SendCollaboratorAdded(to, doc.Title, owner.Name, permission, documentURL); err != nil {
		log.Printf("failed to send collaborator email to %s: %v", to, err)
	}
}

func toCollaboratorResponse(collab *models.Collaborator) dto.CollaboratorResponse {
	resp := dto.CollaboratorResponse{
		UserID:     collab.UserID,
		Permission: string(collab.Permission),
		AddedAt:    collab.AddedAt,
	}
	if collab.User != nil {
		resp.User = toUserResponse(collab.User)
	}
	return resp
}
