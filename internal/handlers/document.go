package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/inkwell-hq/inkwell-api/internal/access"
	"github.com/inkwell-hq/inkwell-api/internal/middleware"
	"github.com/inkwell-hq/inkwell-api/internal/models"
	"github.com/inkwell-hq/inkwell-api/internal/services"
	"github.com/inkwell-hq/inkwell-api/pkg/dto"
)

type DocumentHandler struct {
	documentService DocumentServiceInterface
}

func NewDocumentHandler(documentService DocumentServiceInterface) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	docs, roles, err := h.documentService.List(context.Background(), userID, limit, (page-1)*limit)
	if err != nil {
		c.InternalServerError("failed to list documents")
		return
	}

	responses := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		role := roles[i]
		responses = append(responses, toDocumentResponse(&docs[i], &role))
	}

	_ = c.JSON(200, dto.DocumentListResponse{
		Documents: responses,
		Page:      page,
		Limit:     limit,
	})
}

func (h *DocumentHandler) ListShared(c *drift.Context) {
	userID := middleware.GetUserID(c)

	docs, perms, err := h.documentService.ListShared(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list shared documents")
		return
	}

	responses := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		perm := string(perms[i])
		responses = append(responses, toDocumentResponse(&docs[i], &perm))
	}

	_ = c.JSON(200, map[string]interface{}{"documents": responses})
}

func (h *DocumentHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)

	var req dto.CreateDocumentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	doc, err := h.documentService.Create(context.Background(), userID, req.Title, req.Content, req.IsPublic, req.Tags)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTitle) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create document")
		return
	}

	role := access.RoleOwner.String()
	_ = c.JSON(201, toDocumentResponse(doc, &role))
}

func (h *DocumentHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)

	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	if !access.CanRead(doc, userID) {
		c.Forbidden("no access to this document")
		return
	}

	if doc.OwnerID != userID {
		if err := h.documentService.RecordView(context.Background(), doc.ID); err != nil {
			log.Printf("failed to record view for document %s: %v", doc.ID, err)
		} else {
			doc.ViewCount++
		}
	}

	// Role is null when the caller can only read through public visibility.
	var perm *string
	if role := access.RoleFor(doc, userID); role != access.RoleNone {
		s := role.String()
		perm = &s
	}

	_ = c.JSON(200, toDocumentResponse(doc, perm))
}

func (h *DocumentHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)

	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	if !access.CanWrite(doc, userID) {
		c.Forbidden("edit access required")
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	patch := models.DocumentPatch{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	}

	if req.Status != nil {
		status, err := models.ParseDocumentStatus(*req.Status)
		if err != nil {
			c.BadRequest(err.Error())
			return
		}
		patch.Status = &status
	}

	// Visibility and lifecycle are owner-only; for everyone else these
	// fields are dropped from the patch rather than rejected.
	if doc.OwnerID != userID {
		patch.IsPublic = nil
		patch.Status = nil
	}

	updated, err := h.documentService.Update(context.Background(), doc, patch, userID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTitle) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to update document")
		return
	}

	role := access.RoleFor(updated, userID).String()
	_ = c.JSON(200, toDocumentResponse(updated, &role))
}

func (h *DocumentHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)

	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	if !access.CanDelete(doc, userID) {
		c.Forbidden("only the owner can delete a document")
		return
	}

	if err := h.documentService.Delete(context.Background(), doc.ID); err != nil {
		c.InternalServerError("failed to delete document")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "document deleted"})
}

func (h *DocumentHandler) Duplicate(c *drift.Context) {
	userID := middleware.GetUserID(c)

	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	if !access.CanRead(doc, userID) {
		c.Forbidden("no access to this document")
		return
	}

	dup, err := h.documentService.Duplicate(context.Background(), doc, userID)
	if err != nil {
		c.InternalServerError("failed to duplicate document")
		return
	}

	role := access.RoleOwner.String()
	_ = c.JSON(201, toDocumentResponse(dup, &role))
}

// loadDocument parses the :id param and fetches the document, writing the
// error response itself on failure.
func (h *DocumentHandler) loadDocument(c *drift.Context) (*models.Document, bool) {
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

func toDocumentResponse(doc *models.Document, userPermission *string) dto.DocumentResponse {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}

	return dto.DocumentResponse{
		ID:             doc.ID,
		OwnerID:        doc.OwnerID,
		Title:          doc.Title,
		Content:        doc.Content,
		IsPublic:       doc.IsPublic,
		Status:         string(doc.Status),
		Version:        doc.Version,
		ViewCount:      doc.ViewCount,
		LastEditedBy:   doc.LastEditedBy,
		Tags:           tags,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
		UserPermission: userPermission,
	}
}
