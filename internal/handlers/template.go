package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/inkwell-hq/inkwell-api/internal/middleware"
	"github.com/inkwell-hq/inkwell-api/internal/models"
	"github.com/inkwell-hq/inkwell-api/internal/services"
	"github.com/inkwell-hq/inkwell-api/pkg/dto"
)

type TemplateHandler struct {
	templateService TemplateServiceInterface
}

func NewTemplateHandler(templateService TemplateServiceInterface) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

func (h *TemplateHandler) Search(c *drift.Context) {
	query := strings.TrimSpace(c.QueryParam("q"))
	category := strings.TrimSpace(c.QueryParam("category"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	templates, err := h.templateService.Search(context.Background(), query, category, limit)
	if err != nil {
		c.InternalServerError("failed to search templates")
		return
	}

	results := make([]dto.TemplateSearchResult, 0, len(templates))
	for i := range templates {
		t := &templates[i]
		results = append(results, dto.TemplateSearchResult{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			Tags:        t.Tags,
			UsageCount:  t.UsageCount,
		})
	}

	_ = c.JSON(200, map[string]interface{}{"templates": results})
}

func (h *TemplateHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		c.BadRequest("invalid template id")
		return
	}

	template, err := h.templateService.GetByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			c.NotFound("template not found")
			return
		}
		c.InternalServerError("failed to load template")
		return
	}

	_ = c.JSON(200, toTemplateDetail(template))
}

func (h *TemplateHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)

	var req dto.CreateTemplateRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	template, err := h.templateService.Create(
		context.Background(),
		req.Name, req.Description, req.Content, req.Category,
		userID, req.Tags,
	)
	if err != nil {
		c.InternalServerError("failed to create template")
		return
	}

	_ = c.JSON(201, toTemplateDetail(template))
}

// Use bumps the template's usage counter and returns its full content so the
// client can seed a new document from it.
func (h *TemplateHandler) Use(c *drift.Context) {
	id, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		c.BadRequest("invalid template id")
		return
	}

	template, err := h.templateService.Use(context.Background(), id)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			c.NotFound("template not found")
			return
		}
		c.InternalServerError("failed to use template")
		return
	}

	_ = c.JSON(200, toTemplateDetail(template))
}

func toTemplateDetail(t *models.PublicTemplate) dto.TemplateDetail {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.TemplateDetail{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Content:     t.Content,
		Tags:        tags,
		UsageCount:  t.UsageCount,
	}
}
