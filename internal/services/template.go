package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/inkwell-hq/inkwell-api/internal/database"
	"github.com/inkwell-hq/inkwell-api/internal/models"
)

var ErrTemplateNotFound = errors.New("template not found")

const templateColumns = `id, name, description, content, category, creator_id, is_public, tags, usage_count, created_at, updated_at`

type TemplateService struct {
	db *database.DB
}

func NewTemplateService(db *database.DB) *TemplateService {
	return &TemplateService{db: db}
}

func (s *TemplateService) Search(ctx context.Context, query, category string, limit int) ([]models.PublicTemplate, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+templateColumns+`
		FROM public_templates
		WHERE is_public = TRUE
		  AND name ILIKE '%' || $1 || '%'
		  AND ($2 = '' OR category = $2)
		ORDER BY usage_count DESC, name ASC
		LIMIT $3
	`, query, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.PublicTemplate
	for rows.Next() {
		var t models.PublicTemplate
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Content, &t.Category, &t.CreatorID,
			&t.IsPublic, &t.Tags, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

func (s *TemplateService) GetByID(ctx context.Context, id uuid.UUID) (*models.PublicTemplate, error) {
	var t models.PublicTemplate
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+templateColumns+`
		FROM public_templates
		WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Content, &t.Category, &t.CreatorID,
		&t.IsPublic, &t.Tags, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TemplateService) Create(ctx context.Context, name, description, content, category string, creatorID uuid.UUID, tags []string) (*models.PublicTemplate, error) {
	if tags == nil {
		tags = []string{}
	}
	if category == "" {
		category = "general"
	}

	var t models.PublicTemplate
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO public_templates (name, description, content, category, creator_id, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+templateColumns+`
	`, name, description, content, category, creatorID, tags).Scan(
		&t.ID, &t.Name, &t.Description, &t.Content, &t.Category, &t.CreatorID,
		&t.IsPublic, &t.Tags, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Use returns the template and bumps its usage counter.
func (s *TemplateService) Use(ctx context.Context, id uuid.UUID) (*models.PublicTemplate, error) {
	var t models.PublicTemplate
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE public_templates SET usage_count = usage_count + 1
		WHERE id = $1
		RETURNING `+templateColumns+`
	`, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Content, &t.Category, &t.CreatorID,
		&t.IsPublic, &t.Tags, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM public_templates WHERE id = $1`, id)
	return err
}
