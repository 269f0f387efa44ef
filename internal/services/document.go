package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/inkwell-hq/inkwell-api/internal/database"
	"github.com/inkwell-hq/inkwell-api/internal/models"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidTitle     = errors.New("title must be between 1 and 200 characters")
	ErrNotCollaborator  = errors.New("user is not a collaborator on this document")
)

const documentColumns = `id, owner_id, title, content, is_public, status, version, view_count, last_edited_by, tags, created_at, updated_at`

type DocumentService struct {
	db *database.DB
}

func NewDocumentService(db *database.DB) *DocumentService {
	return &DocumentService{db: db}
}

// The title bound counts runes, not bytes; multibyte titles within the bound
// are valid.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" || utf8.RuneCountInString(title) > models.MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func (s *DocumentService) Create(ctx context.Context, ownerID uuid.UUID, title, content string, isPublic bool, tags []string) (*models.Document, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}

	var doc models.Document
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO documents (owner_id, title, content, is_public, last_edited_by, tags)
		VALUES ($1, $2, $3, $4, $1, $5)
		RETURNING `+documentColumns+`
	`, ownerID, title, content, isPublic, tags).Scan(
		&doc.ID, &doc.OwnerID, &doc.Title, &doc.Content, &doc.IsPublic, &doc.Status,
		&doc.Version, &doc.ViewCount, &doc.LastEditedBy, &doc.Tags, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	doc.Collaborators = []models.Collaborator{}
	return &doc, nil
}

// GetByID loads the document together with its collaborator entries, so the
// access gates can run against the full aggregate.
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE id = $1
	`, id).Scan(
		&doc.ID, &doc.OwnerID, &doc.Title, &doc.Content, &doc.IsPublic, &doc.Status,
		&doc.Version, &doc.ViewCount, &doc.LastEditedBy, &doc.Tags, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, document_id, user_id, permission, added_at
		FROM document_collaborators
		WHERE document_id = $1
		ORDER BY added_at
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doc.Collaborators = []models.Collaborator{}
	for rows.Next() {
		var collab models.Collaborator
		if err := rows.Scan(&collab.ID, &collab.DocumentID, &collab.UserID, &collab.Permission, &collab.AddedAt); err != nil {
			return nil, err
		}
		doc.Collaborators = append(doc.Collaborators, collab)
	}
	return &doc, nil
}

// List returns documents the user owns or collaborates on, newest first,
// with the user's role on each.
func (s *DocumentService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Document, []string, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+qualified(documentColumns, "d")+`,
		       CASE WHEN d.owner_id = $1 THEN 'owner' ELSE dc.permission END AS role
		FROM documents d
		LEFT JOIN document_collaborators dc ON d.id = dc.document_id AND dc.user_id = $1
		WHERE d.owner_id = $1 OR dc.user_id = $1
		ORDER BY d.updated_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var docs []models.Document
	var roles []string
	for rows.Next() {
		var doc models.Document
		var role string
		if err := rows.Scan(
			&doc.ID, &doc.OwnerID, &doc.Title, &doc.Content, &doc.IsPublic, &doc.Status,
			&doc.Version, &doc.ViewCount, &doc.LastEditedBy, &doc.Tags, &doc.CreatedAt, &doc.UpdatedAt,
			&role,
		); err != nil {
			return nil, nil, err
		}
		docs = append(docs, doc)
		roles = append(roles, role)
	}
	return docs, roles, nil
}

// ListShared returns active documents where the user appears as a
// collaborator, with the user's permission on each.
func (s *DocumentService) ListShared(ctx context.Context, userID uuid.UUID) ([]models.Document, []models.Permission, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+qualified(documentColumns, "d")+`, dc.permission
		FROM documents d
		JOIN document_collaborators dc ON d.id = dc.document_id
		WHERE dc.user_id = $1 AND d.status = 'active'
		ORDER BY d.updated_at DESC
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var docs []models.Document
	var permissions []models.Permission
	for rows.Next() {
		var doc models.Document
		var permission models.Permission
		if err := rows.Scan(
			&doc.ID, &doc.OwnerID, &doc.Title, &doc.Content, &doc.IsPublic, &doc.Status,
			&doc.Version, &doc.ViewCount, &doc.LastEditedBy, &doc.Tags, &doc.CreatedAt, &doc.UpdatedAt,
			&permission,
		); err != nil {
			return nil, nil, err
		}
		docs = append(docs, doc)
		permissions = append(permissions, permission)
	}
	return docs, permissions, nil
}

// Update applies a partial patch to an already-loaded document. The version
// counter increments only when the patch carries content that differs from
// the stored content; metadata-only updates never bump it. The new version is
// computed from the copy the caller read, so two concurrent writers race and
// the last write wins.
func (s *DocumentService) Update(ctx context.Context, doc *models.Document, patch models.DocumentPatch, actorID uuid.UUID) (*models.Document, error) {
	sets := []string{"last_edited_by = $1", "updated_at = NOW()"}
	args := []any{actorID}

	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Content != nil {
		args = append(args, *patch.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
		if *patch.Content != doc.Content {
			args = append(args, doc.Version+1)
			sets = append(sets, fmt.Sprintf("version = $%d", len(args)))
		}
	}
	if patch.Tags != nil {
		args = append(args, patch.Tags)
		sets = append(sets, fmt.Sprintf("tags = $%d", len(args)))
	}
	if patch.IsPublic != nil {
		args = append(args, *patch.IsPublic)
		sets = append(sets, fmt.Sprintf("is_public = $%d", len(args)))
	}
	if patch.Status != nil {
		args = append(args, *patch.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}

	args = append(args, doc.ID)
	query := fmt.Sprintf(`
		UPDATE documents SET %s
		WHERE id = $%d
		RETURNING `+documentColumns, strings.Join(sets, ", "), len(args))

	var updated models.Document
	err := s.db.Pool.QueryRow(ctx, query, args...).Scan(
		&updated.ID, &updated.OwnerID, &updated.Title, &updated.Content, &updated.IsPublic, &updated.Status,
		&updated.Version, &updated.ViewCount, &updated.LastEditedBy, &updated.Tags, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	updated.Collaborators = doc.Collaborators
	return &updated, nil
}

func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}

// Duplicate creates a fresh private copy owned by newOwner. The copy starts
// at version 1 with zero views and never inherits public visibility.
func (s *DocumentService) Duplicate(ctx context.Context, doc *models.Document, newOwnerID uuid.UUID) (*models.Document, error) {
	title := copyTitle(doc.Title)

	var copy models.Document
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO documents (owner_id, title, content, is_public, status, last_edited_by, tags)
		VALUES ($1, $2, $3, FALSE, 'active', $1, $4)
		RETURNING `+documentColumns+`
	`, newOwnerID, title, doc.Content, doc.Tags).Scan(
		&copy.ID, &copy.OwnerID, &copy.Title, &copy.Content, &copy.IsPublic, &copy.Status,
		&copy.Version, &copy.ViewCount, &copy.LastEditedBy, &copy.Tags, &copy.CreatedAt, &copy.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate document: %w", err)
	}
	copy.Collaborators = []models.Collaborator{}
	return &copy, nil
}

func (s *DocumentService) ListCollaborators(ctx context.Context, documentID uuid.UUID) ([]models.Collaborator, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT dc.id, dc.document_id, dc.user_id, dc.permission, dc.added_at,
		       u.id, u.email, u.name, u.avatar_url, u.created_at, u.updated_at
		FROM document_collaborators dc
		JOIN users u ON dc.user_id = u.id
		WHERE dc.document_id = $1
		ORDER BY dc.added_at
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collaborators []models.Collaborator
	for rows.Next() {
		var collab models.Collaborator
		var user models.User
		if err := rows.Scan(
			&collab.ID, &collab.DocumentID, &collab.UserID, &collab.Permission, &collab.AddedAt,
			&user.ID, &user.Email, &user.Name, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		collab.User = &user
		collaborators = append(collaborators, collab)
	}
	return collaborators, nil
}

// AddCollaborator adds the user at the given permission. Re-adding an
// existing collaborator updates the permission in place; the original
// added_at is kept and no duplicate entry is created.
func (s *DocumentService) AddCollaborator(ctx context.Context, documentID, userID uuid.UUID, permission models.Permission) (*models.Collaborator, error) {
	var collab models.Collaborator
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO document_collaborators (document_id, user_id, permission)
		VALUES ($1, $2, $3)
		ON CONFLICT (document_id, user_id) DO UPDATE SET permission = EXCLUDED.permission
		RETURNING id, document_id, user_id, permission, added_at
	`, documentID, userID, permission).Scan(
		&collab.ID, &collab.DocumentID, &collab.UserID, &collab.Permission, &collab.AddedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add collaborator: %w", err)
	}
	return &collab, nil
}

func (s *DocumentService) UpdateCollaboratorPermission(ctx context.Context, documentID, userID uuid.UUID, permission models.Permission) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE document_collaborators SET permission = $1
		WHERE document_id = $2 AND user_id = $3
	`, permission, documentID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotCollaborator
	}
	return nil
}

// RemoveCollaborator deletes the entry if present. Removing a user who is
// not a collaborator is a no-op, not an error.
func (s *DocumentService) RemoveCollaborator(ctx context.Context, documentID, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		DELETE FROM document_collaborators WHERE document_id = $1 AND user_id = $2
	`, documentID, userID)
	return err
}

func (s *DocumentService) RecordView(ctx context.Context, documentID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE documents SET view_count = view_count + 1 WHERE id = $1
	`, documentID)
	return err
}

const copySuffix = " (Copy)"

// copyTitle appends the copy suffix, shortening the original on a rune
// boundary so the result stays within the title bound and is valid UTF-8.
func copyTitle(original string) string {
	title := original + copySuffix
	if utf8.RuneCountInString(title) <= models.MaxTitleLength {
		return title
	}
	keep := models.MaxTitleLength - utf8.RuneCountInString(copySuffix)
	return string([]rune(original)[:keep]) + copySuffix
}

// qualified prefixes each column in a comma-separated list with a table alias.
func qualified(columns, alias string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
