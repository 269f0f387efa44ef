package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-hq/inkwell-api/internal/database"
	"github.com/inkwell-hq/inkwell-api/internal/models"
	"github.com/inkwell-hq/inkwell-api/internal/oauth"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
		Name:  fmt.Sprintf("Test User %d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, avatar_url, password_hash, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, name, avatar_url, password_hash, provider, provider_id, created_at, updated_at
	`, user.Email, user.Name, user.AvatarURL, user.PasswordHash, user.Provider, user.ProviderID).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL, &user.PasswordHash,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// WithPassword gives the user a bcrypt-hashed password
func WithPassword(password string) UserOption {
	return func(u *models.User) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		s := string(hash)
		u.PasswordHash = &s
	}
}

// WithProvider sets the user's OAuth provider
func WithProvider(provider, providerID string) UserOption {
	return func(u *models.User) {
		u.Provider = &provider
		u.ProviderID = &providerID
	}
}

// CreateDocument creates a test document owned by the given user
func (f *Fixtures) CreateDocument(t *testing.T, owner *models.User, opts ...DocumentOption) *models.Document {
	t.Helper()
	f.counter++

	doc := &models.Document{
		OwnerID: owner.ID,
		Title:   fmt.Sprintf("Test Document %d", f.counter),
		Content: "hello world",
		Status:  models.StatusActive,
		Tags:    []string{},
	}

	for _, opt := range opts {
		opt(doc)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO documents (owner_id, title, content, is_public, status, last_edited_by, tags)
		VALUES ($1, $2, $3, $4, $5, $1, $6)
		RETURNING id, owner_id, title, content, is_public, status, version, view_count, last_edited_by, tags, created_at, updated_at
	`, doc.OwnerID, doc.Title, doc.Content, doc.IsPublic, doc.Status, doc.Tags).Scan(
		&doc.ID, &doc.OwnerID, &doc.Title, &doc.Content, &doc.IsPublic, &doc.Status,
		&doc.Version, &doc.ViewCount, &doc.LastEditedBy, &doc.Tags, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}

	return doc
}

// DocumentOption configures a test document
type DocumentOption func(*models.Document)

// WithTitle sets the document title
func WithTitle(title string) DocumentOption {
	return func(d *models.Document) {
		d.Title = title
	}
}

// WithContent sets the document content
func WithContent(content string) DocumentOption {
	return func(d *models.Document) {
		d.Content = content
	}
}

// WithPublic marks the document as publicly readable
func WithPublic() DocumentOption {
	return func(d *models.Document) {
		d.IsPublic = true
	}
}

// WithStatus sets the document lifecycle status
func WithStatus(status models.DocumentStatus) DocumentOption {
	return func(d *models.Document) {
		d.Status = status
	}
}

// WithTags sets the document tags
func WithTags(tags ...string) DocumentOption {
	return func(d *models.Document) {
		d.Tags = tags
	}
}

// AddCollaborator grants a user access to a document
func (f *Fixtures) AddCollaborator(t *testing.T, doc *models.Document, user *models.User, permission models.Permission) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO document_collaborators (document_id, user_id, permission)
		VALUES ($1, $2, $3)
		ON CONFLICT (document_id, user_id) DO UPDATE SET permission = EXCLUDED.permission
	`, doc.ID, user.ID, permission)
	if err != nil {
		t.Fatalf("failed to add collaborator: %v", err)
	}
}

// CreateTemplate creates a public template in the catalog
func (f *Fixtures) CreateTemplate(t *testing.T, opts ...TemplateOption) *models.PublicTemplate {
	t.Helper()
	f.counter++

	tpl := &models.PublicTemplate{
		Name:        fmt.Sprintf("Test Template %d", f.counter),
		Description: "a template for tests",
		Content:     "# Heading\n",
		Category:    "work",
		IsPublic:    true,
		Tags:        []string{},
	}

	for _, opt := range opts {
		opt(tpl)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO public_templates (name, description, content, category, creator_id, is_public, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, content, category, creator_id, is_public, tags, usage_count, created_at, updated_at
	`, tpl.Name, tpl.Description, tpl.Content, tpl.Category, tpl.CreatorID, tpl.IsPublic, tpl.Tags).Scan(
		&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Content, &tpl.Category, &tpl.CreatorID,
		&tpl.IsPublic, &tpl.Tags, &tpl.UsageCount, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	return tpl
}

// TemplateOption configures a test template
type TemplateOption func(*models.PublicTemplate)

// WithTemplateName sets the template name
func WithTemplateName(name string) TemplateOption {
	return func(tpl *models.PublicTemplate) {
		tpl.Name = name
	}
}

// WithCategory sets the template category
func WithCategory(category string) TemplateOption {
	return func(tpl *models.PublicTemplate) {
		tpl.Category = category
	}
}

// WithCreator sets the template creator
func WithCreator(user *models.User) TemplateOption {
	return func(tpl *models.PublicTemplate) {
		tpl.CreatorID = &user.ID
	}
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, provider, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:     email,
		Name:      name,
		AvatarURL: "https://example.com/avatar.png",
		ID:        id,
		Provider:  provider,
	}
}
