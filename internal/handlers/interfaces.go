package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell-api/internal/hub"
	"github.com/inkwell-hq/inkwell-api/internal/models"
	"github.com/inkwell-hq/inkwell-api/internal/oauth"
	"github.com/inkwell-hq/inkwell-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
}

// DocumentServiceInterface defines the methods used by handlers from DocumentService
type DocumentServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, content string, isPublic bool, tags []string) (*models.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Document, []string, error)
	ListShared(ctx context.Context, userID uuid.UUID) ([]models.Document, []models.Permission, error)
	Update(ctx context.Context, doc *models.Document, patch models.DocumentPatch, actorID uuid.UUID) (*models.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, doc *models.Document, newOwnerID uuid.UUID) (*models.Document, error)
	ListCollaborators(ctx context.Context, documentID uuid.UUID) ([]models.Collaborator, error)
	AddCollaborator(ctx context.Context, documentID, userID uuid.UUID, permission models.Permission) (*models.Collaborator, error)
	UpdateCollaboratorPermission(ctx context.Context, documentID, userID uuid.UUID, permission models.Permission) error
	RemoveCollaborator(ctx context.Context, documentID, userID uuid.UUID) error
	RecordView(ctx context.Context, documentID uuid.UUID) error
}

// TemplateServiceInterface defines the methods used by handlers from TemplateService
type TemplateServiceInterface interface {
	Search(ctx context.Context, query, category string, limit int) ([]models.PublicTemplate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PublicTemplate, error)
	Create(ctx context.Context, name, description, content, category string, creatorID uuid.UUID, tags []string) (*models.PublicTemplate, error)
	Use(ctx context.Context, id uuid.UUID) (*models.PublicTemplate, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateAccessToken(token string) (*services.Claims, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendCollaboratorAdded(to, documentTitle, ownerName, permission, documentURL string) error
}

// HubInterface defines the methods used by handlers from the realtime Hub
type HubInterface interface {
	Register(client *hub.Client)
	Unregister(client *hub.Client)
	Join(clientID string, documentID uuid.UUID)
	Leave(clientID string, documentID uuid.UUID)
	BroadcastChange(clientID string, documentID uuid.UUID, payload map[string]interface{})
	BroadcastCursor(clientID string, documentID uuid.UUID, payload map[string]interface{})
	BroadcastAIActivity(clientID string, documentID uuid.UUID, activityType, feature string, result interface{})
}
