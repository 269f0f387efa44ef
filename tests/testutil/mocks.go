package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/inkwell-hq/inkwell-api/internal/hub"
	"github.com/inkwell-hq/inkwell-api/internal/models"
	"github.com/inkwell-hq/inkwell-api/internal/oauth"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	args := m.Called(ctx, email, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockDocumentService mocks the DocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, ownerID uuid.UUID, title, content string, isPublic bool, tags []string) (*models.Document, error) {
	args := m.Called(ctx, ownerID, title, content, isPublic, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Document, []string, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.Document), args.Get(1).([]string), args.Error(2)
}

func (m *MockDocumentService) ListShared(ctx context.Context, userID uuid.UUID) ([]models.Document, []models.Permission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.Document), args.Get(1).([]models.Permission), args.Error(2)
}

func (m *MockDocumentService) Update(ctx context.Context, doc *models.Document, patch models.DocumentPatch, actorID uuid.UUID) (*models.Document, error) {
	args := m.Called(ctx, doc, patch, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentService) Duplicate(ctx context.Context, doc *models.Document, newOwnerID uuid.UUID) (*models.Document, error) {
	args := m.Called(ctx, doc, newOwnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) ListCollaborators(ctx context.Context, documentID uuid.UUID) ([]models.Collaborator, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collaborator), args.Error(1)
}

func (m *MockDocumentService) AddCollaborator(ctx context.Context, documentID, userID uuid.UUID, permission models.Permission) (*models.Collaborator, error) {
	args := m.Called(ctx, documentID, userID, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collaborator), args.Error(1)
}

func (m *MockDocumentService) UpdateCollaboratorPermission(ctx context.Context, documentID, userID uuid.UUID, permission models.Permission) error {
	args := m.Called(ctx, documentID, userID, permission)
	return args.Error(0)
}

func (m *MockDocumentService) RemoveCollaborator(ctx context.Context, documentID, userID uuid.UUID) error {
	args := m.Called(ctx, documentID, userID)
	return args.Error(0)
}

func (m *MockDocumentService) RecordView(ctx context.Context, documentID uuid.UUID) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// MockTemplateService mocks the TemplateService
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) Search(ctx context.Context, query, category string, limit int) ([]models.PublicTemplate, error) {
	args := m.Called(ctx, query, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PublicTemplate), args.Error(1)
}

func (m *MockTemplateService) GetByID(ctx context.Context, id uuid.UUID) (*models.PublicTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicTemplate), args.Error(1)
}

func (m *MockTemplateService) Create(ctx context.Context, name, description, content, category string, creatorID uuid.UUID, tags []string) (*models.PublicTemplate, error) {
	args := m.Called(ctx, name, description, content, category, creatorID, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicTemplate), args.Error(1)
}

func (m *MockTemplateService) Use(ctx context.Context, id uuid.UUID) (*models.PublicTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicTemplate), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendCollaboratorAdded(to, documentTitle, ownerName, permission, documentURL string) error {
	args := m.Called(to, documentTitle, ownerName, permission, documentURL)
	return args.Error(0)
}

// MockHub mocks the realtime hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *hub.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *hub.Client) {
	m.Called(client)
}

func (m *MockHub) Join(clientID string, documentID uuid.UUID) {
	m.Called(clientID, documentID)
}

func (m *MockHub) Leave(clientID string, documentID uuid.UUID) {
	m.Called(clientID, documentID)
}

func (m *MockHub) BroadcastChange(clientID string, documentID uuid.UUID, payload map[string]interface{}) {
	m.Called(clientID, documentID, payload)
}

func (m *MockHub) BroadcastCursor(clientID string, documentID uuid.UUID, payload map[string]interface{}) {
	m.Called(clientID, documentID, payload)
}

func (m *MockHub) BroadcastAIActivity(clientID string, documentID uuid.UUID, activityType, feature string, result interface{}) {
	m.Called(clientID, documentID, activityType, feature, result)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}
