package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-hq/inkwell-api/internal/middleware"
	"github.com/inkwell-hq/inkwell-api/internal/models"
	"github.com/inkwell-hq/inkwell-api/internal/services"
	"github.com/inkwell-hq/inkwell-api/pkg/dto"
	"github.com/inkwell-hq/inkwell-api/tests/testutil"
)

func setupDocumentTest(t *testing.T) (*testutil.MockDocumentService, http.Handler, *services.JWTService) {
	t.Helper()

	mockDocService := new(testutil.MockDocumentService)
	handler := NewDocumentHandler(mockDocService)
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/documents", handler.List)
	app.Get("/documents/shared", handler.ListShared)
	app.Post("/documents", handler.Create)
	app.Get("/documents/:id", handler.Get)
	app.Put("/documents/:id", handler.Update)
	app.Delete("/documents/:id", handler.Delete)
	app.Post("/documents/:id/duplicate", handler.Duplicate)

	return mockDocService, app, jwtSvc
}

func testDocument(ownerID uuid.UUID) *models.Document {
	return &models.Document{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        "Launch Plan",
		Content:      "step one",
		Status:       models.StatusActive,
		Version:      1,
		LastEditedBy: ownerID,
		Tags:         []string{"work"},
	}
}

func doJSON(app http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestDocumentHandler_Create_Success(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	userID := uuid.New()
	doc := testDocument(userID)

	mockDocService.On("Create", mock.Anything, userID, "Launch Plan", "step one", false, []string{"work"}).
		Return(doc, nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := doJSON(app, http.MethodPost, "/documents", token, dto.CreateDocumentRequest{
		Title:   "Launch Plan",
		Content: "step one",
		Tags:    []string{"work"},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.DocumentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, doc.ID, response.ID)
	require.NotNil(t, response.UserPermission)
	assert.Equal(t, "owner", *response.UserPermission)

	mockDocService.AssertExpectations(t)
}

func TestDocumentHandler_Create_InvalidTitle(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	userID := uuid.New()
	mockDocService.On("Create", mock.Anything, userID, "", "", false, mock.Anything).
		Return(nil, services.ErrInvalidTitle)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := doJSON(app, http.MethodPost, "/documents", token, dto.CreateDocumentRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentHandler_Get_Owner(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	userID := uuid.New()
	doc := testDocument(userID)

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := doJSON(app, http.MethodGet, "/documents/"+doc.ID.String(), token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.DocumentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.UserPermission)
	assert.Equal(t, "owner", *response.UserPermission)

	// Owner opens do not count as views.
	mockDocService.AssertNotCalled(t, "RecordView", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Get_CollaboratorRecordsView(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	viewerID := uuid.New()
	doc := testDocument(ownerID)
	doc.Collaborators = []models.Collaborator{
		{DocumentID: doc.ID, UserID: viewerID, Permission: models.PermissionView},
	}

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	mockDocService.On("RecordView", mock.Anything, doc.ID).Return(nil)

	token := generateTestToken(t, jwtSvc, viewerID, "viewer@example.com")
	rec := doJSON(app, http.MethodGet, "/documents/"+doc.ID.String(), token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.DocumentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.UserPermission)
	assert.Equal(t, "view", *response.UserPermission)
	assert.Equal(t, 1, response.ViewCount)

	mockDocService.AssertExpectations(t)
}

func TestDocumentHandler_Get_PublicHasNullPermission(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	strangerID := uuid.New()
	doc := testDocument(ownerID)
	doc.IsPublic = true

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	mockDocService.On("RecordView", mock.Anything, doc.ID).Return(nil)

	token := generateTestToken(t, jwtSvc, strangerID, "stranger@example.com")
	rec := doJSON(app, http.MethodGet, "/documents/"+doc.ID.String(), token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.DocumentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Nil(t, response.UserPermission)
}

func TestDocumentHandler_Get_NoAccess(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	strangerID := uuid.New()
	doc := testDocument(ownerID)

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)

	token := generateTestToken(t, jwtSvc, strangerID, "stranger@example.com")
	rec := doJSON(app, http.MethodGet, "/documents/"+doc.ID.String(), token, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockDocService.AssertNotCalled(t, "RecordView", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Get_NotFound(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	docID := uuid.New()
	mockDocService.On("GetByID", mock.Anything, docID).Return(nil, services.ErrDocumentNotFound)

	token := generateTestToken(t, jwtSvc, uuid.New(), "user@example.com")
	rec := doJSON(app, http.MethodGet, "/documents/"+docID.String(), token, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocumentHandler_Get_InvalidID(t *testing.T) {
	_, app, jwtSvc := setupDocumentTest(t)

	token := generateTestToken(t, jwtSvc, uuid.New(), "user@example.com")
	rec := doJSON(app, http.MethodGet, "/documents/not-a-uuid", token, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentHandler_Update_EditorCanWrite(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	editorID := uuid.New()
	doc := testDocument(ownerID)
	doc.Collaborators = []models.Collaborator{
		{DocumentID: doc.ID, UserID: editorID, Permission: models.PermissionEdit},
	}

	updated := *doc
	updated.Content = "step two"
	updated.Version = 2

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	mockDocService.On("Update", mock.Anything, doc, mock.MatchedBy(func(p models.DocumentPatch) bool {
		return p.Content != nil && *p.Content == "step two" && p.IsPublic == nil && p.Status == nil
	}), editorID).Return(&updated, nil)

	token := generateTestToken(t, jwtSvc, editorID, "editor@example.com")
	content := "step two"
	rec := doJSON(app, http.MethodPut, "/documents/"+doc.ID.String(), token, dto.UpdateDocumentRequest{
		Content: &content,
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.DocumentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Version)

	mockDocService.AssertExpectations(t)
}

func TestDocumentHandler_Update_ViewerForbidden(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	viewerID := uuid.New()
	doc := testDocument(ownerID)
	doc.Collaborators = []models.Collaborator{
		{DocumentID: doc.ID, UserID: viewerID, Permission: models.PermissionView},
	}

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)

	token := generateTestToken(t, jwtSvc, viewerID, "viewer@example.com")
	content := "sneaky edit"
	rec := doJSON(app, http.MethodPut, "/documents/"+doc.ID.String(), token, dto.UpdateDocumentRequest{
		Content: &content,
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockDocService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_Update_NonOwnerCannotChangeVisibility(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	editorID := uuid.New()
	doc := testDocument(ownerID)
	doc.Collaborators = []models.Collaborator{
		{DocumentID: doc.ID, UserID: editorID, Permission: models.PermissionEdit},
	}

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	mockDocService.On("Update", mock.Anything, doc, mock.MatchedBy(func(p models.DocumentPatch) bool {
		return p.IsPublic == nil && p.Status == nil
	}), editorID).Return(doc, nil)

	token := generateTestToken(t, jwtSvc, editorID, "editor@example.com")
	isPublic := true
	status := "archived"
	rec := doJSON(app, http.MethodPut, "/documents/"+doc.ID.String(), token, dto.UpdateDocumentRequest{
		IsPublic: &isPublic,
		Status:   &status,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	mockDocService.AssertExpectations(t)
}

func TestDocumentHandler_Update_InvalidStatus(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	doc := testDocument(ownerID)

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)

	token := generateTestToken(t, jwtSvc, ownerID, "owner@example.com")
	status := "published"
	rec := doJSON(app, http.MethodPut, "/documents/"+doc.ID.String(), token, dto.UpdateDocumentRequest{
		Status: &status,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockDocService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_Delete_OwnerOnly(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	adminID := uuid.New()
	doc := testDocument(ownerID)
	doc.Collaborators = []models.Collaborator{
		{DocumentID: doc.ID, UserID: adminID, Permission: models.PermissionAdmin},
	}

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)

	// Even admin collaborators cannot delete.
	token := generateTestToken(t, jwtSvc, adminID, "admin@example.com")
	rec := doJSON(app, http.MethodDelete, "/documents/"+doc.ID.String(), token, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockDocService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Delete_Success(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	doc := testDocument(ownerID)

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	mockDocService.On("Delete", mock.Anything, doc.ID).Return(nil)

	token := generateTestToken(t, jwtSvc, ownerID, "owner@example.com")
	rec := doJSON(app, http.MethodDelete, "/documents/"+doc.ID.String(), token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockDocService.AssertExpectations(t)
}

func TestDocumentHandler_Duplicate_Success(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	readerID := uuid.New()
	doc := testDocument(ownerID)
	doc.IsPublic = true

	dup := testDocument(readerID)
	dup.Title = doc.Title + " (Copy)"

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	mockDocService.On("Duplicate", mock.Anything, doc, readerID).Return(dup, nil)

	token := generateTestToken(t, jwtSvc, readerID, "reader@example.com")
	rec := doJSON(app, http.MethodPost, "/documents/"+doc.ID.String()+"/duplicate", token, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.DocumentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Launch Plan (Copy)", response.Title)
	assert.Equal(t, readerID, response.OwnerID)

	mockDocService.AssertExpectations(t)
}

func TestDocumentHandler_Duplicate_NoReadAccess(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	ownerID := uuid.New()
	strangerID := uuid.New()
	doc := testDocument(ownerID)

	mockDocService.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)

	token := generateTestToken(t, jwtSvc, strangerID, "stranger@example.com")
	rec := doJSON(app, http.MethodPost, "/documents/"+doc.ID.String()+"/duplicate", token, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockDocService.AssertNotCalled(t, "Duplicate", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_List_Pagination(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	userID := uuid.New()
	docs := []models.Document{*testDocument(userID)}
	roles := []string{"owner"}

	mockDocService.On("List", mock.Anything, userID, 10, 10).Return(docs, roles, nil)

	token := generateTestToken(t, jwtSvc, userID, "user@example.com")
	rec := doJSON(app, http.MethodGet, "/documents?page=2&limit=10", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.DocumentListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Page)
	assert.Equal(t, 10, response.Limit)
	require.Len(t, response.Documents, 1)
	require.NotNil(t, response.Documents[0].UserPermission)
	assert.Equal(t, "owner", *response.Documents[0].UserPermission)

	mockDocService.AssertExpectations(t)
}

func TestDocumentHandler_ListShared(t *testing.T) {
	mockDocService, app, jwtSvc := setupDocumentTest(t)

	userID := uuid.New()
	ownerID := uuid.New()
	docs := []models.Document{*testDocument(ownerID)}
	perms := []models.Permission{models.PermissionEdit}

	mockDocService.On("ListShared", mock.Anything, userID).Return(docs, perms, nil)

	token := generateTestToken(t, jwtSvc, userID, "user@example.com")
	rec := doJSON(app, http.MethodGet, "/documents/shared", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Documents []dto.DocumentResponse `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Documents, 1)
	require.NotNil(t, response.Documents[0].UserPermission)
	assert.Equal(t, "edit", *response.Documents[0].UserPermission)
}
