package handlers

import (
	"encoding/json"
	"net/http"
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

func setupTemplateTest(t *testing.T) (*testutil.MockTemplateService, http.Handler, *services.JWTService) {
	t.Helper()

	mockTemplateService := new(testutil.MockTemplateService)
	handler := NewTemplateHandler(mockTemplateService)
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Get("/templates", handler.Search)
	app.Get("/templates/:templateId", handler.Get)

	protected := app.Group("")
	protected.Use(middleware.Auth(jwtSvc))
	protected.Post("/templates", handler.Create)
	protected.Post("/templates/:templateId/use", handler.Use)

	return mockTemplateService, app, jwtSvc
}

func testTemplate() *models.PublicTemplate {
	return &models.PublicTemplate{
		ID:          uuid.New(),
		Name:        "Meeting Notes",
		Description: "agenda and actions",
		Content:     "# Meeting Notes\n",
		Category:    "work",
		IsPublic:    true,
		Tags:        []string{"meeting"},
		UsageCount:  3,
	}
}

func TestTemplateHandler_Search_Public(t *testing.T) {
	mockTemplateService, app, _ := setupTemplateTest(t)

	mockTemplateService.On("Search", mock.Anything, "meeting", "", 0).
		Return([]models.PublicTemplate{*testTemplate()}, nil)

	// No auth header: search is public.
	rec := doJSON(app, http.MethodGet, "/templates?q=meeting", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Templates []dto.TemplateSearchResult `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Templates, 1)
	assert.Equal(t, "Meeting Notes", response.Templates[0].Name)
	assert.Equal(t, 3, response.Templates[0].UsageCount)

	mockTemplateService.AssertExpectations(t)
}

func TestTemplateHandler_Get_NotFound(t *testing.T) {
	mockTemplateService, app, _ := setupTemplateTest(t)

	id := uuid.New()
	mockTemplateService.On("GetByID", mock.Anything, id).Return(nil, services.ErrTemplateNotFound)

	rec := doJSON(app, http.MethodGet, "/templates/"+id.String(), "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTemplateHandler_Create_RequiresAuth(t *testing.T) {
	_, app, _ := setupTemplateTest(t)

	rec := doJSON(app, http.MethodPost, "/templates", "", dto.CreateTemplateRequest{Name: "X"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTemplateHandler_Create_Success(t *testing.T) {
	mockTemplateService, app, jwtSvc := setupTemplateTest(t)

	userID := uuid.New()
	tpl := testTemplate()

	mockTemplateService.On("Create", mock.Anything, "Meeting Notes", "agenda and actions", "# Meeting Notes\n", "work", userID, []string{"meeting"}).
		Return(tpl, nil)

	token := generateTestToken(t, jwtSvc, userID, "author@example.com")
	rec := doJSON(app, http.MethodPost, "/templates", token, dto.CreateTemplateRequest{
		Name:        "Meeting Notes",
		Description: "agenda and actions",
		Content:     "# Meeting Notes\n",
		Category:    "work",
		Tags:        []string{"meeting"},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.TemplateDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, tpl.ID, response.ID)

	mockTemplateService.AssertExpectations(t)
}

func TestTemplateHandler_Use_Success(t *testing.T) {
	mockTemplateService, app, jwtSvc := setupTemplateTest(t)

	userID := uuid.New()
	tpl := testTemplate()
	tpl.UsageCount = 4

	mockTemplateService.On("Use", mock.Anything, tpl.ID).Return(tpl, nil)

	token := generateTestToken(t, jwtSvc, userID, "user@example.com")
	rec := doJSON(app, http.MethodPost, "/templates/"+tpl.ID.String()+"/use", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TemplateDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 4, response.UsageCount)
	assert.Equal(t, "# Meeting Notes\n", response.Content)
}
