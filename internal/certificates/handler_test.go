package certificates

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) Issue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IssueResult), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id string) (*CertificateInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CertificateInfo), args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func setupRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(service, zap.NewNop())
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)
	return router
}

func TestIssueEndpoint_Created(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("Issue", mock.Anything, IssueRequest{ID: "u1", Name: "Ana Silva", Grade: "A"}).
		Return(&IssueResult{Key: "u1.pdf", URL: "https://bucket/u1.pdf"}, nil)

	body := `{"id":"u1","name":"Ana Silva","grade":"A"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"message":"Certificate created"}`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestIssueEndpoint_MalformedBody(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"bad_input"`)
	assert.Contains(t, w.Body.String(), `"status":400`)
	mockService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestIssueEndpoint_MissingFields(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader(`{"id":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestIssueEndpoint_DependencyUnavailable(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("Issue", mock.Anything, mock.AnythingOfType("certificates.IssueRequest")).
		Return(nil, fmt.Errorf("%w: dynamo down", ErrDependencyUnavailable))

	body := `{"id":"u1","name":"Ana Silva","grade":"A"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"dependency_unavailable"`)
}

func TestIssueEndpoint_RenderFailure(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("Issue", mock.Anything, mock.AnythingOfType("certificates.IssueRequest")).
		Return(nil, fmt.Errorf("%w: browser crashed", ErrRenderFailure))

	body := `{"id":"u1","name":"Ana Silva","grade":"A"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"render_failure"`)
}

func TestGetEndpoint(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("Get", mock.Anything, "u1").Return(&CertificateInfo{
		Record: Record{ID: "u1", Name: "Ana Silva", Grade: "A"},
		PDFURL: "https://bucket/u1.pdf",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/certificates/u1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ana Silva"`)
	assert.Contains(t, w.Body.String(), `"pdf_url":"https://bucket/u1.pdf"`)
}

func TestGetEndpoint_NotFound(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("Get", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: missing", ErrNotFound))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/certificates/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)
}

func TestListEndpoint(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("List", mock.Anything).Return([]Record{
		{ID: "u1", Name: "Ana Silva", Grade: "A"},
		{ID: "u2", Name: "João Souza", Grade: "B"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/certificates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
	assert.Contains(t, w.Body.String(), `"id":"u2"`)
}
