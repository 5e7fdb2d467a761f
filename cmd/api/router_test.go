package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockContactService struct {
	mock.Mock
}

func (m *mockContactService) SubmitContactForm(ctx context.Context, req *models.ContactRequest) (*models.ContactSubmission, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactSubmission), args.Error(1)
}

func (m *mockContactService) ListSubmissions(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactSubmission, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContactSubmission), args.Error(1)
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testRouterConfig() *config.Config {
	return &config.Config{
		Server:        config.ServerConfig{AppEnv: "test", AllowedOrigins: []string{"*"}},
		Observability: config.ObservabilityConfig{ServiceName: "mbsnyc-api"},
	}
}

func buildRouter(t *testing.T, cfg *config.Config, service *mockContactService, tm *jwt.TokenManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return newRouter(ctx, routerDeps{cfg: cfg, contactService: service, db: okPinger{}, tokenManager: tm})
}

func TestRouter_APIRoot(t *testing.T) {
	router := buildRouter(t, testRouterConfig(), new(mockContactService), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"MBS NYC API"}`, w.Body.String())
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRouter_SubmitContact(t *testing.T) {
	service := new(mockContactService)
	service.On("SubmitContactForm", mock.Anything, mock.Anything).
		Return(&models.ContactSubmission{ID: "abc", Name: "Jane Doe"}, nil).Once()
	router := buildRouter(t, testRouterConfig(), service, nil)

	req := httptest.NewRequest("POST", "/api/contact",
		bytes.NewBufferString(`{"name":"Jane Doe","email":"jane@acme.com","company":"Acme","message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://mbsnyc.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	service.AssertExpectations(t)
}

func TestRouter_SubmitContact_BodyTooLarge(t *testing.T) {
	router := buildRouter(t, testRouterConfig(), new(mockContactService), nil)

	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(strings.Repeat("x", 200<<10)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRouter_ListRequiresAdminTokenWhenConfigured(t *testing.T) {
	service := new(mockContactService)
	service.On("ListSubmissions", mock.Anything, mock.Anything).Return([]*models.ContactSubmission{}, nil).Once()
	tm := jwt.NewTokenManager("secret", "mbsnyc-api", 1)
	router := buildRouter(t, testRouterConfig(), service, tm)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/contact", http.NoBody))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tm.GenerateToken("ops")
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/api/contact", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	service.AssertExpectations(t)
}

func TestRouter_HealthcheckAndMetrics(t *testing.T) {
	router := buildRouter(t, testRouterConfig(), new(mockContactService), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/healthcheck", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/metrics", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_server_request_total")
}

func TestCorsConfig_ExplicitOrigins(t *testing.T) {
	cfg := testRouterConfig()
	cfg.Server.AllowedOrigins = []string{"https://mbsnyc.com"}
	cfg.Server.AppEnv = "development"

	corsCfg := corsConfig(cfg)

	assert.False(t, corsCfg.AllowAllOrigins)
	assert.True(t, corsCfg.AllowCredentials)
	assert.Equal(t, []string{"https://mbsnyc.com", "http://localhost:3000", "http://127.0.0.1:3000"}, corsCfg.AllowOrigins)
}
