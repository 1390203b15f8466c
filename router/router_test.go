package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AdviTravel/advitravel-backend/config"
	"github.com/AdviTravel/advitravel-backend/handlers"
	"github.com/AdviTravel/advitravel-backend/logger"
	"github.com/AdviTravel/advitravel-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubSender struct{}

func (s *stubSender) Send(ctx context.Context, msg *types.OutboundMessage) (*types.DeliveryResult, error) {
	return &types.DeliveryResult{Delivered: true, StatusCode: 200, ID: "stub_id"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Environment:    config.EnvDevelopment,
			AllowedOrigins: []string{"*"},
			Version:        "test",
		},
		Email: config.EmailConfig{
			FromAddress:    "noreply@advitravel.com",
			FromName:       "Percy — AdviTravel",
			ToAddress:      "investors@advitravel.com",
			ResendAPIKey:   "re_test",
			TimeoutSeconds: 12,
		},
		Form: config.FormConfig{RequireWorkEmail: true},
	}
}

func setupTestRouter(cfg *config.Config) *gin.Engine {
	registerHandler := handlers.NewRegisterHandlerWithRegistry(
		&cfg.Email, &cfg.Form, &stubSender{}, prometheus.NewRegistry())

	return SetupRouter(Dependencies{
		Config:          cfg,
		RegisterHandler: registerHandler,
		HealthHandler:   handlers.NewHealthHandler(cfg),
		Logger:          logger.GetLogger(),
	})
}

func TestRegisterRouteWired(t *testing.T) {
	r := setupTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"name":"Jane Doe","email":"jane@fund.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRegisterRouteMethodNotAllowed(t *testing.T) {
	r := setupTestRouter(testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/register", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Method not allowed"}`, w.Body.String())
}

func TestHealthRoutes(t *testing.T) {
	r := setupTestRouter(testConfig())

	for _, path := range []string{"/health", "/health/liveness", "/health/readiness"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	r := setupTestRouter(testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRouteWithoutStaticDir(t *testing.T) {
	r := setupTestRouter(testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Not found"}`, w.Body.String())
}

func TestStaticServingWithSPAFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>AdviTravel</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('hi')"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.Server.StaticDir = dir
	r := setupTestRouter(cfg)

	t.Run("existing asset", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app.js", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "console.log")
	})

	t.Run("client route falls back to index", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/investors/deck", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "AdviTravel")
	})

	t.Run("non-GET unknown path stays JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/investors/deck", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"Not found"}`, w.Body.String())
	})
}
