package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tahakubilay/deneme/config"
	"github.com/tahakubilay/deneme/internal/api/handler"
	"github.com/tahakubilay/deneme/internal/service"
	"github.com/tahakubilay/deneme/pkg/jwt"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret-key-for-unit-testing-2026"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Server.CORS.AllowOrigins = []string{"http://localhost:3000"}
	cfg.Shift.CheckRateLimit = 10
	cfg.Shift.CheckRateWindow = time.Minute
	return cfg
}

func setupEngine(db Pinger) (*gin.Engine, *jwt.Manager) {
	cfg := testConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// 只验证路由与中间件：请求不会到达 service
	h := handler.NewHandler(&service.Service{}, time.UTC, zap.NewNop())
	return Setup(cfg, h, jwtMgr, nil, db, zap.NewNop()), jwtMgr
}

func TestHealth(t *testing.T) {
	engine, _ := setupEngine(fakePinger{})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	engine, _ = setupEngine(fakePinger{err: errors.New("connection refused")})
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine, _ := setupEngine(fakePinger{})
	paths := []struct{ method, path string }{
		{"GET", "/api/v1/auth/me"},
		{"GET", "/api/v1/shifts/my"},
		{"GET", "/api/v1/shifts/my/calendar.ics"},
		{"POST", "/api/v1/swaps"},
		{"POST", "/api/v1/cancellations"},
		{"PUT", "/api/v1/availability"},
		{"GET", "/api/v1/rules"},
		{"GET", "/api/v1/preferences"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestAdminRoutesRejectEmployees(t *testing.T) {
	engine, jwtMgr := setupEngine(fakePinger{})
	token, err := jwtMgr.GenerateAccessToken("user-1", "employee")
	require.NoError(t, err)

	paths := []struct{ method, path string }{
		{"GET", "/api/v1/shifts"},
		{"GET", "/api/v1/shifts/export"},
		{"POST", "/api/v1/shifts/plan"},
		{"GET", "/api/v1/shifts/abc/eligible-employees"},
		{"GET", "/api/v1/swaps/pending"},
		{"POST", "/api/v1/swaps/abc/resolve"},
		{"GET", "/api/v1/cancellations/pending"},
		{"POST", "/api/v1/cancellations/abc/resolve"},
		{"POST", "/api/v1/users"},
		{"POST", "/api/v1/users/import"},
		{"PUT", "/api/v1/branches/abc/hours"},
		{"POST", "/api/v1/availability/import"},
		{"GET", "/api/v1/preferences"},
		{"POST", "/api/v1/preferences"},
		{"PUT", "/api/v1/preferences/abc"},
		{"DELETE", "/api/v1/preferences/abc"},
		{"GET", "/api/v1/rules"},
		{"POST", "/api/v1/rules"},
		{"PUT", "/api/v1/rules/abc"},
		{"DELETE", "/api/v1/rules/abc"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(p.method, p.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", p.method, p.path)
	}
}
