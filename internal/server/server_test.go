package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/EATMove/CDT-sub001/internal/admin"
	"github.com/EATMove/CDT-sub001/internal/config"
	"github.com/EATMove/CDT-sub001/internal/database"
	"github.com/EATMove/CDT-sub001/internal/middleware"
	"github.com/EATMove/CDT-sub001/internal/mobile"
	"github.com/EATMove/CDT-sub001/internal/repository"
	"github.com/EATMove/CDT-sub001/internal/session"
	"github.com/EATMove/CDT-sub001/internal/sso"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.Default()
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "s3cret"
	cfg.Admin.SessionSecret = "session-secret"
	cfg.Mobile.JWTSecret = "jwt-secret"
	cfg.Database.DSN = "file::memory:?_pragma=foreign_keys(1)"

	var s *Server
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(
			zap.NewNop,
			func() clockwork.Clock { return clockwork.NewRealClock() },
			database.New,
			repository.NewSQL,
			middleware.NewSessionManager,
			sso.New,
			New,
		),
		admin.Module,
		mobile.Module,
		fx.Populate(&s),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	return s.Handler()
}

func TestHealth(t *testing.T) {
	assert := assert.New(t)

	h := newTestServer(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(http.StatusOK, rr.Code)
	assert.JSONEq(`{"success":true,"data":{"status":"ok"}}`, rr.Body.String())
	assert.NotEmpty(rr.Header().Get("Content-Type"))
}

func TestRouting(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	h := newTestServer(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/chapters", nil))
	assert.Equal(http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/mobile/chapters", nil))
	assert.Equal(http.StatusUnauthorized, rr.Code)

	// sso is disabled by default
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/saml/metadata", nil))
	assert.Equal(http.StatusNotFound, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/login", strings.NewReader(`{"username":"admin","password":"s3cret"}`))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(http.StatusOK, rr.Code)

	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	require.NotNil(cookie)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/chapters", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(http.StatusOK, rr.Code)

	var env map[string]any
	require.NoError(json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(true, env["success"])
}

func TestCORS_preflight(t *testing.T) {
	assert := assert.New(t)

	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal("http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal("true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Empty(rr.Header().Get("Access-Control-Allow-Origin"))
}
