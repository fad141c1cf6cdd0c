package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/apisrv/admin"
	"github.com/jekabolt/retail-dashboard/internal/apisrv/auth"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type emptyDashboard struct{}

func (emptyDashboard) GetOrdersDashboard(ctx context.Context, from, to time.Time) (*entity.OrdersDashboard, error) {
	return &entity.OrdersDashboard{}, nil
}

func newHandler(t *testing.T, ping error) (http.Handler, *auth.Server) {
	t.Helper()
	authServer, err := auth.New(&auth.Config{JWTSecret: "secret"})
	require.NoError(t, err)
	adminServer := admin.New(emptyDashboard{}, nil, nil, nil, nil, time.UTC)
	s := New(&Config{AllowedOrigins: []string{"https://admin.example.com"}})
	store := pingFunc(func(ctx context.Context) error { return ping })
	return s.Handler(adminServer, authServer, store), authServer
}

func TestHealthz(t *testing.T) {
	h, _ := newHandler(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	h, _ = newHandler(t, errors.New("down"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminRequiresToken(t *testing.T) {
	h, authServer := newHandler(t, nil)
	target := "/api/admin/dashboard/orders?from=2024-01-01&to=2024-01-31"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := authServer.IssueToken("ops")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestCORS(t *testing.T) {
	h, _ := newHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIsOriginAllowed(t *testing.T) {
	assert.True(t, isOriginAllowed("http://localhost:3000", nil))
	assert.True(t, isOriginAllowed("https://a.com", []string{"https://a.com"}))
	assert.False(t, isOriginAllowed("https://b.com", []string{"https://a.com"}))
}

func TestAdminRateLimit(t *testing.T) {
	authServer, err := auth.New(&auth.Config{JWTSecret: "secret"})
	require.NoError(t, err)
	adminServer := admin.New(emptyDashboard{}, nil, nil, nil, nil, time.UTC)
	h := New(&Config{AdminRateLimit: 1}).Handler(adminServer, authServer, nil)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/orders", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}
