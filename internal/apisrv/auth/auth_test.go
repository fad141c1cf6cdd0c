package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jekabolt/retail-dashboard/internal/auth/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(&Config{})
	assert.Error(t, err)
	_, err = New(nil)
	assert.Error(t, err)
	_, err = New(&Config{JWTSecret: "s", JWTTTL: "forever"})
	assert.Error(t, err)

	s, err := New(&Config{JWTSecret: "s"})
	require.NoError(t, err)
	assert.Equal(t, defaultTTL, s.jwtTTL)
}

func TestWithAuth(t *testing.T) {
	s, err := New(&Config{JWTSecret: "secret", JWTTTL: "1h"})
	require.NoError(t, err)

	h := s.WithAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/orders", nil)
		if header != "" {
			req.Header.Set(AuthHeaderKey, header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	token, err := s.IssueToken("ops")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, call("Bearer "+token))

	assert.Equal(t, http.StatusUnauthorized, call(""))
	assert.Equal(t, http.StatusUnauthorized, call("Bearer garbage"))

	foreign, err := jwt.NewToken(jwtauth.New("HS256", []byte("other"), nil), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer "+foreign))
}
