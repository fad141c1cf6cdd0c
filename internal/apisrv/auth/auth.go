// Package auth guards the admin API with HS256 bearer tokens.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jekabolt/retail-dashboard/internal/auth/jwt"
)

const (
	// AuthHeaderKey is header key to match auth token
	AuthHeaderKey = "Authorization"
	defaultTTL    = 24 * time.Hour
)

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	JWTTTL    string `mapstructure:"jwt_ttl"`
}

// Server verifies admin tokens and issues them for operators.
type Server struct {
	JwtAuth *jwtauth.JWTAuth
	jwtTTL  time.Duration
}

// New creates a new auth server.
func New(c *Config) (*Server, error) {
	if c == nil || c.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	ttl := defaultTTL
	if c.JWTTTL != "" {
		var err error
		ttl, err = time.ParseDuration(c.JWTTTL)
		if err != nil {
			return nil, fmt.Errorf("bad jwt ttl %q: %w", c.JWTTTL, err)
		}
	}
	return &Server{
		JwtAuth: jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:  ttl,
	}, nil
}

// IssueToken returns a signed token for subject valid for the configured ttl.
func (s *Server) IssueToken(subject string) (string, error) {
	return jwt.NewTokenWithSubject(s.JwtAuth, s.jwtTTL, subject)
}

// WithAuth middleware checks if the user is authenticated.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get(AuthHeaderKey), "Bearer ")
		sub, err := jwt.VerifyToken(s.JwtAuth, token)
		if err != nil {
			slog.Default().WarnContext(r.Context(), "unauthenticated admin request",
				slog.String("path", r.URL.Path),
				slog.String("err", err.Error()),
			)
			http.Error(w, fmt.Sprintf("invalid token %v", err.Error()), http.StatusUnauthorized)
			return
		}
		if sub != "" {
			slog.Default().DebugContext(r.Context(), "admin request",
				slog.String("sub", sub),
				slog.String("path", r.URL.Path),
			)
		}
		next.ServeHTTP(w, r)
	})
}
