package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/jekabolt/retail-dashboard/internal/apisrv/admin"
	"github.com/jekabolt/retail-dashboard/internal/apisrv/auth"
	"github.com/jekabolt/retail-dashboard/internal/ratelimit"
	"github.com/jekabolt/retail-dashboard/log"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// RequestTimeout bounds the handling of a single request, e.g. "60s".
	RequestTimeout string `mapstructure:"request_timeout"`
	// AdminRateLimit is the number of admin requests allowed per client IP per minute. 0 disables it.
	AdminRateLimit int `mapstructure:"admin_rate_limit"`
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the http server
type Server struct {
	hs      *http.Server
	c       *Config
	limiter *ratelimit.Limiter
	done    chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	s := &Server{
		c:    config,
		done: make(chan struct{}),
	}
	if config.AdminRateLimit > 0 {
		s.limiter = ratelimit.NewLimiter(time.Minute, config.AdminRateLimit)
	}
	return s
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) requestTimeout() time.Duration {
	if s.c.RequestTimeout == "" {
		return 60 * time.Second
	}
	d, err := time.ParseDuration(s.c.RequestTimeout)
	if err != nil || d <= 0 {
		slog.Default().Warn("bad request timeout, using default",
			slog.String("request_timeout", s.c.RequestTimeout),
		)
		return 60 * time.Second
	}
	return d
}

// Handler builds the router: health check, then the admin API behind auth.
func (s *Server) Handler(adminServer *admin.Server, authServer *auth.Server, store Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(log.RequestLogger(slog.Default()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				slog.Default().ErrorContext(r.Context(), "health check failed",
					slog.String("err", err.Error()),
				)
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, map[string]string{"status": "unavailable"})
				return
			}
		}
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	var adminHandler http.Handler = authServer.WithAuth(adminServer.Routes())
	if s.limiter != nil {
		adminHandler = s.limiter.Middleware(adminHandler)
	}
	r.Mount("/api/admin", adminHandler)
	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context, adminServer *admin.Server, authServer *auth.Server, store Pinger) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.Handler(adminServer, authServer, store),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if s.limiter != nil {
		go s.limiter.Run(ctx)
	}

	go func() {
		slog.Default().InfoContext(ctx, "retail-dashboard new listener",
			slog.String("addr", "http://"+listenerAddr),
		)
		err := s.hs.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}
	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}
