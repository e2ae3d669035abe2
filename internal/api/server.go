// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/yomira-press/internal/content/comment"
	"github.com/taibuivan/yomira-press/internal/content/post"
	"github.com/taibuivan/yomira-press/internal/content/tag"
	"github.com/taibuivan/yomira-press/internal/platform/config"
	"github.com/taibuivan/yomira-press/internal/platform/constants"
	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	"github.com/taibuivan/yomira-press/internal/users/account"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets. A nil handler is
// not mounted.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 only when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, tokens and passwords.
	Auth *auth.Handler

	// Accounts is the admin-only account administration.
	Accounts *account.Handler

	Posts    *post.Handler
	Comments *comment.Handler
	Tags     *tag.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Authentication is not global: each handler applies RequireAuth to the
// routes that need an identity.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst).Middleware)
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	if h.Liveness != nil {
		r.Get("/health", h.Liveness)
	}
	if h.Readiness != nil {
		r.Get("/ready", h.Readiness)
	}

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		if h.Auth != nil {
			credentials := middleware.NewRateLimiter(context, constants.AuthRateLimitRPS, constants.AuthRateLimitBurst)
			api.With(credentials.Middleware).Mount("/auth", h.Auth.Routes())
		}
		if h.Accounts != nil {
			api.Mount("/users", h.Accounts.Routes())
		}
		if h.Posts != nil {
			api.Route("/posts", func(posts chi.Router) {
				h.Posts.RegisterRoutes(posts)
				if h.Comments != nil {
					posts.Route("/{id}/comments", h.Comments.RegisterPostRoutes)
				}
			})
		}
		if h.Comments != nil {
			api.Route("/comments", h.Comments.RegisterRoutes)
		}
		if h.Tags != nil {
			api.Route("/tags", h.Tags.RegisterRoutes)
		}
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
