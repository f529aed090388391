// Copyright (c) 2026 OpsDesk. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
portal handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/portal are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/opsdesk/portal/internal/account"
	"github.com/opsdesk/portal/internal/platform/config"
	"github.com/opsdesk/portal/internal/platform/constants"
	"github.com/opsdesk/portal/internal/platform/middleware"
	"github.com/opsdesk/portal/internal/portal"
	"github.com/opsdesk/portal/internal/session"
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

// Handlers groups all handler sets the portal mounts.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Account handles credential submissions (login, register, reset, logout).
	Account *account.Handler

	// Portal renders the navigable view surface, wildcard included.
	Portal *portal.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The session provider mounts after the platform chain and before every
// route except the health probes: probes must answer even when the record
// store is down, which is exactly when the provider would refuse requests.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, provider *session.Provider, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Portal Surface
	// Everything the shell can reach runs inside the session provider.
	r.Group(func(portalRouter chi.Router) {
		portalRouter.Use(provider.Handler)
		h.Account.Routes(portalRouter)
		h.Portal.Routes(portalRouter)
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

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// Router exposes the composed handler for end-to-end tests.
func (s *Server) Router() http.Handler {
	return s.router
}
