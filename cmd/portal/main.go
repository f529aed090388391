// Copyright (c) 2026 OpsDesk. All rights reserved.

// Command portal is the entry point for the OpsDesk portal gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env honored in dev).
//  3. Connect the configured persisted-auth-record store backend.
//  4. Wire the session manager, cookie codec, and provider.
//  5. Wire the upstream client and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/opsdesk/portal/internal/account"
	"github.com/opsdesk/portal/internal/api"
	"github.com/opsdesk/portal/internal/platform/config"
	"github.com/opsdesk/portal/internal/platform/constants"
	"github.com/opsdesk/portal/internal/platform/migration"
	pgstore "github.com/opsdesk/portal/internal/platform/postgres"
	redisstore "github.com/opsdesk/portal/internal/platform/redis"
	"github.com/opsdesk/portal/internal/platform/sec"
	"github.com/opsdesk/portal/internal/portal"
	"github.com/opsdesk/portal/internal/session"
	"github.com/opsdesk/portal/internal/upstream"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[OpsDesk] portal_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env is a development convenience; its absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("session_store", cfg.SessionStore),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Record Store Backend ───────────────────────────────────────────
	var recordStore session.RecordStore
	checkRecordStore := func() error { return nil }

	switch cfg.SessionStore {
	case config.StoreRedis:
		rdb, rerr := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, rerr, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		recordStore = session.NewRedisStore(rdb)
		checkRecordStore = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}

	case config.StorePostgres:
		pool, perr := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, perr, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		recordStore = session.NewPostgresStore(pool)
		checkRecordStore = func() error {
			return pgstore.Ping(context.Background(), pool)
		}

	case config.StoreMemory:
		log.Warn("memory_record_store_selected",
			slog.String("note", "auth records will not survive a restart"),
		)
		recordStore = session.NewMemoryStore()
	}

	// ── 4. Session Layer ──────────────────────────────────────────────────
	codec, err := sec.NewCookieCodec(cfg.SessionCookieSecret, constants.SessionCookieIssuer, constants.SessionTTL)
	must(log, err, "initialize cookie codec")

	sessionManager := session.NewManager(recordStore, constants.SessionTTL, log)
	sessionProvider := session.NewProvider(sessionManager, codec, cfg.IsProduction(), log)

	// ── 5. Upstream & Handlers ────────────────────────────────────────────
	apiClient := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckRecordStore: checkRecordStore,
		CheckUpstream: func() error {
			_, uerr := apiClient.ListDepartments(context.Background())
			return uerr
		},
	}, log)

	accountService := account.NewService(apiClient, log)
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Account:   account.NewHandler(accountService),
		Portal:    portal.NewHandler(apiClient, log),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, sessionProvider, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
