// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Bibliotech HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the snapshot backend (local files, or Redis when configured).
//  4. Seed library and profile state from their snapshots (fail-soft).
//  5. Wire the optional Gemini metadata lookup.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/bibliotech/internal/api"
	"github.com/taibuivan/bibliotech/internal/enrich"
	"github.com/taibuivan/bibliotech/internal/library"
	"github.com/taibuivan/bibliotech/internal/platform/config"
	"github.com/taibuivan/bibliotech/internal/platform/constants"
	redisstore "github.com/taibuivan/bibliotech/internal/platform/redis"
	"github.com/taibuivan/bibliotech/internal/platform/snapshot"
	"github.com/taibuivan/bibliotech/internal/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "bibliotech"))
	slog.SetDefault(log)

	log.Info("[Bibliotech] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "bibliotech"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Snapshot Backend ───────────────────────────────────────────────
	var snapshots snapshot.Store
	if cfg.UseRedisSnapshots() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		snapshots = snapshot.NewRedisStore(rdb)
	} else {
		snapshots, err = snapshot.NewFileStore(cfg.DataDir)
		must(log, err, "open snapshot data directory")
		log.Info("file snapshots enabled", slog.String("dir", cfg.DataDir))
	}

	// ── 4. State Seeding ──────────────────────────────────────────────────
	profileService, err := profile.NewService(
		startupCtx,
		profile.NewSnapshotRepository(snapshots, log),
		log,
	)
	must(log, err, "seed profile state")

	libraryService, err := library.NewService(
		startupCtx,
		library.NewSnapshotRepository(snapshots, log),
		log,
	)
	must(log, err, "seed library state")

	// ── 5. Metadata Enrichment (optional) ─────────────────────────────────
	var lookup enrich.Lookup
	if cfg.EnrichmentEnabled() {
		lookup = enrich.NewGeminiLookup(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Info("metadata_enrichment_enabled", slog.String("model", cfg.GeminiModel))
	} else {
		log.Info("metadata_enrichment_disabled")
	}
	enrichService := enrich.NewService(lookup, log)

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckSnapshots: func() error {
			// ErrNotFound means "first run", which is a healthy backend.
			_, err := snapshots.Read(context.Background(), constants.SnapshotKeyLibrary)
			if err != nil && !errors.Is(err, snapshot.ErrNotFound) {
				return err
			}
			return nil
		},
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Library:   library.NewHandler(libraryService, profileService),
		Profile:   profile.NewHandler(profileService),
		Metadata:  enrich.NewHandler(enrichService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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
