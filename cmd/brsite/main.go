// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the site content server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"brsite/internal/cache"
	"brsite/internal/config"
	"brsite/internal/content"
	"brsite/internal/database"
	"brsite/internal/handlers"
	"brsite/internal/metrics"
	"brsite/internal/middleware"
	"brsite/internal/remote"
	"brsite/internal/router"
	"brsite/internal/session"
	"brsite/internal/storage"
	"brsite/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	if !cfg.IsDev() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"backend", cfg.ContentBackend,
	)

	// Object storage for uploaded images (optional; uploads fail without it).
	blob, err := storage.New(blobConfig(cfg))
	if err != nil {
		slog.Error("failed to initialize blob storage", "error", err)
		os.Exit(1)
	}
	if blob == nil {
		slog.Warn("blob storage not configured, image uploads disabled")
	} else {
		slog.Info("blob storage configured", "driver", cfg.BlobDriver)
	}

	// Content backend. When PostgreSQL cannot be reached the site keeps
	// serving the built-in defaults and the admin signs in with the
	// configured bootstrap account.
	var (
		client    remote.Client
		users     handlers.UserStore
		cacheLog  handlers.CacheLogger
		revisions handlers.RevisionReader
	)
	switch cfg.ContentBackend {
	case config.BackendPostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			slog.Error("database unavailable, serving fallback content", "error", err)
			client = remote.NewFallback(blob)
			users = mustMemoryUsers(cfg)
			break
		}
		defer db.Close()
		client = store.NewRemote(db, blob)
		users = store.NewUserStore(db)
		cacheLog = store.NewCacheLogStore(db)
		revisions = store.NewRevisionStore(db)
	case config.BackendMemory:
		slog.Warn("using in-memory content backend, changes are lost on restart")
		client = remote.NewMemory(blob)
		users = mustMemoryUsers(cfg)
	}
	client = metrics.InstrumentClient(client)

	contentStore := content.NewStore(client, content.MustDefaultDocument())
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := contentStore.Load(loadCtx); err != nil {
		slog.Error("initial content load failed, serving defaults", "error", err)
	}
	cancelLoad()

	// Valkey backs sessions and the response cache. Without it the public
	// API still works uncached and admin sign-in is disabled.
	var (
		valkeyClient  *redis.Client
		sessionStore  *session.Store
		responseCache *cache.ResponseCache
	)
	valkeyClient, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, sessions and response cache disabled", "addr", cfg.ValkeyAddr(), "error", err)
	} else {
		defer valkeyClient.Close()
		sessionStore = session.NewStore(valkeyClient, cfg.CookieSecure)
		responseCache = cache.NewResponseCache(valkeyClient, cfg.ResponseCacheTTL)
	}

	// Prometheus registry with runtime collectors and our own.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(reg)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	defer loginLimiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Sessions:      sessionStore,
		Admin:         handlers.NewAdmin(contentStore, responseCache, cacheLog, revisions),
		Auth:          handlers.NewAuth(sessionStore, users),
		Public:        handlers.NewPublic(contentStore, responseCache),
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		LoginLimiter:  loginLimiter,
		SecureCookies: cfg.CookieSecure,
	})

	// ReadTimeout leaves room for 10 MB image uploads.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return
	}

	slog.Info("server stopped gracefully")
}

// openDatabase connects, migrates and seeds the bootstrap admin.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := database.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// mustMemoryUsers returns the in-memory bootstrap admin.
func mustMemoryUsers(cfg *config.Config) *store.MemoryUsers {
	users, err := store.NewMemoryUsers(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		slog.Error("failed to create bootstrap admin", "error", err)
		os.Exit(1)
	}
	return users
}

// blobConfig maps the configured driver to its storage settings.
func blobConfig(cfg *config.Config) storage.Config {
	if cfg.BlobDriver == "minio" {
		return storage.Config{
			Driver:    "minio",
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			PublicURL: cfg.MinIOPublicURL,
		}
	}
	return storage.Config{
		Driver:    "s3",
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
	}
}
