/**
 * @description
 * This is the main entry point for the subscription server.
 * It loads configuration, opens the backing resources through the lifecycle
 * manager, wires the repository, service and HTTP router together, and serves
 * requests until an OS signal asks it to shut down gracefully.
 */
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

	"github.com/flowlytix/subscription-service/internal/api"
	"github.com/flowlytix/subscription-service/internal/app"
	"github.com/flowlytix/subscription-service/internal/config"
	"github.com/flowlytix/subscription-service/internal/logging"
	"github.com/flowlytix/subscription-service/internal/ratelimit"
	"github.com/flowlytix/subscription-service/internal/store"
)

func main() {
	// A .env file is optional; real deployments inject the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.EffectiveLogLevel(), os.Stdout)
	slog.SetDefault(logger)
	logger.Info("starting application",
		"name", cfg.AppName,
		"version", cfg.Version,
		"environment", cfg.Environment,
		"profile", cfg.APIProfile,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lifecycle := app.NewLifecycle(logger)
	poolSettings := store.DefaultPoolSettings()
	poolSettings.MaxConns = cfg.DBMaxConns
	poolSettings.MinConns = cfg.DBMinConns
	lifecycle.Require(store.NewDatabase(cfg.DatabaseURL, poolSettings))

	var cache *store.Redis
	if cfg.RateLimitEnabled() && cfg.RedisURL != "" {
		cache = store.NewRedis(cfg.RedisURL)
		lifecycle.Attach(cache)
	}

	if err := lifecycle.Start(ctx); err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	repository := store.NewSubscriptionRepository(cfg.MockSubscriptionCount)
	service := app.NewService(repository, app.Info{Version: cfg.Version, Environment: cfg.Environment}, logger)
	handler := api.NewHandler(service, api.ServiceInfo{
		Name:        cfg.AppName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
		Production:  cfg.IsProduction(),
	}, lifecycle, logger)
	router := api.NewRouter(handler, api.RouterOptions{
		Profile:           cfg.APIProfile,
		APIPrefix:         cfg.APIV1Prefix,
		AllowedOrigins:    cfg.Origins(),
		Limiter:           newLimiter(cfg, cache, logger),
		Logger:            logger,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, gracefully shutting down")
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	lifecycle.Stop(shutdownCtx)

	logger.Info("server stopped")
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}

// newLimiter prefers the shared Redis budget and falls back to a per-process
// window when Redis is not configured or could not be reached.
func newLimiter(cfg config.Config, cache *store.Redis, logger *slog.Logger) ratelimit.Limiter {
	if !cfg.RateLimitEnabled() {
		logger.Info("rate limiting disabled")
		return nil
	}
	if cache != nil {
		if client := cache.Client(); client != nil {
			logger.Info("using redis rate limiter", "limit_per_minute", cfg.RateLimitPerMinute)
			return ratelimit.NewRedis(client, cfg.RedisRateLimitPrefix, cfg.RateLimitPerMinute, time.Minute)
		}
	}
	logger.Info("using in-memory rate limiter", "limit_per_minute", cfg.RateLimitPerMinute)
	return ratelimit.NewFixedWindow(cfg.RateLimitPerMinute, time.Minute)
}
