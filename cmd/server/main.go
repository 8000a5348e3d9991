// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Command server runs the AI Tools Explorer backend: tool catalog, blog,
// engagement tracking, recommendation matcher, trending aggregator, sitemap,
// and the notification/email functions, all behind one HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aitools-explorer/backend/internal/api"
	"github.com/aitools-explorer/backend/internal/auth"
	"github.com/aitools-explorer/backend/internal/config"
	"github.com/aitools-explorer/backend/internal/database"
	"github.com/aitools-explorer/backend/internal/events"
	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/mailer"
	"github.com/aitools-explorer/backend/internal/notify"
	"github.com/aitools-explorer/backend/internal/ratelimit"
	"github.com/aitools-explorer/backend/internal/reasoning"
	"github.com/aitools-explorer/backend/internal/recommend"
	"github.com/aitools-explorer/backend/internal/sitemap"
	"github.com/aitools-explorer/backend/internal/supervisor"
	"github.com/aitools-explorer/backend/internal/trending"
)

// Per-IP budgets for the function endpoints.
const (
	notifyRunsPerMinute = 2
	emailSendsPerMinute = 5
	functionLimitWindow = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting AI Tools Explorer backend")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	notifyLimiter, emailLimiter := buildLimiters(&cfg.RateLimit)
	defer func() {
		_ = notifyLimiter.Close()
		_ = emailLimiter.Close()
	}()

	var sender mailer.Sender
	if cfg.Mail.Enabled {
		sender = mailer.NewSMTPMailer(&cfg.Mail)
		logging.Info().Str("host", cfg.Mail.Host).Msg("SMTP mail delivery enabled")
	} else {
		sender = mailer.NoopMailer{}
		logging.Warn().Msg("Mail delivery disabled; emails will be logged and dropped")
	}

	reasoningClient := reasoning.NewClient(&cfg.Reasoning)
	if !reasoningClient.Configured() {
		logging.Warn().Msg("Reasoning service not configured; recommendations use the heuristic fallback")
	}

	var jwtManager *auth.JWTManager
	if cfg.Security.JWTSecret != "" {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
		logging.Info().Msg("Admin authentication enabled")
	} else {
		logging.Warn().Msg("No JWT secret configured; admin surface is disabled")
	}

	bus := events.NewBus(events.NewLoggerAdapter())
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	server := api.NewServer(api.Deps{
		Config:        cfg,
		DB:            db,
		Matcher:       recommend.NewMatcher(db, reasoningClient),
		Trending:      trending.NewAggregator(db),
		Sitemap:       sitemap.NewGenerator(db, cfg.Sitemap.BaseURL),
		Notifier:      notify.NewRunner(db, sender, cfg.Sitemap.BaseURL, cfg.Notifications.DefaultHoursBack),
		Sender:        sender,
		JWT:           jwtManager,
		Bus:           bus,
		NotifyLimiter: notifyLimiter,
		EmailLimiter:  emailLimiter,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddEventService(events.NewConsumer(bus, db))
	tree.AddAPIService(supervisor.NewHTTPServerService(httpServer, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", httpServer.Addr).Msg("Supervisor tree starting")
	errCh := tree.ServeBackground(ctx)
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("Supervisor tree failed")
	}
	logging.Info().Msg("Shutdown complete")
}

// buildLimiters selects the rate-limit store for the function endpoints. The
// badger store keeps counters across restarts; memory is best-effort.
func buildLimiters(cfg *config.RateLimitConfig) (notifyLimiter, emailLimiter ratelimit.Limiter) {
	if cfg.Store == "badger" {
		// Each limiter gets its own directory; badger takes an exclusive
		// lock per store.
		nl, err := ratelimit.NewBadgerLimiter(filepath.Join(cfg.StorePath, "notify"), notifyRunsPerMinute, functionLimitWindow)
		if err == nil {
			var el ratelimit.Limiter
			el, err = ratelimit.NewBadgerLimiter(filepath.Join(cfg.StorePath, "email"), emailSendsPerMinute, functionLimitWindow)
			if err == nil {
				logging.Info().Str("path", cfg.StorePath).Msg("Durable rate-limit store enabled")
				return nl, el
			}
			_ = nl.Close()
		}
		logging.Error().Err(err).Msg("Failed to open badger rate-limit store, falling back to memory")
	}
	return ratelimit.NewMemoryLimiter(notifyRunsPerMinute, functionLimitWindow),
		ratelimit.NewMemoryLimiter(emailSendsPerMinute, functionLimitWindow)
}
