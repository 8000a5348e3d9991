// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aitools-explorer/backend/internal/auth"
	"github.com/aitools-explorer/backend/internal/config"
	"github.com/aitools-explorer/backend/internal/database"
	"github.com/aitools-explorer/backend/internal/events"
	"github.com/aitools-explorer/backend/internal/mailer"
	"github.com/aitools-explorer/backend/internal/middleware"
	"github.com/aitools-explorer/backend/internal/notify"
	"github.com/aitools-explorer/backend/internal/ratelimit"
	"github.com/aitools-explorer/backend/internal/recommend"
	"github.com/aitools-explorer/backend/internal/sitemap"
	"github.com/aitools-explorer/backend/internal/trending"
)

// Server holds the wired dependencies behind the HTTP surface.
type Server struct {
	cfg           *config.Config
	db            *database.DB
	matcher       *recommend.Matcher
	trends        *trending.Aggregator
	sitemapGen    *sitemap.Generator
	notifier      *notify.Runner
	sender        mailer.Sender
	jwt           *auth.JWTManager
	bus           *events.Bus
	notifyLimiter ratelimit.Limiter
	emailLimiter  ratelimit.Limiter
}

// Deps are the collaborators a Server needs. All fields are required except
// JWT; without it the admin surface is not mounted.
type Deps struct {
	Config        *config.Config
	DB            *database.DB
	Matcher       *recommend.Matcher
	Trending      *trending.Aggregator
	Sitemap       *sitemap.Generator
	Notifier      *notify.Runner
	Sender        mailer.Sender
	JWT           *auth.JWTManager
	Bus           *events.Bus
	NotifyLimiter ratelimit.Limiter
	EmailLimiter  ratelimit.Limiter
}

// NewServer assembles the HTTP surface.
func NewServer(deps Deps) *Server {
	return &Server{
		cfg:           deps.Config,
		db:            deps.DB,
		matcher:       deps.Matcher,
		trends:        deps.Trending,
		sitemapGen:    deps.Sitemap,
		notifier:      deps.Notifier,
		sender:        deps.Sender,
		jwt:           deps.JWT,
		bus:           deps.Bus,
		notifyLimiter: deps.NotifyLimiter,
		emailLimiter:  deps.EmailLimiter,
	}
}

// Router builds the chi router: request-ID and metrics middleware, permissive
// CORS, a global per-IP limit, the public API, and the JWT-gated admin
// surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

	origins := s.cfg.Security.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !s.cfg.RateLimit.Disabled && s.cfg.RateLimit.Requests > 0 {
		window := s.cfg.RateLimit.Window
		if window <= 0 {
			window = time.Minute
		}
		r.Use(httprate.LimitByIP(s.cfg.RateLimit.Requests, window))
	}

	r.Get("/sitemap.xml", s.handleSitemap)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", s.handleHealthLive)
		r.Get("/health/ready", s.handleHealthReady)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/tools", s.handleListTools)
		r.Get("/tools/{id}", s.handleGetTool)
		r.Post("/tools/{id}/views", s.handleRecordView)
		r.Post("/tools/{id}/bookmarks", s.handleCreateBookmark)
		r.Delete("/tools/{id}/bookmarks", s.handleDeleteBookmark)
		r.Get("/tools/{id}/reviews", s.handleListReviews)
		r.Post("/tools/{id}/reviews", s.handleCreateReview)
		r.Get("/users/{userID}/bookmarks", s.handleListUserBookmarks)

		r.Get("/blog", s.handleListBlogPosts)
		r.Get("/blog/{slug}", s.handleGetBlogPost)

		r.Post("/submissions", s.handleCreateSubmission)
		r.Post("/contact", s.handleCreateContact)
		r.Post("/newsletter/subscribe", s.handleSubscribe)

		r.Post("/recommendations", s.handleRecommend)

		r.Get("/trending", s.handleTrending)
		r.Get("/trending/bookmarked", s.handleTrendingBookmarked)
		r.Get("/trending/top-rated", s.handleTrendingTopRated)
		r.Get("/trending/rising", s.handleTrendingRising)

		r.Post("/notifications/run", s.handleNotifyRun)
		r.Post("/email/send", s.handleEmailSend)

		if s.jwt != nil {
			r.Group(func(r chi.Router) {
				r.Use(s.jwt.Authenticate)
				r.Post("/tools", s.handleCreateTool)
				r.Put("/tools/{id}", s.handleUpdateTool)
				r.Delete("/tools/{id}", s.handleDeleteTool)
				r.Post("/blog", s.handleCreateBlogPost)
				r.Put("/blog/{id}", s.handleUpdateBlogPost)
				r.Delete("/blog/{id}", s.handleDeleteBlogPost)
				r.Get("/submissions", s.handleListSubmissions)
				r.Put("/submissions/{id}/status", s.handleUpdateSubmissionStatus)
				r.Get("/contact", s.handleListContacts)
			})
		}
	})

	return r
}
