// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/aitools-explorer/backend/internal/auth"
	"github.com/aitools-explorer/backend/internal/config"
	"github.com/aitools-explorer/backend/internal/database"
	"github.com/aitools-explorer/backend/internal/events"
	"github.com/aitools-explorer/backend/internal/mailer"
	"github.com/aitools-explorer/backend/internal/models"
	"github.com/aitools-explorer/backend/internal/notify"
	"github.com/aitools-explorer/backend/internal/ratelimit"
	"github.com/aitools-explorer/backend/internal/recommend"
	"github.com/aitools-explorer/backend/internal/sitemap"
	"github.com/aitools-explorer/backend/internal/trending"
)

// fakeCompleter stands in for the reasoning client.
type fakeCompleter struct {
	configured bool
	reply      string
	err        error
}

func (f *fakeCompleter) Configured() bool { return f.configured }

func (f *fakeCompleter) Complete(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

// fakeSender records sent messages.
type fakeSender struct {
	mu   sync.Mutex
	sent []*mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) messages() []*mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*mailer.Message(nil), f.sent...)
}

type testEnv struct {
	server  *Server
	router  http.Handler
	db      *database.DB
	sender  *fakeSender
	cfg     *config.Config
	adminPw string
}

func newTestEnv(t *testing.T, completer recommend.Completer) *testEnv {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		Security: config.SecurityConfig{
			JWTSecret:      strings.Repeat("s", 32),
			SessionTimeout: time.Hour,
			AdminUsername:  "admin",
			AdminPassword:  "swordfish",
		},
		API:           config.APIConfig{DefaultPageSize: 20, MaxPageSize: 100},
		RateLimit:     config.RateLimitConfig{Disabled: true},
		Mail:          config.MailConfig{AdminEmail: "admin@example.com"},
		Sitemap:       config.SitemapConfig{BaseURL: "https://example.com"},
		Notifications: config.NotificationsConfig{DefaultHoursBack: 24},
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("failed to build jwt manager: %v", err)
	}

	if completer == nil {
		completer = &fakeCompleter{configured: false}
	}
	sender := &fakeSender{}

	server := NewServer(Deps{
		Config:        cfg,
		DB:            db,
		Matcher:       recommend.NewMatcher(db, completer),
		Trending:      trending.NewAggregator(db),
		Sitemap:       sitemap.NewGenerator(db, cfg.Sitemap.BaseURL),
		Notifier:      notify.NewRunner(db, sender, cfg.Sitemap.BaseURL, 24),
		Sender:        sender,
		JWT:           jwtManager,
		Bus:           events.NewBus(nil),
		NotifyLimiter: ratelimit.NewMemoryLimiter(2, time.Minute),
		EmailLimiter:  ratelimit.NewMemoryLimiter(5, time.Minute),
	})

	return &testEnv{
		server:  server,
		router:  server.Router(),
		db:      db,
		sender:  sender,
		cfg:     cfg,
		adminPw: "swordfish",
	}
}

// do performs a request against the router and decodes the envelope.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, *APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if rec.Code == http.StatusNoContent || rec.Body.Len() == 0 {
		return rec, nil
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return rec, nil
	}
	var envelope APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v\n%s", err, rec.Body.String())
	}
	return rec, &envelope
}

// login returns an admin token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	rec, envelope := e.do(t, http.MethodPost, "/api/v1/auth/login",
		LoginRequest{Username: "admin", Password: e.adminPw}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	data := envelope.Data.(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("login response carried no token")
	}
	return token
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

// seedTool inserts a tool directly through the store.
func seedTool(t *testing.T, db *database.DB, id string, mutate func(*models.Tool)) *models.Tool {
	t.Helper()

	tool := &models.Tool{
		ID:          id,
		Name:        "Tool " + id,
		Description: "Test tool " + id,
		Category:    models.CategoryWriting,
		Pricing:     models.PricingFree,
		Rating:      f64(4.0),
	}
	if mutate != nil {
		mutate(tool)
	}
	if err := db.CreateTool(context.Background(), tool); err != nil {
		t.Fatalf("failed to seed tool %s: %v", id, err)
	}
	return tool
}
