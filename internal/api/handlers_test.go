// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/aitools-explorer/backend/internal/models"
	"github.com/aitools-explorer/backend/internal/reasoning"
)

func TestListToolsFiltersAndPagination(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	seedTool(t, env.db, "alpha", func(tool *models.Tool) { tool.Category = models.CategoryCoding })
	seedTool(t, env.db, "beta", nil)
	seedTool(t, env.db, "gamma", nil)

	rec, envelope := env.do(t, http.MethodGet, "/api/v1/tools?category=coding", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	tools := envelope.Data.([]any)
	if len(tools) != 1 {
		t.Fatalf("expected 1 coding tool, got %d", len(tools))
	}
	if envelope.Meta == nil || envelope.Meta.Pagination == nil {
		t.Fatal("expected pagination metadata")
	}
	if envelope.Meta.Pagination.Total != 1 {
		t.Errorf("expected total 1, got %d", envelope.Meta.Pagination.Total)
	}

	rec, envelope = env.do(t, http.MethodGet, "/api/v1/tools?limit=2", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	p := envelope.Meta.Pagination
	if p.Total != 3 || p.Count != 2 || !p.HasMore {
		t.Errorf("unexpected pagination %+v", p)
	}

	rec, _ = env.do(t, http.MethodGet, "/api/v1/tools?category=bogus", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown category, got %d", rec.Code)
	}
}

func TestGetToolNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, envelope := env.do(t, http.MethodGet, "/api/v1/tools/missing", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if envelope.Success || envelope.Error == nil || envelope.Error.Code != ErrCodeNotFound {
		t.Errorf("unexpected error envelope %+v", envelope)
	}
}

func TestAdminToolCRUDRequiresAuth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	body := ToolRequest{
		Name: "New Tool", Description: "d", Category: "writing", Pricing: "free",
	}

	rec, _ := env.do(t, http.MethodPost, "/api/v1/tools", body, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token := env.login(t)
	rec, envelope := env.do(t, http.MethodPost, "/api/v1/tools", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := envelope.Data.(map[string]any)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("expected generated tool id")
	}

	body.Name = "Renamed"
	rec, _ = env.do(t, http.MethodPut, "/api/v1/tools/"+id, body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/tools/"+id, nil, token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", rec.Code)
	}

	rec, _ = env.do(t, http.MethodGet, "/api/v1/tools/"+id, nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/auth/login",
		LoginRequest{Username: "admin", Password: "wrong"}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestReviewValidationAndCreate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	seedTool(t, env.db, "alpha", nil)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/tools/alpha/reviews",
		ReviewRequest{UserID: "u1", Rating: 6}, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rating 6, got %d", rec.Code)
	}

	rec, _ = env.do(t, http.MethodPost, "/api/v1/tools/alpha/reviews",
		ReviewRequest{UserID: "u1", Rating: 5, Comment: "great"}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, envelope := env.do(t, http.MethodGet, "/api/v1/tools/alpha/reviews", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if reviews := envelope.Data.([]any); len(reviews) != 1 {
		t.Errorf("expected 1 review, got %d", len(reviews))
	}

	rec, _ = env.do(t, http.MethodPost, "/api/v1/tools/missing/reviews",
		ReviewRequest{UserID: "u1", Rating: 3}, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown tool, got %d", rec.Code)
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	seedTool(t, env.db, "alpha", nil)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/tools/alpha/bookmarks",
		BookmarkRequest{UserID: "u1"}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, envelope := env.do(t, http.MethodGet, "/api/v1/users/u1/bookmarks", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if tools := envelope.Data.([]any); len(tools) != 1 {
		t.Fatalf("expected 1 bookmarked tool, got %d", len(tools))
	}

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/tools/alpha/bookmarks", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without user_id, got %d", rec.Code)
	}

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/tools/alpha/bookmarks?user_id=u1", nil, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	_, envelope = env.do(t, http.MethodGet, "/api/v1/users/u1/bookmarks", nil, "")
	if tools := envelope.Data.([]any); len(tools) != 0 {
		t.Errorf("expected no bookmarks after delete, got %d", len(tools))
	}
}

func TestRecordViewAccepted(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	seedTool(t, env.db, "alpha", nil)

	rec, envelope := env.do(t, http.MethodPost, "/api/v1/tools/alpha/views", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !envelope.Success {
		t.Error("expected success envelope")
	}

	rec, _ = env.do(t, http.MethodPost, "/api/v1/tools/missing/views", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown tool, got %d", rec.Code)
	}
}

func TestRecommendEmptyTask(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/recommendations",
		map[string]string{"task": ""}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty task, got %d", rec.Code)
	}
}

func TestRecommendHeuristicWhenNotConfigured(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	seedTool(t, env.db, "alpha", func(tool *models.Tool) {
		tool.Rating = f64(4.8)
		tool.PopularityScore = i64(146000)
	})
	seedTool(t, env.db, "beta", func(tool *models.Tool) {
		tool.Rating = f64(3.0)
	})

	rec, envelope := env.do(t, http.MethodPost, "/api/v1/recommendations",
		RecommendRequest{Task: "write a blog post"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	outcome := envelope.Data.(map[string]any)
	if outcome["source"] != "heuristic" {
		t.Errorf("expected heuristic source, got %v", outcome["source"])
	}
	recs := outcome["recommendations"].([]any)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	first := recs[0].(map[string]any)
	if first["tool"].(map[string]any)["id"] != "alpha" {
		t.Errorf("expected alpha ranked first, got %v", first["tool"])
	}
}

func TestRecommendThrottleAndQuotaPropagate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"rate limited", reasoning.ErrRateLimited, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{"quota exceeded", reasoning.ErrQuotaExceeded, http.StatusPaymentRequired, ErrCodePaymentRequired},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, &fakeCompleter{configured: true, err: tc.err})
			seedTool(t, env.db, "alpha", nil)

			rec, envelope := env.do(t, http.MethodPost, "/api/v1/recommendations",
				RecommendRequest{Task: "anything"}, "")
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if envelope.Error == nil || envelope.Error.Code != tc.wantCode {
				t.Errorf("unexpected error envelope %+v", envelope.Error)
			}
		})
	}
}

func TestRecommendModelPath(t *testing.T) {
	t.Parallel()

	reply := `{"recommendations":[{"tool_id":"alpha","reasoning":"fits","match_score":88,` +
		`"pros":["fast"],"cons":[],"alternatives":["beta"]}]}`
	env := newTestEnv(t, &fakeCompleter{configured: true, reply: reply})
	seedTool(t, env.db, "alpha", nil)
	seedTool(t, env.db, "beta", nil)

	rec, envelope := env.do(t, http.MethodPost, "/api/v1/recommendations",
		RecommendRequest{Task: "anything"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	outcome := envelope.Data.(map[string]any)
	if outcome["source"] != "model" {
		t.Errorf("expected model source, got %v", outcome["source"])
	}
}

func TestTrendingFallback(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	seedTool(t, env.db, "alpha", func(tool *models.Tool) { tool.Rating = f64(4.5) })

	rec, envelope := env.do(t, http.MethodGet, "/api/v1/trending", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	entries := envelope.Data.([]any)
	if len(entries) != 1 {
		t.Fatalf("expected 1 fallback entry, got %d", len(entries))
	}
	entry := entries[0].(map[string]any)
	if entry["trending_score"].(float64) != 45 {
		t.Errorf("expected fallback score 45, got %v", entry["trending_score"])
	}
}

func TestTrendingSecondaryViews(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	seedTool(t, env.db, "alpha", nil)

	for _, path := range []string{
		"/api/v1/trending/bookmarked",
		"/api/v1/trending/top-rated",
		"/api/v1/trending/rising",
	} {
		rec, envelope := env.do(t, http.MethodGet, path, nil, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
			continue
		}
		if !envelope.Success {
			t.Errorf("%s: expected success envelope", path)
		}
	}
}

func TestSitemap(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)
	seedTool(t, env.db, "alpha", nil)

	rec, _ := env.do(t, http.MethodGet, "/sitemap.xml?base_url=https://other.example.com", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "https://other.example.com/tools/alpha") {
		t.Errorf("expected tool URL in sitemap, got:\n%s", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "xml") {
		t.Errorf("expected xml content type, got %q", ct)
	}
}

func TestNotifyRunRateLimited(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	for i := 0; i < 2; i++ {
		rec, _ := env.do(t, http.MethodPost, "/api/v1/notifications/run", nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("run %d: expected 200, got %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	rec, envelope := env.do(t, http.MethodPost, "/api/v1/notifications/run", nil, "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third run, got %d", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("unexpected error envelope %+v", envelope.Error)
	}
}

func TestEmailSend(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/email/send",
		EmailSendRequest{Type: "new_tools"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for internal type, got %d", rec.Code)
	}

	rec, envelope := env.do(t, http.MethodPost, "/api/v1/email/send",
		EmailSendRequest{Type: "tool_submission", Data: map[string]string{
			"tool_name": "X", "website_url": "https://x.example.com", "description": "d",
		}}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !envelope.Success {
		t.Error("expected success envelope")
	}

	msgs := env.sender.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 sent message, got %d", len(msgs))
	}
	if msgs[0].To != "admin@example.com" {
		t.Errorf("expected admin recipient, got %q", msgs[0].To)
	}
}

func TestSubscribeSendsWelcomeOnce(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/newsletter/subscribe",
		SubscribeRequest{Email: "reader@example.com", Categories: []string{"writing"}}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := len(env.sender.messages()); got != 1 {
		t.Fatalf("expected 1 welcome email, got %d", got)
	}

	rec, _ = env.do(t, http.MethodPost, "/api/v1/newsletter/subscribe",
		SubscribeRequest{Email: "reader@example.com"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on resubscribe, got %d", rec.Code)
	}
	if got := len(env.sender.messages()); got != 1 {
		t.Errorf("resubscribe must not send another welcome, got %d emails", got)
	}

	rec, _ = env.do(t, http.MethodPost, "/api/v1/newsletter/subscribe",
		SubscribeRequest{Email: "reader@example.com", Categories: []string{"bogus"}}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown category, got %d", rec.Code)
	}
}

func TestSubmissionAndContact(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/submissions",
		SubmissionRequest{ToolName: "X", WebsiteURL: "https://x.example.com", Description: "d"}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = env.do(t, http.MethodPost, "/api/v1/contact",
		ContactRequest{Name: "A", Email: "a@example.com", Message: "hello"}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Both dispatch admin notification emails.
	if got := len(env.sender.messages()); got != 2 {
		t.Errorf("expected 2 admin emails, got %d", got)
	}

	token := env.login(t)
	rec, envelope := env.do(t, http.MethodGet, "/api/v1/submissions", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if subs := envelope.Data.([]any); len(subs) != 1 {
		t.Errorf("expected 1 submission, got %d", len(subs))
	}

	rec, _ = env.do(t, http.MethodGet, "/api/v1/submissions", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready"} {
		rec, envelope := env.do(t, http.MethodGet, path, nil, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
			continue
		}
		if !envelope.Success {
			t.Errorf("%s: expected success envelope", path)
		}
	}
}
