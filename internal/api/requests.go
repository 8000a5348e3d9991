// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/aitools-explorer/backend/internal/validation"
)

// maxRequestBody caps request bodies at 1 MiB.
const maxRequestBody = 1 << 20

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Task string `json:"task" validate:"required"`
	// Budget values outside the known tiers are treated as unspecified.
	Budget       string `json:"budget"`
	Requirements string `json:"requirements"`
}

// ToolRequest is the admin create/update body for a tool.
type ToolRequest struct {
	ID              string   `json:"id"`
	Name            string   `json:"name" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	Pricing         string   `json:"pricing" validate:"required,oneof=free freemium paid enterprise"`
	Rating          *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	PopularityScore *int64   `json:"popularity_score"`
	HasAPI          bool     `json:"has_api"`
	Tasks           []string `json:"tasks"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	UseCases        []string `json:"use_cases"`
	WebsiteURL      string   `json:"website_url" validate:"omitempty,url"`
}

// ReviewRequest is the body of POST /api/v1/tools/{id}/reviews.
type ReviewRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=4000"`
}

// BookmarkRequest is the body of POST /api/v1/tools/{id}/bookmarks.
type BookmarkRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// ViewRequest is the body of POST /api/v1/tools/{id}/views. UserID is
// optional; anonymous views are recorded without one.
type ViewRequest struct {
	UserID string `json:"user_id"`
}

// BlogPostRequest is the admin create/update body for a blog post.
type BlogPostRequest struct {
	Slug      string   `json:"slug" validate:"required,max=200"`
	Title     string   `json:"title" validate:"required,max=300"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content" validate:"required"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

// SubmissionRequest is the body of POST /api/v1/submissions.
type SubmissionRequest struct {
	ToolName    string `json:"tool_name" validate:"required,max=200"`
	WebsiteURL  string `json:"website_url" validate:"required,url"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"`
	Pricing     string `json:"pricing" validate:"omitempty,oneof=free freemium paid enterprise"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// ContactRequest is the body of POST /api/v1/contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=300"`
	Message string `json:"message" validate:"required"`
}

// SubscribeRequest is the body of POST /api/v1/newsletter/subscribe.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	// Categories optionally registers new-tool notifications.
	Categories []string `json:"categories"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EmailSendRequest is the body of POST /api/v1/email/send.
type EmailSendRequest struct {
	Type string            `json:"type" validate:"required"`
	Data map[string]string `json:"data"`
	// To overrides the recipient; defaults to the configured admin address
	// for submission/contact notifications.
	To string `json:"to" validate:"omitempty,email"`
}

// NotifyRunRequest is the body of POST /api/v1/notifications/run.
type NotifyRunRequest struct {
	HoursBack int `json:"hours_back" validate:"omitempty,min=1,max=720"`
}

// decodeRequest reads, decodes, and validates a JSON request body. On
// failure it writes the error response and returns false.
func decodeRequest(rw *ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBody)
	defer func() { _ = body.Close() }()

	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		rw.BadRequest(fmt.Sprintf("invalid request body: %v", err))
		return false
	}

	if err := validation.ValidateStruct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			rw.BadRequestWithDetails("validation failed", verr.Fields())
		} else {
			rw.BadRequest(err.Error())
		}
		return false
	}
	return true
}
