// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package notify implements the new-tool notification run: scan recently
// created tools, match them against category subscriptions, dedupe against
// the notification log, and send one aggregated digest per subscriber.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/mailer"
	"github.com/aitools-explorer/backend/internal/models"
)

// Store is the persistence surface the runner needs. Satisfied by
// *database.DB.
type Store interface {
	ToolsCreatedSince(ctx context.Context, since time.Time) ([]*models.Tool, error)
	CategorySubscriptions(ctx context.Context) ([]*models.CategorySubscription, error)
	WasNotified(ctx context.Context, email, toolID string) (bool, error)
	RecordNotifications(ctx context.Context, email string, toolIDs []string) error
}

// Result summarizes one notification run.
type Result struct {
	Success  bool `json:"success"`
	Sent     int  `json:"sent"`
	Errors   int  `json:"errors"`
	NewTools int  `json:"new_tools"`
}

// Runner executes notification runs.
type Runner struct {
	store        Store
	sender       mailer.Sender
	baseURL      string
	defaultHours int
}

// NewRunner wires the runner. baseURL appears in digest bodies;
// defaultHours is the lookback applied when a run does not specify one.
func NewRunner(store Store, sender mailer.Sender, baseURL string, defaultHours int) *Runner {
	if defaultHours <= 0 {
		defaultHours = 24
	}
	return &Runner{store: store, sender: sender, baseURL: baseURL, defaultHours: defaultHours}
}

// Run scans tools created within the lookback window and sends one digest
// per subscriber covering all of their matched, not-yet-notified tools. A
// failed send counts as an error and leaves the log untouched, so the next
// run retries those tools.
func (r *Runner) Run(ctx context.Context, hoursBack int) (*Result, error) {
	if hoursBack <= 0 {
		hoursBack = r.defaultHours
	}
	since := time.Now().UTC().Add(-time.Duration(hoursBack) * time.Hour)

	newTools, err := r.store.ToolsCreatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to scan new tools: %w", err)
	}
	result := &Result{Success: true, NewTools: len(newTools)}
	if len(newTools) == 0 {
		return result, nil
	}

	subs, err := r.store.CategorySubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	byCategory := make(map[models.Category][]*models.Tool)
	for _, tool := range newTools {
		byCategory[tool.Category] = append(byCategory[tool.Category], tool)
	}

	// One digest per subscriber across all of their categories.
	perEmail := make(map[string][]*models.Tool)
	var emails []string
	for _, sub := range subs {
		tools, ok := byCategory[sub.Category]
		if !ok {
			continue
		}
		if _, seen := perEmail[sub.Email]; !seen {
			emails = append(emails, sub.Email)
		}
		perEmail[sub.Email] = append(perEmail[sub.Email], tools...)
	}

	for _, email := range emails {
		pending, err := r.pendingTools(ctx, email, perEmail[email])
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Str("email", email).Msg("Notification dedupe check failed")
			result.Errors++
			continue
		}
		if len(pending) == 0 {
			continue
		}

		if err := r.sendDigest(ctx, email, pending); err != nil {
			logging.Ctx(ctx).Error().Err(err).Str("email", email).Msg("Failed to send digest")
			result.Errors++
			continue
		}

		ids := make([]string, len(pending))
		for i, tool := range pending {
			ids[i] = tool.ID
		}
		if err := r.store.RecordNotifications(ctx, email, ids); err != nil {
			logging.Ctx(ctx).Error().Err(err).Str("email", email).Msg("Failed to record notifications")
			result.Errors++
			continue
		}
		result.Sent++
	}

	result.Success = result.Errors == 0
	return result, nil
}

// pendingTools filters out tools this subscriber was already notified about.
func (r *Runner) pendingTools(ctx context.Context, email string, tools []*models.Tool) ([]*models.Tool, error) {
	var pending []*models.Tool
	seen := make(map[string]bool)
	for _, tool := range tools {
		if seen[tool.ID] {
			continue
		}
		seen[tool.ID] = true

		notified, err := r.store.WasNotified(ctx, email, tool.ID)
		if err != nil {
			return nil, err
		}
		if !notified {
			pending = append(pending, tool)
		}
	}
	return pending, nil
}

func (r *Runner) sendDigest(ctx context.Context, email string, tools []*models.Tool) error {
	var list strings.Builder
	for _, tool := range tools {
		fmt.Fprintf(&list, "- %s (%s): %s\n", tool.Name, tool.Category, tool.Description)
	}

	subject, body, err := mailer.Render(mailer.EmailNewTools, map[string]string{
		"tool_list": list.String(),
		"base_url":  r.baseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}
	return r.sender.Send(ctx, &mailer.Message{To: email, Subject: subject, Body: body})
}
