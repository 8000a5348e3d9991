// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aitools-explorer/backend/internal/models"
)

// UpsertSubscriber subscribes an email to the newsletter. A repeated
// subscribe reactivates the existing row instead of inserting a duplicate.
// Returns true when the email was not previously an active subscriber, so
// the caller knows whether to send a welcome email.
func (db *DB) UpsertSubscriber(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, fmt.Errorf("subscriber email is required")
	}

	var (
		id     string
		active bool
	)
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, active FROM newsletter_subscribers WHERE email = ?", email).Scan(&id, &active)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.conn.ExecContext(ctx,
			`INSERT INTO newsletter_subscribers (id, email, active, subscribed_at)
			 VALUES (?, ?, true, ?)`,
			uuid.NewString(), email, time.Now().UTC())
		if err != nil {
			return false, fmt.Errorf("failed to insert subscriber: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to look up subscriber: %w", err)
	case active:
		return false, nil
	default:
		_, err = db.conn.ExecContext(ctx,
			"UPDATE newsletter_subscribers SET active = true, subscribed_at = ? WHERE id = ?",
			time.Now().UTC(), id)
		if err != nil {
			return false, fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
		return true, nil
	}
}

// DeactivateSubscriber unsubscribes an email. Missing emails are a no-op.
func (db *DB) DeactivateSubscriber(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := db.conn.ExecContext(ctx,
		"UPDATE newsletter_subscribers SET active = false WHERE email = ?", email)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscriber: %w", err)
	}
	return nil
}

// InsertCategorySubscription registers interest in new tools of a category.
// Duplicate (email, category) pairs are a no-op.
func (db *DB) InsertCategorySubscription(ctx context.Context, email string, category models.Category) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("subscription email is required")
	}
	if !category.IsValid() {
		return fmt.Errorf("invalid category %q", category)
	}

	var exists int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM category_subscriptions WHERE email = ? AND category = ?",
		email, string(category)).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check category subscription: %w", err)
	}
	if exists > 0 {
		return nil
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO category_subscriptions (id, email, category, created_at)
		 VALUES (?, ?, ?, ?)`,
		uuid.NewString(), email, string(category), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert category subscription: %w", err)
	}
	return nil
}

// CategorySubscriptions returns all category subscriptions ordered by email.
// The notification run groups them per subscriber.
func (db *DB) CategorySubscriptions(ctx context.Context) ([]*models.CategorySubscription, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, email, category, created_at
		 FROM category_subscriptions ORDER BY email ASC, category ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.CategorySubscription
	for rows.Next() {
		var (
			s        models.CategorySubscription
			category string
		)
		if err := rows.Scan(&s.ID, &s.Email, &category, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category subscription row: %w", err)
		}
		s.Category = models.Category(category)
		subs = append(subs, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category subscription row iteration failed: %w", err)
	}
	return subs, nil
}
