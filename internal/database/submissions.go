// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aitools-explorer/backend/internal/models"
)

// InsertSubmission stores a community tool submission in pending state.
func (db *DB) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	sub.Status = models.SubmissionPending
	sub.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO submissions (id, tool_name, website_url, description, category, pricing, email, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.ToolName, sub.WebsiteURL, sub.Description, sub.Category,
		sub.Pricing, sub.Email, string(sub.Status), sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// ListSubmissions returns submissions newest first, optionally filtered by
// status. Admin-only surface.
func (db *DB) ListSubmissions(ctx context.Context, status models.SubmissionStatus) ([]*models.Submission, error) {
	query := `SELECT id, tool_name, website_url, description, category, pricing, email, status, created_at
		FROM submissions WHERE 1=1`
	var args []any
	if status != "" {
		query += " AND status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC, id ASC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		var s models.Submission
		var st string
		if err := rows.Scan(&s.ID, &s.ToolName, &s.WebsiteURL, &s.Description,
			&s.Category, &s.Pricing, &s.Email, &st, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		s.Status = models.SubmissionStatus(st)
		subs = append(subs, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("submission row iteration failed: %w", err)
	}
	return subs, nil
}

// UpdateSubmissionStatus moves a submission to approved or rejected.
func (db *DB) UpdateSubmissionStatus(ctx context.Context, id string, status models.SubmissionStatus) error {
	switch status {
	case models.SubmissionApproved, models.SubmissionRejected, models.SubmissionPending:
	default:
		return fmt.Errorf("invalid submission status %q", status)
	}

	res, err := db.conn.ExecContext(ctx,
		"UPDATE submissions SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update submission %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertContactMessage stores an inbound contact-form message.
func (db *DB) InsertContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

// ListContactMessages returns contact messages newest first. Admin-only.
func (db *DB) ListContactMessages(ctx context.Context) ([]*models.ContactMessage, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, email, subject, message, created_at
		 FROM contact_messages ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []*models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message row: %w", err)
		}
		msgs = append(msgs, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contact message row iteration failed: %w", err)
	}
	return msgs, nil
}
