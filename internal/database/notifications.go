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

// ToolsCreatedSince returns tools created at or after the cutoff, oldest
// first. Feeds the notification run's new-tool scan.
func (db *DB) ToolsCreatedSince(ctx context.Context, since time.Time) ([]*models.Tool, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+toolColumns+" FROM tools WHERE created_at >= ? ORDER BY created_at ASC, id ASC",
		since)
	if err != nil {
		return nil, fmt.Errorf("failed to query new tools: %w", err)
	}
	defer rows.Close()
	return scanTools(rows)
}

// WasNotified reports whether a (subscriber, tool) pair already appears in
// the notification log.
func (db *DB) WasNotified(ctx context.Context, email, toolID string) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notification_log WHERE email = ? AND tool_id = ?",
		email, toolID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check notification log: %w", err)
	}
	return n > 0, nil
}

// RecordNotifications appends log rows for every tool included in a sent
// digest, making repeated runs idempotent per (email, tool).
func (db *DB) RecordNotifications(ctx context.Context, email string, toolIDs []string) error {
	if len(toolIDs) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for _, toolID := range toolIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO notification_log (id, email, tool_id, sent_at) VALUES (?, ?, ?, ?)`,
			uuid.NewString(), email, toolID, now)
		if err != nil {
			return fmt.Errorf("failed to record notification for %s/%s: %w", email, toolID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notification log: %w", err)
	}
	return nil
}
