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

// InsertReview appends a review and recomputes the tool's average rating in
// the same transaction.
func (db *DB) InsertReview(ctx context.Context, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("review rating %d out of range [1,5]", review.Rating)
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now().UTC()

	if _, err := db.GetTool(ctx, review.ToolID); err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reviews (id, tool_id, user_id, rating, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		review.ID, review.ToolID, review.UserID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE tools SET
			rating = (SELECT AVG(CAST(rating AS DOUBLE)) FROM reviews WHERE tool_id = ?),
			updated_at = ?
		 WHERE id = ?`,
		review.ToolID, review.CreatedAt, review.ToolID)
	if err != nil {
		return fmt.Errorf("failed to update tool rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review: %w", err)
	}
	return nil
}

// ListReviews returns a tool's reviews, newest first.
func (db *DB) ListReviews(ctx context.Context, toolID string) ([]*models.Review, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, tool_id, user_id, rating, comment, created_at
		 FROM reviews WHERE tool_id = ? ORDER BY created_at DESC, id ASC`, toolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ToolID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review row iteration failed: %w", err)
	}
	return reviews, nil
}

// InsertBookmark appends a bookmark. Re-bookmarking an already-bookmarked
// tool is a no-op rather than an error.
func (db *DB) InsertBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	if _, err := db.GetTool(ctx, bookmark.ToolID); err != nil {
		return err
	}

	var exists int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookmarks WHERE tool_id = ? AND user_id = ?",
		bookmark.ToolID, bookmark.UserID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check bookmark: %w", err)
	}
	if exists > 0 {
		return nil
	}

	if bookmark.ID == "" {
		bookmark.ID = uuid.NewString()
	}
	bookmark.CreatedAt = time.Now().UTC()

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO bookmarks (id, tool_id, user_id, created_at) VALUES (?, ?, ?, ?)`,
		bookmark.ID, bookmark.ToolID, bookmark.UserID, bookmark.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

// DeleteBookmark removes a user's bookmark for a tool.
func (db *DB) DeleteBookmark(ctx context.Context, toolID, userID string) error {
	res, err := db.conn.ExecContext(ctx,
		"DELETE FROM bookmarks WHERE tool_id = ? AND user_id = ?", toolID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBookmarkedTools returns the tools a user has bookmarked, most recent
// bookmark first.
func (db *DB) ListBookmarkedTools(ctx context.Context, userID string) ([]*models.Tool, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+prefixedToolColumns("t")+`
		 FROM bookmarks b JOIN tools t ON t.id = b.tool_id
		 WHERE b.user_id = ?
		 ORDER BY b.created_at DESC, t.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarked tools: %w", err)
	}
	defer rows.Close()
	return scanTools(rows)
}

// InsertView appends a view event and bumps the tool's popularity score.
// Views are deduplicated client-side per session; the server records every
// event it receives.
func (db *DB) InsertView(ctx context.Context, view *models.ToolView) error {
	if view.ID == "" {
		view.ID = uuid.NewString()
	}
	view.CreatedAt = time.Now().UTC()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE tools SET popularity_score = COALESCE(popularity_score, 0) + 1 WHERE id = ?`,
		view.ToolID)
	if err != nil {
		return fmt.Errorf("failed to bump popularity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tool_views (id, tool_id, user_id, created_at) VALUES (?, ?, ?, ?)`,
		view.ID, view.ToolID, view.UserID, view.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert view: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit view: %w", err)
	}
	return nil
}

// EngagementCounts returns all-time view/bookmark/review counts for a tool.
func (db *DB) EngagementCounts(ctx context.Context, toolID string) (views, bookmarks, reviews int64, err error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM tool_views WHERE tool_id = ?),
			(SELECT COUNT(*) FROM bookmarks WHERE tool_id = ?),
			(SELECT COUNT(*) FROM reviews WHERE tool_id = ?)`,
		toolID, toolID, toolID)
	if err = row.Scan(&views, &bookmarks, &reviews); err != nil {
		err = fmt.Errorf("failed to count engagement for tool %s: %w", toolID, err)
	}
	return
}

// prefixedToolColumns qualifies the shared tool column list with a table
// alias for join queries.
func prefixedToolColumns(alias string) string {
	return alias + `.id, ` + alias + `.name, ` + alias + `.description, ` +
		alias + `.category, ` + alias + `.pricing, ` + alias + `.rating, ` +
		alias + `.popularity_score, ` + alias + `.has_api, ` + alias + `.tasks, ` +
		alias + `.pros, ` + alias + `.cons, ` + alias + `.use_cases, ` +
		alias + `.website_url, ` + alias + `.created_at, ` + alias + `.updated_at`
}
