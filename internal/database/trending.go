// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/aitools-explorer/backend/internal/models"
)

// TrendingWindow aggregates view, bookmark, and rating counts per tool over
// the lookback window and returns rows sorted by trending score descending,
// capped to limit. An empty result means no engagement exists in the window;
// the aggregator layer applies the rating-sort fallback in that case.
//
// trending_score = views + bookmarks*3 + ratings*5.
func (db *DB) TrendingWindow(ctx context.Context, days, limit int) ([]*models.TrendingEntry, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := db.conn.QueryContext(ctx, `
		WITH window_views AS (
			SELECT tool_id, COUNT(*) AS n FROM tool_views WHERE created_at >= ? GROUP BY tool_id
		), window_bookmarks AS (
			SELECT tool_id, COUNT(*) AS n FROM bookmarks WHERE created_at >= ? GROUP BY tool_id
		), window_ratings AS (
			SELECT tool_id, COUNT(*) AS n FROM reviews WHERE created_at >= ? GROUP BY tool_id
		)
		SELECT t.id, t.name, t.category,
			COALESCE(v.n, 0) AS view_count,
			COALESCE(b.n, 0) AS bookmark_count,
			COALESCE(r.n, 0) AS rating_count,
			CAST(COALESCE(v.n, 0) + COALESCE(b.n, 0) * 3 + COALESCE(r.n, 0) * 5 AS DOUBLE) AS trending_score
		FROM tools t
		LEFT JOIN window_views v ON v.tool_id = t.id
		LEFT JOIN window_bookmarks b ON b.tool_id = t.id
		LEFT JOIN window_ratings r ON r.tool_id = t.id
		WHERE COALESCE(v.n, 0) + COALESCE(b.n, 0) + COALESCE(r.n, 0) > 0
		ORDER BY trending_score DESC, t.id ASC
		LIMIT ?`, since, since, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending window: %w", err)
	}
	defer rows.Close()

	var entries []*models.TrendingEntry
	for rows.Next() {
		var e models.TrendingEntry
		if err := rows.Scan(&e.ToolID, &e.ToolName, &e.Category,
			&e.ViewCount, &e.BookmarkCount, &e.RatingCount, &e.TrendingScore); err != nil {
			return nil, fmt.Errorf("failed to scan trending row: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trending row iteration failed: %w", err)
	}
	return entries, nil
}

// ToolsByRating returns all tools sorted by rating descending, capped. Backs
// the trending fallback and the all-time top-rated view.
func (db *DB) ToolsByRating(ctx context.Context, limit int) ([]*models.Tool, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+toolColumns+" FROM tools ORDER BY rating DESC NULLS LAST, id ASC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools by rating: %w", err)
	}
	defer rows.Close()
	return scanTools(rows)
}

// MostBookmarkedTools counts bookmarks created within the window, groups by
// tool, and returns the top tools in that ranking.
func (db *DB) MostBookmarkedTools(ctx context.Context, days, limit int) ([]*models.Tool, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+prefixedToolColumns("t")+`
		FROM (
			SELECT tool_id, COUNT(*) AS n FROM bookmarks
			WHERE created_at >= ? GROUP BY tool_id
		) b
		JOIN tools t ON t.id = b.tool_id
		ORDER BY b.n DESC, t.id ASC
		LIMIT ?`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query most bookmarked tools: %w", err)
	}
	defer rows.Close()
	return scanTools(rows)
}

// RisingStarTools returns tools created within the last 7 days sorted by
// rating descending. The 7-day horizon is fixed and independent of the
// selected trending window.
func (db *DB) RisingStarTools(ctx context.Context, limit int) ([]*models.Tool, error) {
	since := time.Now().UTC().AddDate(0, 0, -7)

	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+toolColumns+` FROM tools WHERE created_at >= ?
		 ORDER BY rating DESC NULLS LAST, id ASC LIMIT ?`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rising star tools: %w", err)
	}
	defer rows.Close()
	return scanTools(rows)
}
