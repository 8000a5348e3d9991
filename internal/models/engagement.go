// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package models

import "time"

// Review is a user rating with optional comment for a tool. Engagement
// records are append-only; there is no update or delete path.
type Review struct {
	ID        string    `json:"id"`
	ToolID    string    `json:"tool_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark marks a tool as saved by a user.
type Bookmark struct {
	ID        string    `json:"id"`
	ToolID    string    `json:"tool_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToolView is one recorded view event. UserID is empty for anonymous views.
type ToolView struct {
	ID        string    `json:"id"`
	ToolID    string    `json:"tool_id"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TrendingEntry is one row of the trending leaderboard, carrying the
// engagement counts that produced its score.
type TrendingEntry struct {
	ToolID        string  `json:"tool_id"`
	ToolName      string  `json:"tool_name"`
	Category      string  `json:"category"`
	ViewCount     int64   `json:"view_count"`
	BookmarkCount int64   `json:"bookmark_count"`
	RatingCount   int64   `json:"rating_count"`
	TrendingScore float64 `json:"trending_score"`
}
