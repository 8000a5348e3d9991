// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package trending ranks tools by windowed engagement, with a rating-sort
// fallback when the window holds no engagement at all.
package trending

import (
	"context"
	"fmt"

	"github.com/aitools-explorer/backend/internal/models"
)

// DefaultLimit caps the primary ranking; SecondaryLimit caps the
// most-bookmarked, top-rated, and rising-stars views.
const (
	DefaultLimit   = 10
	SecondaryLimit = 6

	// risingDays is fixed at 7 regardless of the selected window. The three
	// secondary views intentionally use three different time semantics
	// (event window, all-time, fixed 7 days); see DESIGN.md.
	risingDays = 7
)

// Store is the persistence surface the aggregator needs. Satisfied by
// *database.DB.
type Store interface {
	TrendingWindow(ctx context.Context, days, limit int) ([]*models.TrendingEntry, error)
	ToolsByRating(ctx context.Context, limit int) ([]*models.Tool, error)
	MostBookmarkedTools(ctx context.Context, days, limit int) ([]*models.Tool, error)
	RisingStarTools(ctx context.Context, limit int) ([]*models.Tool, error)
}

// Aggregator computes the trending leaderboard and its secondary views.
type Aggregator struct {
	store Store
}

// NewAggregator wires the aggregator to its store.
func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Trending returns the leaderboard for the lookback window. When the window
// holds no engagement rows, it falls back to all tools sorted by rating
// descending with trending_score = rating*10 and zero counts.
func (a *Aggregator) Trending(ctx context.Context, days, limit int) ([]*models.TrendingEntry, error) {
	if days <= 0 {
		days = risingDays
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	entries, err := a.store.TrendingWindow(ctx, days, limit)
	if err != nil {
		return nil, fmt.Errorf("trending aggregate failed: %w", err)
	}
	if len(entries) > 0 {
		return entries, nil
	}

	tools, err := a.store.ToolsByRating(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("trending fallback failed: %w", err)
	}
	entries = make([]*models.TrendingEntry, 0, len(tools))
	for _, tool := range tools {
		entries = append(entries, &models.TrendingEntry{
			ToolID:        tool.ID,
			ToolName:      tool.Name,
			Category:      string(tool.Category),
			TrendingScore: tool.RatingValue() * 10,
		})
	}
	return entries, nil
}

// MostBookmarked returns the top tools by bookmarks created in the window.
func (a *Aggregator) MostBookmarked(ctx context.Context, days int) ([]*models.Tool, error) {
	if days <= 0 {
		days = risingDays
	}
	tools, err := a.store.MostBookmarkedTools(ctx, days, SecondaryLimit)
	if err != nil {
		return nil, fmt.Errorf("most-bookmarked query failed: %w", err)
	}
	return tools, nil
}

// TopRated returns the top tools by all-time rating, ignoring any window.
func (a *Aggregator) TopRated(ctx context.Context) ([]*models.Tool, error) {
	tools, err := a.store.ToolsByRating(ctx, SecondaryLimit)
	if err != nil {
		return nil, fmt.Errorf("top-rated query failed: %w", err)
	}
	return tools, nil
}

// RisingStars returns the best-rated tools created in the last 7 days.
func (a *Aggregator) RisingStars(ctx context.Context) ([]*models.Tool, error) {
	tools, err := a.store.RisingStarTools(ctx, SecondaryLimit)
	if err != nil {
		return nil, fmt.Errorf("rising-stars query failed: %w", err)
	}
	return tools, nil
}
