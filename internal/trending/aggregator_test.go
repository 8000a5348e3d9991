// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package trending

import (
	"context"
	"errors"
	"testing"

	"github.com/aitools-explorer/backend/internal/models"
)

type fakeStore struct {
	entries    []*models.TrendingEntry
	byRating   []*models.Tool
	bookmarked []*models.Tool
	rising     []*models.Tool
	err        error

	gotDays  int
	gotLimit int
}

func (f *fakeStore) TrendingWindow(_ context.Context, days, limit int) ([]*models.TrendingEntry, error) {
	f.gotDays, f.gotLimit = days, limit
	return f.entries, f.err
}

func (f *fakeStore) ToolsByRating(_ context.Context, limit int) ([]*models.Tool, error) {
	f.gotLimit = limit
	return f.byRating, f.err
}

func (f *fakeStore) MostBookmarkedTools(_ context.Context, days, limit int) ([]*models.Tool, error) {
	f.gotDays, f.gotLimit = days, limit
	return f.bookmarked, f.err
}

func (f *fakeStore) RisingStarTools(_ context.Context, limit int) ([]*models.Tool, error) {
	f.gotLimit = limit
	return f.rising, f.err
}

func f64(v float64) *float64 { return &v }

func TestTrendingPrimaryPath(t *testing.T) {
	t.Parallel()

	store := &fakeStore{entries: []*models.TrendingEntry{
		{ToolID: "a", ToolName: "A", TrendingScore: 12},
	}}
	agg := NewAggregator(store)

	entries, err := agg.Trending(context.Background(), 30, 10)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ToolID != "a" {
		t.Errorf("unexpected entries: %v", entries)
	}
	if store.gotDays != 30 || store.gotLimit != 10 {
		t.Errorf("window not forwarded: days=%d limit=%d", store.gotDays, store.gotLimit)
	}
}

func TestTrendingFallbackOnEmptyWindow(t *testing.T) {
	t.Parallel()

	store := &fakeStore{byRating: []*models.Tool{
		{ID: "b", Name: "B", Category: models.CategoryCoding, Rating: f64(4.9)},
		{ID: "a", Name: "A", Category: models.CategoryWriting, Rating: f64(4.1)},
		{ID: "c", Name: "C", Category: models.CategoryDesign},
	}}
	agg := NewAggregator(store)

	entries, err := agg.Trending(context.Background(), 7, 10)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 fallback entries, got %d", len(entries))
	}
	if entries[0].ToolID != "b" || entries[0].TrendingScore != 49 {
		t.Errorf("expected b with score 49, got %s score %v", entries[0].ToolID, entries[0].TrendingScore)
	}
	// Nil rating is treated as 0.
	if entries[2].TrendingScore != 0 {
		t.Errorf("expected zero score for unrated tool, got %v", entries[2].TrendingScore)
	}
	for _, e := range entries {
		if e.ViewCount != 0 || e.BookmarkCount != 0 || e.RatingCount != 0 {
			t.Errorf("fallback counts must be zero: %+v", e)
		}
	}
}

func TestTrendingDefaults(t *testing.T) {
	t.Parallel()

	store := &fakeStore{entries: []*models.TrendingEntry{{ToolID: "a"}}}
	agg := NewAggregator(store)

	if _, err := agg.Trending(context.Background(), 0, 0); err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if store.gotDays != 7 || store.gotLimit != DefaultLimit {
		t.Errorf("expected defaults 7/%d, got %d/%d", DefaultLimit, store.gotDays, store.gotLimit)
	}
}

func TestTrendingStoreError(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(&fakeStore{err: errors.New("db down")})
	if _, err := agg.Trending(context.Background(), 7, 10); err == nil {
		t.Error("expected error from failing store")
	}
}

func TestSecondaryViews(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		bookmarked: []*models.Tool{{ID: "a"}},
		byRating:   []*models.Tool{{ID: "b"}},
		rising:     []*models.Tool{{ID: "c"}},
	}
	agg := NewAggregator(store)
	ctx := context.Background()

	tools, err := agg.MostBookmarked(ctx, 30)
	if err != nil || len(tools) != 1 || tools[0].ID != "a" {
		t.Errorf("MostBookmarked: tools=%v err=%v", tools, err)
	}
	if store.gotDays != 30 || store.gotLimit != SecondaryLimit {
		t.Errorf("MostBookmarked window: days=%d limit=%d", store.gotDays, store.gotLimit)
	}

	tools, err = agg.TopRated(ctx)
	if err != nil || len(tools) != 1 || tools[0].ID != "b" {
		t.Errorf("TopRated: tools=%v err=%v", tools, err)
	}
	if store.gotLimit != SecondaryLimit {
		t.Errorf("TopRated limit: %d", store.gotLimit)
	}

	tools, err = agg.RisingStars(ctx)
	if err != nil || len(tools) != 1 || tools[0].ID != "c" {
		t.Errorf("RisingStars: tools=%v err=%v", tools, err)
	}
}
