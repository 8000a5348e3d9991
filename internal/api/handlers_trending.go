// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"net/http"

	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/metrics"
	"github.com/aitools-explorer/backend/internal/models"
)

// handleTrending serves GET /api/v1/trending?days=&limit=.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	days := queryInt(r, "days", 0)
	limit := queryInt(r, "limit", 0)

	entries, err := s.trends.Trending(r.Context(), days, limit)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Trending aggregate failed")
		rw.InternalError("failed to compute trending tools")
		return
	}
	if entries == nil {
		entries = []*models.TrendingEntry{}
	}
	if fellBack(entries) {
		metrics.TrendingFallbacksTotal.Inc()
	}

	rw.Success(entries)
}

// fellBack detects the rating-sort fallback shape: entries exist but carry no
// engagement counts.
func fellBack(entries []*models.TrendingEntry) bool {
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if e.ViewCount > 0 || e.BookmarkCount > 0 || e.RatingCount > 0 {
			return false
		}
	}
	return true
}

// handleTrendingBookmarked serves GET /api/v1/trending/bookmarked?days=.
func (s *Server) handleTrendingBookmarked(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	tools, err := s.trends.MostBookmarked(r.Context(), queryInt(r, "days", 0))
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Most-bookmarked query failed")
		rw.InternalError("failed to compute most-bookmarked tools")
		return
	}
	rw.Success(emptyIfNil(tools))
}

// handleTrendingTopRated serves GET /api/v1/trending/top-rated.
func (s *Server) handleTrendingTopRated(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	tools, err := s.trends.TopRated(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Top-rated query failed")
		rw.InternalError("failed to compute top-rated tools")
		return
	}
	rw.Success(emptyIfNil(tools))
}

// handleTrendingRising serves GET /api/v1/trending/rising.
func (s *Server) handleTrendingRising(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	tools, err := s.trends.RisingStars(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Rising-stars query failed")
		rw.InternalError("failed to compute rising stars")
		return
	}
	rw.Success(emptyIfNil(tools))
}

func emptyIfNil(tools []*models.Tool) []*models.Tool {
	if tools == nil {
		return []*models.Tool{}
	}
	return tools
}
