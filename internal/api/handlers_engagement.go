// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aitools-explorer/backend/internal/events"
	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/metrics"
	"github.com/aitools-explorer/backend/internal/models"
)

// handleRecordView serves POST /api/v1/tools/{id}/views. The view is
// published to the engagement bus and persisted off the request path, so the
// response only confirms acceptance.
func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	toolID := chi.URLParam(r, "id")

	if _, err := s.db.GetTool(r.Context(), toolID); err != nil {
		storeError(rw, r, err, "tool")
		return
	}

	var req ViewRequest
	if r.ContentLength > 0 && !decodeRequest(rw, r, &req) {
		return
	}

	if err := s.bus.PublishView(&events.ViewEvent{ToolID: toolID, UserID: req.UserID}); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("tool_id", toolID).Msg("Failed to publish view event")
		rw.InternalError("failed to record view")
		return
	}
	metrics.ViewEventsPublished.Inc()

	rw.Success(map[string]string{"status": "accepted"})
}

// handleCreateBookmark serves POST /api/v1/tools/{id}/bookmarks. Duplicate
// bookmarks are accepted silently.
func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req BookmarkRequest
	if !decodeRequest(rw, r, &req) {
		return
	}

	bookmark := &models.Bookmark{ToolID: chi.URLParam(r, "id"), UserID: req.UserID}
	if err := s.db.InsertBookmark(r.Context(), bookmark); err != nil {
		storeError(rw, r, err, "bookmark")
		return
	}
	rw.Created(bookmark)
}

// handleDeleteBookmark serves DELETE /api/v1/tools/{id}/bookmarks?user_id=.
func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		rw.BadRequest("user_id query parameter is required")
		return
	}

	if err := s.db.DeleteBookmark(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		storeError(rw, r, err, "bookmark")
		return
	}
	rw.NoContent()
}

// handleListUserBookmarks serves GET /api/v1/users/{userID}/bookmarks.
func (s *Server) handleListUserBookmarks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	tools, err := s.db.ListBookmarkedTools(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		storeError(rw, r, err, "bookmarks")
		return
	}
	if tools == nil {
		tools = []*models.Tool{}
	}
	rw.Success(tools)
}

// handleListReviews serves GET /api/v1/tools/{id}/reviews.
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	reviews, err := s.db.ListReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(rw, r, err, "reviews")
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	rw.Success(reviews)
}

// handleCreateReview serves POST /api/v1/tools/{id}/reviews. The insert also
// refreshes the tool's rating average.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	toolID := chi.URLParam(r, "id")

	if _, err := s.db.GetTool(r.Context(), toolID); err != nil {
		storeError(rw, r, err, "tool")
		return
	}

	var req ReviewRequest
	if !decodeRequest(rw, r, &req) {
		return
	}

	review := &models.Review{
		ToolID:  toolID,
		UserID:  req.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.db.InsertReview(r.Context(), review); err != nil {
		storeError(rw, r, err, "review")
		return
	}
	rw.Created(review)
}
