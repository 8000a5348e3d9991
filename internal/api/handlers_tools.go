// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aitools-explorer/backend/internal/database"
	"github.com/aitools-explorer/backend/internal/models"
)

// handleListTools serves GET /api/v1/tools with filtering, sorting, and
// pagination.
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()

	filter := database.ToolFilter{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: q.Get("category"),
		Pricing:  q.Get("pricing"),
		Sort:     q.Get("sort"),
	}
	if filter.Category != "" && !models.Category(filter.Category).IsValid() {
		rw.BadRequest("unknown category: " + filter.Category)
		return
	}
	if filter.Pricing != "" && !models.Pricing(filter.Pricing).IsValid() {
		rw.BadRequest("unknown pricing tier: " + filter.Pricing)
		return
	}
	switch raw := q.Get("has_api"); raw {
	case "":
	case "true", "false":
		hasAPI := raw == "true"
		filter.HasAPI = &hasAPI
	default:
		rw.BadRequest("has_api must be true or false")
		return
	}
	filter.Limit, filter.Offset = s.pagination(r)

	tools, total, err := s.db.ListTools(r.Context(), filter)
	if err != nil {
		storeError(rw, r, err, "tools")
		return
	}
	if tools == nil {
		tools = []*models.Tool{}
	}

	rw.SuccessWithPagination(tools, &PaginationMeta{
		Total:   total,
		Count:   len(tools),
		Offset:  filter.Offset,
		Limit:   filter.Limit,
		HasMore: filter.Offset+len(tools) < total,
	})
}

// handleGetTool serves GET /api/v1/tools/{id}.
func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	tool, err := s.db.GetTool(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(rw, r, err, "tool")
		return
	}
	rw.Success(tool)
}

// handleCreateTool serves the admin POST /api/v1/tools.
func (s *Server) handleCreateTool(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ToolRequest
	if !decodeRequest(rw, r, &req) {
		return
	}
	tool, ok := toolFromRequest(rw, &req)
	if !ok {
		return
	}

	if err := s.db.CreateTool(r.Context(), tool); err != nil {
		storeError(rw, r, err, "tool")
		return
	}
	rw.Created(tool)
}

// handleUpdateTool serves the admin PUT /api/v1/tools/{id}.
func (s *Server) handleUpdateTool(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ToolRequest
	if !decodeRequest(rw, r, &req) {
		return
	}
	tool, ok := toolFromRequest(rw, &req)
	if !ok {
		return
	}
	tool.ID = chi.URLParam(r, "id")

	if err := s.db.UpdateTool(r.Context(), tool); err != nil {
		storeError(rw, r, err, "tool")
		return
	}
	rw.Success(tool)
}

// handleDeleteTool serves the admin DELETE /api/v1/tools/{id}. The tool's
// engagement rows are deleted with it.
func (s *Server) handleDeleteTool(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := s.db.DeleteTool(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(rw, r, err, "tool")
		return
	}
	rw.NoContent()
}

// toolFromRequest maps a validated request body onto a model, rejecting
// unknown enum values.
func toolFromRequest(rw *ResponseWriter, req *ToolRequest) (*models.Tool, bool) {
	category := models.Category(req.Category)
	if !category.IsValid() {
		rw.BadRequest("unknown category: " + req.Category)
		return nil, false
	}

	return &models.Tool{
		ID:              req.ID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        category,
		Pricing:         models.Pricing(req.Pricing),
		Rating:          req.Rating,
		PopularityScore: req.PopularityScore,
		HasAPI:          req.HasAPI,
		Tasks:           req.Tasks,
		Pros:            req.Pros,
		Cons:            req.Cons,
		UseCases:        req.UseCases,
		WebsiteURL:      req.WebsiteURL,
	}, true
}
