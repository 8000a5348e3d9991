// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aitools-explorer/backend/internal/auth"
	"github.com/aitools-explorer/backend/internal/models"
)

// handleListBlogPosts serves GET /api/v1/blog. Only published posts are
// listed unless the caller is an authenticated admin asking for drafts.
func (s *Server) handleListBlogPosts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	publishedOnly := true
	if r.URL.Query().Get("include_drafts") == "true" && s.isAdmin(r) {
		publishedOnly = false
	}
	limit, offset := s.pagination(r)

	posts, err := s.db.ListBlogPosts(r.Context(), publishedOnly, limit, offset)
	if err != nil {
		storeError(rw, r, err, "blog posts")
		return
	}
	if posts == nil {
		posts = []*models.BlogPost{}
	}
	rw.Success(posts)
}

// handleGetBlogPost serves GET /api/v1/blog/{slug}. Unpublished posts answer
// 404 on the public surface.
func (s *Server) handleGetBlogPost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	post, err := s.db.GetBlogPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		storeError(rw, r, err, "blog post")
		return
	}
	rw.Success(post)
}

// handleCreateBlogPost serves the admin POST /api/v1/blog.
func (s *Server) handleCreateBlogPost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req BlogPostRequest
	if !decodeRequest(rw, r, &req) {
		return
	}

	post := blogPostFromRequest(&req)
	if err := s.db.CreateBlogPost(r.Context(), post); err != nil {
		storeError(rw, r, err, "blog post")
		return
	}
	rw.Created(post)
}

// handleUpdateBlogPost serves the admin PUT /api/v1/blog/{id}.
func (s *Server) handleUpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req BlogPostRequest
	if !decodeRequest(rw, r, &req) {
		return
	}

	post := blogPostFromRequest(&req)
	post.ID = chi.URLParam(r, "id")
	if err := s.db.UpdateBlogPost(r.Context(), post); err != nil {
		storeError(rw, r, err, "blog post")
		return
	}
	rw.Success(post)
}

// handleDeleteBlogPost serves the admin DELETE /api/v1/blog/{id}.
func (s *Server) handleDeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := s.db.DeleteBlogPost(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(rw, r, err, "blog post")
		return
	}
	rw.NoContent()
}

func blogPostFromRequest(req *BlogPostRequest) *models.BlogPost {
	return &models.BlogPost{
		Slug:      req.Slug,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Author:    req.Author,
		Tags:      req.Tags,
		Published: req.Published,
	}
}

// isAdmin reports whether the request carries a valid admin token. Used for
// optional admin-only views on public routes.
func (s *Server) isAdmin(r *http.Request) bool {
	if s.jwt == nil {
		return false
	}
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return false
	}
	claims, err := s.jwt.Verify(header[len(prefix):])
	return err == nil && claims.Role == auth.RoleAdmin
}
