// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"net/http"
	"time"

	"github.com/aitools-explorer/backend/internal/auth"
	"github.com/aitools-explorer/backend/internal/logging"
)

// handleLogin serves POST /api/v1/auth/login, issuing an admin session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if s.jwt == nil {
		rw.Unauthorized("authentication is not configured")
		return
	}

	var req LoginRequest
	if !decodeRequest(rw, r, &req) {
		return
	}

	if !auth.CheckAdminCredentials(&s.cfg.Security, req.Username, req.Password) {
		logging.Ctx(r.Context()).Warn().Str("username", req.Username).Msg("Failed login attempt")
		rw.Unauthorized("invalid credentials")
		return
	}

	token, err := s.jwt.Generate(req.Username, auth.RoleAdmin)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to issue token")
		rw.InternalError("failed to issue token")
		return
	}

	rw.Success(map[string]any{
		"token":      token,
		"token_type": "Bearer",
		"expires_at": time.Now().Add(s.cfg.Security.SessionTimeout).UTC(),
	})
}

// handleHealthLive serves GET /api/v1/health/live.
func (s *Server) handleHealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// handleHealthReady serves GET /api/v1/health/ready, checking the database.
func (s *Server) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := s.db.Ping(r.Context()); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Readiness check failed")
		rw.Error(http.StatusServiceUnavailable, ErrCodeInternalError, "database unavailable")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}
