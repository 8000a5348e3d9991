// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/aitools-explorer/backend/internal/database"
	"github.com/aitools-explorer/backend/internal/logging"
)

// clientIP extracts the caller's IP for per-IP limiting. X-Forwarded-For is
// trusted when present (the service runs behind a reverse proxy in
// production); otherwise the connection address is used.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for i := 0; i < len(fwd); i++ {
			if fwd[i] == ',' {
				return fwd[:i]
			}
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// queryInt parses an integer query parameter, returning fallback when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// pagination resolves limit/offset query parameters against the configured
// page-size bounds.
func (s *Server) pagination(r *http.Request) (limit, offset int) {
	limit = queryInt(r, "limit", s.cfg.API.DefaultPageSize)
	if limit <= 0 {
		limit = s.cfg.API.DefaultPageSize
	}
	if max := s.cfg.API.MaxPageSize; max > 0 && limit > max {
		limit = max
	}
	offset = queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// storeError maps store failures to responses: ErrNotFound becomes 404,
// anything else a logged 500.
func storeError(rw *ResponseWriter, r *http.Request, err error, what string) {
	if errors.Is(err, database.ErrNotFound) {
		rw.NotFound(what + " not found")
		return
	}
	logging.Ctx(r.Context()).Error().Err(err).Msg("Store operation failed")
	rw.InternalError("failed to access " + what)
}
