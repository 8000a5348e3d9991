// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"errors"
	"net/http"

	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/metrics"
	"github.com/aitools-explorer/backend/internal/models"
	"github.com/aitools-explorer/backend/internal/reasoning"
	"github.com/aitools-explorer/backend/internal/recommend"
)

// handleRecommend serves POST /api/v1/recommendations. Upstream throttle and
// quota conditions surface as 429 and 402; every other reasoning failure is
// answered by the heuristic fallback inside the matcher.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendRequest
	if !decodeRequest(rw, r, &req) {
		return
	}

	budget := models.Budget(req.Budget)
	switch budget {
	case models.BudgetFree, models.BudgetUnder20, models.BudgetUnder50,
		models.BudgetUnder100, models.BudgetFlexible:
	default:
		budget = models.BudgetUnspecified
	}

	outcome, err := s.matcher.Match(r.Context(), &models.MatchRequest{
		Task:         req.Task,
		Budget:       budget,
		Requirements: req.Requirements,
	})
	switch {
	case errors.Is(err, recommend.ErrEmptyTask):
		rw.BadRequest(err.Error())
		return
	case errors.Is(err, reasoning.ErrRateLimited):
		rw.TooManyRequests("recommendation service is rate limited, try again shortly")
		return
	case errors.Is(err, reasoning.ErrQuotaExceeded):
		rw.PaymentRequired("recommendation service quota exhausted")
		return
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Recommendation failed")
		rw.InternalError("failed to produce recommendations")
		return
	}

	metrics.RecommendationsTotal.WithLabelValues(string(outcome.Source)).Inc()
	rw.Success(outcome)
}
