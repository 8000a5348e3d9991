// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package recommend implements the tool recommendation matcher: an external
// reasoning service ranks the catalog against the user's task, with a
// deterministic local heuristic as fallback.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/models"
	"github.com/aitools-explorer/backend/internal/reasoning"
)

// ErrEmptyTask rejects requests with no task description. Mapped to 400 at
// the API boundary; no upstream call is attempted.
var ErrEmptyTask = errors.New("task description is required")

// Completer is the reasoning-service surface the matcher needs. Satisfied by
// *reasoning.Client.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Configured() bool
}

// Catalog loads the full tool set. Satisfied by *database.DB. The catalog is
// read fresh on every call; there is no caching layer.
type Catalog interface {
	AllTools(ctx context.Context) ([]*models.Tool, error)
}

// Matcher produces up to 3 ranked recommendations per request.
type Matcher struct {
	catalog Catalog
	client  Completer
}

// NewMatcher wires the matcher to its catalog and reasoning client.
func NewMatcher(catalog Catalog, client Completer) *Matcher {
	return &Matcher{catalog: catalog, client: client}
}

// Match runs the recommendation flow. Rate-limit and quota errors from the
// reasoning service propagate to the caller; every other upstream failure is
// absorbed and answered by the heuristic fallback.
func (m *Matcher) Match(ctx context.Context, req *models.MatchRequest) (*models.MatchOutcome, error) {
	if strings.TrimSpace(req.Task) == "" {
		return nil, ErrEmptyTask
	}

	tools, err := m.catalog.AllTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(tools) == 0 {
		return &models.MatchOutcome{
			Recommendations: []models.Recommendation{},
			Source:          models.MatchSourceHeuristic,
			FallbackReason:  "catalog is empty",
		}, nil
	}

	if !m.client.Configured() {
		return m.degraded(tools, req, "reasoning service not configured"), nil
	}

	reply, err := m.client.Complete(ctx, systemPrompt, buildUserPrompt(tools, req))
	if err != nil {
		if errors.Is(err, reasoning.ErrRateLimited) || errors.Is(err, reasoning.ErrQuotaExceeded) {
			return nil, err
		}
		logging.Ctx(ctx).Warn().Err(err).Msg("Reasoning call failed, using heuristic fallback")
		return m.degraded(tools, req, "reasoning call failed"), nil
	}

	recs, err := parseRecommendations(reply, tools)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Unusable reasoning reply, using heuristic fallback")
		return m.degraded(tools, req, "reasoning reply unusable"), nil
	}
	if len(recs) == 0 {
		return m.degraded(tools, req, "reasoning reply matched no known tools"), nil
	}

	return &models.MatchOutcome{
		Recommendations: recs,
		Source:          models.MatchSourceModel,
	}, nil
}

func (m *Matcher) degraded(tools []*models.Tool, req *models.MatchRequest, reason string) *models.MatchOutcome {
	return &models.MatchOutcome{
		Recommendations: fallback(tools, req),
		Source:          models.MatchSourceHeuristic,
		FallbackReason:  reason,
	}
}

// modelReply mirrors the structured JSON the reasoning service is asked to
// produce.
type modelReply struct {
	Recommendations []struct {
		ToolID       string   `json:"tool_id"`
		Reasoning    string   `json:"reasoning"`
		MatchScore   float64  `json:"match_score"`
		Pros         []string `json:"pros"`
		Cons         []string `json:"cons"`
		Alternatives []string `json:"alternatives"`
	} `json:"recommendations"`
}

// parseRecommendations decodes the model reply and resolves every referenced
// tool id against the catalog. Entries naming unknown ids are dropped
// silently; unknown alternative ids are dropped from their entry. The result
// is truncated to 3.
func parseRecommendations(reply string, tools []*models.Tool) ([]models.Recommendation, error) {
	byID := make(map[string]*models.Tool, len(tools))
	for _, tool := range tools {
		byID[tool.ID] = tool
	}

	var parsed modelReply
	if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode model reply: %w", err)
	}

	recs := make([]models.Recommendation, 0, maxRecommendations)
	for _, entry := range parsed.Recommendations {
		tool, ok := byID[entry.ToolID]
		if !ok {
			continue
		}

		alternatives := make([]*models.Tool, 0, len(entry.Alternatives))
		for _, altID := range entry.Alternatives {
			if alt, ok := byID[altID]; ok && altID != entry.ToolID {
				alternatives = append(alternatives, alt)
			}
		}

		recs = append(recs, models.Recommendation{
			Tool:         tool,
			Reasoning:    entry.Reasoning,
			MatchScore:   clamp(entry.MatchScore, 0, 100),
			Pros:         entry.Pros,
			Cons:         entry.Cons,
			Alternatives: alternatives,
		})
		if len(recs) == maxRecommendations {
			break
		}
	}
	return recs, nil
}

// extractJSON strips markdown code fences some models wrap around JSON.
func extractJSON(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}
