// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aitools-explorer/backend/internal/models"
)

const maxRecommendations = 3

// fallbackScore computes the deterministic heuristic score for one tool:
// rating*20 + popularity/1000, plus budget and API bonuses.
func fallbackScore(tool *models.Tool, req *models.MatchRequest) float64 {
	score := tool.RatingValue()*20 + float64(tool.PopularityValue())/1000

	switch req.Budget {
	case models.BudgetFree:
		if tool.Pricing == models.PricingFree {
			score += 50
		}
	case models.BudgetUnder20:
		if tool.Pricing == models.PricingFree || tool.Pricing == models.PricingFreemium {
			score += 30
		}
	}

	if strings.Contains(strings.ToLower(req.Requirements), "api") && tool.HasAPI {
		score += 30
	}
	return score
}

// fallback ranks all tools by the heuristic score, descending with id
// ascending tie-break, and returns the top 3. Alternatives are always empty
// on this path.
func fallback(tools []*models.Tool, req *models.MatchRequest) []models.Recommendation {
	type scored struct {
		tool  *models.Tool
		score float64
	}

	ranked := make([]scored, 0, len(tools))
	for _, tool := range tools {
		ranked = append(ranked, scored{tool: tool, score: fallbackScore(tool, req)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].tool.ID < ranked[j].tool.ID
	})

	n := len(ranked)
	if n > maxRecommendations {
		n = maxRecommendations
	}

	recs := make([]models.Recommendation, 0, n)
	for _, entry := range ranked[:n] {
		recs = append(recs, models.Recommendation{
			Tool: entry.tool,
			Reasoning: fmt.Sprintf(
				"%s is a strong match: rated %.1f/5 with %d recorded uses in its category.",
				entry.tool.Name, entry.tool.RatingValue(), entry.tool.PopularityValue()),
			MatchScore:   clamp(entry.score, 0, 100),
			Pros:         entry.tool.Pros,
			Cons:         entry.tool.Cons,
			Alternatives: []*models.Tool{},
		})
	}
	return recs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
