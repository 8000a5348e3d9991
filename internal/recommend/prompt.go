// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package recommend

import (
	"fmt"
	"strings"

	"github.com/aitools-explorer/backend/internal/models"
)

const systemPrompt = `You are a recommendation engine for a directory of AI tools.
Given a catalog and a user's task, reply with a JSON object of the form:
{"recommendations":[{"tool_id":"...","reasoning":"...","match_score":0-100,"pros":["..."],"cons":["..."],"alternatives":["tool_id"]}]}
Recommend at most 3 tools. Only use tool_id values from the catalog. Reply with JSON only.`

// buildUserPrompt serializes the catalog compactly and appends the user's
// task, budget, and requirements.
func buildUserPrompt(tools []*models.Tool, req *models.MatchRequest) string {
	var b strings.Builder
	b.WriteString("Catalog:\n")
	for _, tool := range tools {
		fmt.Fprintf(&b, "- id=%s name=%q category=%s pricing=%s rating=%.1f api=%t tasks=%s\n  %s\n",
			tool.ID, tool.Name, tool.Category, tool.Pricing, tool.RatingValue(),
			tool.HasAPI, strings.Join(tool.Tasks, ","), tool.Description)
	}

	fmt.Fprintf(&b, "\nUser task: %s\n", req.Task)
	if req.Budget != models.BudgetUnspecified {
		fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	}
	if req.Requirements != "" {
		fmt.Fprintf(&b, "Requirements: %s\n", req.Requirements)
	}
	return b.String()
}
