// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package models

// Budget is the user's spending constraint in a recommendation request.
type Budget string

// Budget tiers. Unknown values are treated as BudgetUnspecified.
const (
	BudgetFree        Budget = "free"
	BudgetUnder20     Budget = "under_20"
	BudgetUnder50     Budget = "under_50"
	BudgetUnder100    Budget = "under_100"
	BudgetFlexible    Budget = "flexible"
	BudgetUnspecified Budget = ""
)

// MatchRequest describes what the user is trying to accomplish. Requirements
// is free text; the substring "api" (any case) is significant to the fallback
// heuristic.
type MatchRequest struct {
	Task         string `json:"task"`
	Budget       Budget `json:"budget,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}

// Recommendation is one matched tool with the matcher's reasoning.
type Recommendation struct {
	Tool         *Tool    `json:"tool"`
	Reasoning    string   `json:"reasoning"`
	MatchScore   float64  `json:"match_score"`
	Pros         []string `json:"pros,omitempty"`
	Cons         []string `json:"cons,omitempty"`
	Alternatives []*Tool  `json:"alternatives"`
}

// MatchSource records which engine produced a set of recommendations.
type MatchSource string

// Match sources.
const (
	MatchSourceModel     MatchSource = "model"
	MatchSourceHeuristic MatchSource = "heuristic"
)

// MatchOutcome is the full result of one recommendation request. Source and
// FallbackReason let callers and tests distinguish "model path succeeded"
// from "model path failed, heuristic used" without reading logs.
type MatchOutcome struct {
	Recommendations []Recommendation `json:"recommendations"`
	Source          MatchSource      `json:"source"`
	FallbackReason  string           `json:"fallback_reason,omitempty"`
}
