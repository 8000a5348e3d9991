// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package models defines the value types shared across the backend.
//
// Entities are explicit immutable-by-convention structs validated at the
// data-access boundary, so downstream scoring code never handles missing or
// mistyped fields defensively.
package models

import (
	"fmt"
	"time"
)

// Category is the closed set of tool categories.
type Category string

// Tool categories.
const (
	CategoryWriting      Category = "writing"
	CategoryCoding       Category = "coding"
	CategoryDesign       Category = "design"
	CategoryMarketing    Category = "marketing"
	CategoryProductivity Category = "productivity"
	CategoryResearch     Category = "research"
	CategoryAudio        Category = "audio"
	CategoryVideo        Category = "video"
	CategoryData         Category = "data"
	CategoryChat         Category = "chat"
)

// Categories lists all valid tool categories.
var Categories = []Category{
	CategoryWriting, CategoryCoding, CategoryDesign, CategoryMarketing,
	CategoryProductivity, CategoryResearch, CategoryAudio, CategoryVideo,
	CategoryData, CategoryChat,
}

// IsValid reports whether the category is a member of the closed set.
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Pricing is the pricing tier of a tool.
type Pricing string

// Pricing tiers.
const (
	PricingFree       Pricing = "free"
	PricingFreemium   Pricing = "freemium"
	PricingPaid       Pricing = "paid"
	PricingEnterprise Pricing = "enterprise"
)

// IsValid reports whether the pricing tier is known.
func (p Pricing) IsValid() bool {
	switch p {
	case PricingFree, PricingFreemium, PricingPaid, PricingEnterprise:
		return true
	}
	return false
}

// Tool is a catalog entry describing one third-party AI product.
//
// Rating is nil when a tool has no reviews yet; consumers treat absence as 0.
// PopularityScore is nil until engagement data exists.
type Tool struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        Category  `json:"category"`
	Pricing         Pricing   `json:"pricing"`
	Rating          *float64  `json:"rating"`
	PopularityScore *int64    `json:"popularity_score"`
	HasAPI          bool      `json:"has_api"`
	Tasks           []string  `json:"tasks"`
	Pros            []string  `json:"pros"`
	Cons            []string  `json:"cons"`
	UseCases        []string  `json:"use_cases"`
	WebsiteURL      string    `json:"website_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RatingValue returns the rating, treating absence as 0.
func (t *Tool) RatingValue() float64 {
	if t.Rating == nil {
		return 0
	}
	return *t.Rating
}

// PopularityValue returns the popularity score, treating absence as 0.
func (t *Tool) PopularityValue() int64 {
	if t.PopularityScore == nil {
		return 0
	}
	return *t.PopularityScore
}

// Validate checks field invariants at the data-access boundary.
func (t *Tool) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tool id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("invalid category %q", t.Category)
	}
	if !t.Pricing.IsValid() {
		return fmt.Errorf("invalid pricing %q", t.Pricing)
	}
	if t.Rating != nil && (*t.Rating < 0 || *t.Rating > 5) {
		return fmt.Errorf("rating %v out of range [0,5]", *t.Rating)
	}
	return nil
}
