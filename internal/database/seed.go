// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package database

import (
	"context"
	"fmt"

	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/models"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

// SeedDemo inserts a small demo catalog when the tools table is empty. Used
// for local development and demos, gated by database.seed_demo.
func (db *DB) SeedDemo(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM tools").Scan(&count); err != nil {
		return fmt.Errorf("failed to count tools before seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	tools := []*models.Tool{
		{
			ID: "writeflow", Name: "WriteFlow", Category: models.CategoryWriting,
			Pricing: models.PricingFreemium, Rating: f64(4.6), PopularityScore: i64(84000),
			HasAPI:      true,
			Description: "Long-form drafting assistant with tone and outline controls.",
			Tasks:       []string{"blog posts", "editing", "summaries"},
			Pros:        []string{"strong long-form output", "good editor integration"},
			Cons:        []string{"free tier word cap"},
			UseCases:    []string{"content marketing", "documentation"},
			WebsiteURL:  "https://writeflow.example.com",
		},
		{
			ID: "codepilot-x", Name: "CodePilot X", Category: models.CategoryCoding,
			Pricing: models.PricingPaid, Rating: f64(4.8), PopularityScore: i64(120000),
			HasAPI:      true,
			Description: "In-editor code completion and refactoring suggestions.",
			Tasks:       []string{"code completion", "refactoring", "test generation"},
			Pros:        []string{"wide language coverage"},
			Cons:        []string{"no offline mode"},
			UseCases:    []string{"software development"},
			WebsiteURL:  "https://codepilotx.example.com",
		},
		{
			ID: "sketchmind", Name: "SketchMind", Category: models.CategoryDesign,
			Pricing: models.PricingFreemium, Rating: f64(4.3), PopularityScore: i64(56000),
			HasAPI:      false,
			Description: "Text-to-image generation tuned for product mockups.",
			Tasks:       []string{"mockups", "illustrations"},
			Pros:        []string{"fast iterations"},
			Cons:        []string{"limited style control"},
			UseCases:    []string{"product design"},
			WebsiteURL:  "https://sketchmind.example.com",
		},
		{
			ID: "promoforge", Name: "PromoForge", Category: models.CategoryMarketing,
			Pricing: models.PricingPaid, Rating: f64(4.1), PopularityScore: i64(31000),
			HasAPI:      true,
			Description: "Campaign copy and A/B variant generation.",
			Tasks:       []string{"ad copy", "email campaigns"},
			UseCases:    []string{"growth marketing"},
			WebsiteURL:  "https://promoforge.example.com",
		},
		{
			ID: "notetaker-free", Name: "NoteTaker", Category: models.CategoryProductivity,
			Pricing: models.PricingFree, Rating: f64(4.0), PopularityScore: i64(45000),
			HasAPI:      false,
			Description: "Meeting transcription and action-item extraction.",
			Tasks:       []string{"transcription", "summaries"},
			UseCases:    []string{"meetings"},
			WebsiteURL:  "https://notetaker.example.com",
		},
		{
			ID: "scholarly", Name: "Scholarly", Category: models.CategoryResearch,
			Pricing: models.PricingFreemium, Rating: f64(4.5), PopularityScore: i64(28000),
			HasAPI:      true,
			Description: "Literature search with citation-grounded answers.",
			Tasks:       []string{"literature review", "citation lookup"},
			UseCases:    []string{"academic research"},
			WebsiteURL:  "https://scholarly.example.com",
		},
		{
			ID: "voxcraft", Name: "VoxCraft", Category: models.CategoryAudio,
			Pricing: models.PricingPaid, Rating: f64(4.4), PopularityScore: i64(22000),
			HasAPI:      true,
			Description: "Voice cloning and narration for video production.",
			Tasks:       []string{"narration", "dubbing"},
			UseCases:    []string{"video production", "podcasts"},
			WebsiteURL:  "https://voxcraft.example.com",
		},
		{
			ID: "chatdesk", Name: "ChatDesk", Category: models.CategoryChat,
			Pricing: models.PricingEnterprise, Rating: f64(4.2), PopularityScore: i64(67000),
			HasAPI:      true,
			Description: "Customer-support chatbot with knowledge-base grounding.",
			Tasks:       []string{"support automation", "FAQ answering"},
			UseCases:    []string{"customer support"},
			WebsiteURL:  "https://chatdesk.example.com",
		},
	}

	for _, tool := range tools {
		if err := db.CreateTool(ctx, tool); err != nil {
			return fmt.Errorf("failed to seed tool %s: %w", tool.ID, err)
		}
	}

	post := &models.BlogPost{
		Slug:      "welcome-to-ai-tools-explorer",
		Title:     "Welcome to AI Tools Explorer",
		Excerpt:   "How we curate and rank the tools in this directory.",
		Content:   "AI Tools Explorer tracks the tools we actually use, with community reviews and engagement-based trending.",
		Author:    "Editorial Team",
		Tags:      []string{"announcements"},
		Published: true,
	}
	if err := db.CreateBlogPost(ctx, post); err != nil {
		return fmt.Errorf("failed to seed blog post: %w", err)
	}

	logging.Info().Int("tools", len(tools)).Msg("Seeded demo data")
	return nil
}
