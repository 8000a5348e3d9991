// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package sitemap renders the sitemap.xml document: static routes, every
// tool detail page, and every published blog post. Output is byte-stable for
// unchanged data within a UTC day.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/aitools-explorer/backend/internal/models"
)

// staticRoutes are the fixed site pages, in emission order.
var staticRoutes = []string{"/", "/tools", "/trending", "/blog", "/submit", "/contact"}

// Source is the persistence surface the generator needs. Satisfied by
// *database.DB.
type Source interface {
	AllTools(ctx context.Context) ([]*models.Tool, error)
	ListBlogPosts(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.BlogPost, error)
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// Generator builds sitemap documents.
type Generator struct {
	source         Source
	defaultBaseURL string
	now            func() time.Time
}

// NewGenerator wires the generator. defaultBaseURL applies when a request
// does not supply one.
func NewGenerator(source Source, defaultBaseURL string) *Generator {
	return &Generator{source: source, defaultBaseURL: defaultBaseURL, now: time.Now}
}

// Generate renders the sitemap for the given base URL (or the configured
// default when empty).
func (g *Generator) Generate(ctx context.Context, baseURL string) ([]byte, error) {
	if baseURL == "" {
		baseURL = g.defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	today := g.now().UTC().Format("2006-01-02")

	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, route := range staticRoutes {
		loc := baseURL + route
		if route == "/" {
			loc = baseURL + "/"
		}
		set.URLs = append(set.URLs, urlEntry{Loc: loc, LastMod: today})
	}

	tools, err := g.source.AllTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tools for sitemap: %w", err)
	}
	for _, tool := range tools {
		set.URLs = append(set.URLs, urlEntry{
			Loc:     fmt.Sprintf("%s/tools/%s", baseURL, tool.ID),
			LastMod: lastMod(tool.UpdatedAt, today),
		})
	}

	posts, err := g.source.ListBlogPosts(ctx, true, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load blog posts for sitemap: %w", err)
	}
	for _, post := range posts {
		mod := post.UpdatedAt
		if post.PublishedAt != nil && post.PublishedAt.After(mod) {
			mod = *post.PublishedAt
		}
		set.URLs = append(set.URLs, urlEntry{
			Loc:     fmt.Sprintf("%s/blog/%s", baseURL, post.Slug),
			LastMod: lastMod(mod, today),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// ErrorBody is the degraded XML document served with a 500 when generation
// fails.
func ErrorBody() []byte {
	return []byte(xml.Header + "<error>sitemap generation failed</error>\n")
}

func lastMod(t time.Time, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.UTC().Format("2006-01-02")
}
