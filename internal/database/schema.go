// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package database

import (
	"context"
	"fmt"
)

// schemaStatements creates all tables. List-valued tool fields (tasks, pros,
// cons, use_cases) and blog tags are stored as JSON-encoded VARCHAR so rows
// scan with plain database/sql types.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tools (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		description VARCHAR NOT NULL,
		category VARCHAR NOT NULL,
		pricing VARCHAR NOT NULL,
		rating DOUBLE,
		popularity_score BIGINT,
		has_api BOOLEAN NOT NULL DEFAULT false,
		tasks VARCHAR NOT NULL DEFAULT '[]',
		pros VARCHAR NOT NULL DEFAULT '[]',
		cons VARCHAR NOT NULL DEFAULT '[]',
		use_cases VARCHAR NOT NULL DEFAULT '[]',
		website_url VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id VARCHAR PRIMARY KEY,
		tool_id VARCHAR NOT NULL,
		user_id VARCHAR NOT NULL,
		rating INTEGER NOT NULL,
		comment VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookmarks (
		id VARCHAR PRIMARY KEY,
		tool_id VARCHAR NOT NULL,
		user_id VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tool_views (
		id VARCHAR PRIMARY KEY,
		tool_id VARCHAR NOT NULL,
		user_id VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id VARCHAR PRIMARY KEY,
		slug VARCHAR NOT NULL UNIQUE,
		title VARCHAR NOT NULL,
		excerpt VARCHAR NOT NULL DEFAULT '',
		content VARCHAR NOT NULL,
		author VARCHAR NOT NULL DEFAULT '',
		tags VARCHAR NOT NULL DEFAULT '[]',
		published BOOLEAN NOT NULL DEFAULT false,
		published_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id VARCHAR PRIMARY KEY,
		tool_name VARCHAR NOT NULL,
		website_url VARCHAR NOT NULL,
		description VARCHAR NOT NULL,
		category VARCHAR NOT NULL DEFAULT '',
		pricing VARCHAR NOT NULL DEFAULT '',
		email VARCHAR NOT NULL DEFAULT '',
		status VARCHAR NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		email VARCHAR NOT NULL,
		subject VARCHAR NOT NULL DEFAULT '',
		message VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
		id VARCHAR PRIMARY KEY,
		email VARCHAR NOT NULL UNIQUE,
		active BOOLEAN NOT NULL DEFAULT true,
		subscribed_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS category_subscriptions (
		id VARCHAR PRIMARY KEY,
		email VARCHAR NOT NULL,
		category VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (email, category)
	)`,
	`CREATE TABLE IF NOT EXISTS notification_log (
		id VARCHAR PRIMARY KEY,
		email VARCHAR NOT NULL,
		tool_id VARCHAR NOT NULL,
		sent_at TIMESTAMP NOT NULL,
		UNIQUE (email, tool_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_tool ON reviews (tool_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookmarks_tool ON bookmarks (tool_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookmarks_user ON bookmarks (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_views_tool ON tool_views (tool_id)`,
	`CREATE INDEX IF NOT EXISTS idx_views_created ON tool_views (created_at)`,
}

// initSchema creates all tables and indexes if they do not exist.
func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
