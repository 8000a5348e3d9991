// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/aitools-explorer/backend/internal/models"
)

const blogColumns = `id, slug, title, excerpt, content, author, tags,
	published, published_at, created_at, updated_at`

// ListBlogPosts returns posts newest first. When publishedOnly is true,
// drafts are excluded; the public listing always sets it.
func (db *DB) ListBlogPosts(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.BlogPost, error) {
	query := "SELECT " + blogColumns + " FROM blog_posts"
	if publishedOnly {
		query += " WHERE published = true"
	}
	query += " ORDER BY COALESCE(published_at, created_at) DESC, id ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.BlogPost
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("blog post row iteration failed: %w", err)
	}
	return posts, nil
}

// GetBlogPostBySlug returns one published post by slug, or ErrNotFound.
// Drafts are not reachable by slug.
func (db *DB) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+blogColumns+" FROM blog_posts WHERE slug = ? AND published = true", slug)
	post, err := scanBlogPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog post %s: %w", slug, err)
	}
	return post, nil
}

// CreateBlogPost inserts a post. PublishedAt is stamped when the post is
// created already published.
func (db *DB) CreateBlogPost(ctx context.Context, post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Published && post.PublishedAt == nil {
		post.PublishedAt = &now
	}

	tags, err := encodeTags(post.Tags)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx, `INSERT INTO blog_posts (`+blogColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Slug, post.Title, post.Excerpt, post.Content, post.Author,
		tags, post.Published, post.PublishedAt, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert blog post: %w", err)
	}
	return nil
}

// UpdateBlogPost replaces all mutable fields of a post. Publishing a draft
// stamps PublishedAt.
func (db *DB) UpdateBlogPost(ctx context.Context, post *models.BlogPost) error {
	now := time.Now().UTC()
	post.UpdatedAt = now
	if post.Published && post.PublishedAt == nil {
		post.PublishedAt = &now
	}

	tags, err := encodeTags(post.Tags)
	if err != nil {
		return err
	}

	res, err := db.conn.ExecContext(ctx, `UPDATE blog_posts SET
		slug = ?, title = ?, excerpt = ?, content = ?, author = ?, tags = ?,
		published = ?, published_at = ?, updated_at = ?
		WHERE id = ?`,
		post.Slug, post.Title, post.Excerpt, post.Content, post.Author, tags,
		post.Published, post.PublishedAt, post.UpdatedAt, post.ID)
	if err != nil {
		return fmt.Errorf("failed to update blog post %s: %w", post.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBlogPost hard-deletes a post by id.
func (db *DB) DeleteBlogPost(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBlogPost(row rowScanner) (*models.BlogPost, error) {
	var (
		post        models.BlogPost
		tags        string
		publishedAt sql.NullTime
	)
	err := row.Scan(&post.ID, &post.Slug, &post.Title, &post.Excerpt, &post.Content,
		&post.Author, &tags, &post.Published, &publishedAt, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	if err := decodeStringList(tags, &post.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for post %s: %w", post.ID, err)
	}
	return &post, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}
