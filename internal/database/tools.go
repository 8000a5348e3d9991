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
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/aitools-explorer/backend/internal/models"
)

// ToolFilter narrows and orders a tool listing. Zero values mean "no filter".
type ToolFilter struct {
	Search   string
	Category string
	Pricing  string
	HasAPI   *bool
	// Sort is one of rating, popularity, name, newest. Empty means rating.
	Sort   string
	Limit  int
	Offset int
}

const toolColumns = `id, name, description, category, pricing, rating, popularity_score,
	has_api, tasks, pros, cons, use_cases, website_url, created_at, updated_at`

// ListTools returns tools matching the filter and the total matching count
// (ignoring pagination) for list responses.
func (db *DB) ListTools(ctx context.Context, filter ToolFilter) ([]*models.Tool, int, error) {
	where, args := toolFilterSQL(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM tools" + where
	if err := db.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tools: %w", err)
	}

	query := "SELECT " + toolColumns + " FROM tools" + where + toolOrderSQL(filter.Sort)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	tools, err := scanTools(rows)
	if err != nil {
		return nil, 0, err
	}
	return tools, total, nil
}

// AllTools returns the full catalog ordered by id. The recommendation matcher
// and sitemap read the catalog fresh on every call.
func (db *DB) AllTools(ctx context.Context) ([]*models.Tool, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+toolColumns+" FROM tools ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()
	return scanTools(rows)
}

// GetTool returns one tool by id, or ErrNotFound.
func (db *DB) GetTool(ctx context.Context, id string) (*models.Tool, error) {
	row := db.conn.QueryRowContext(ctx, "SELECT "+toolColumns+" FROM tools WHERE id = ?", id)
	tool, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tool %s: %w", id, err)
	}
	return tool, nil
}

// CreateTool inserts a new tool. A missing ID is generated; timestamps are
// set server-side.
func (db *DB) CreateTool(ctx context.Context, tool *models.Tool) error {
	if tool.ID == "" {
		tool.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	tool.CreatedAt = now
	tool.UpdatedAt = now

	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}

	tasks, pros, cons, useCases, err := encodeToolLists(tool)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx, `INSERT INTO tools (`+toolColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tool.ID, tool.Name, tool.Description, string(tool.Category), string(tool.Pricing),
		tool.Rating, tool.PopularityScore, tool.HasAPI,
		tasks, pros, cons, useCases, tool.WebsiteURL, tool.CreatedAt, tool.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tool: %w", err)
	}
	return nil
}

// UpdateTool replaces all mutable fields of an existing tool.
func (db *DB) UpdateTool(ctx context.Context, tool *models.Tool) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}
	tool.UpdatedAt = time.Now().UTC()

	tasks, pros, cons, useCases, err := encodeToolLists(tool)
	if err != nil {
		return err
	}

	res, err := db.conn.ExecContext(ctx, `UPDATE tools SET
		name = ?, description = ?, category = ?, pricing = ?, rating = ?,
		popularity_score = ?, has_api = ?, tasks = ?, pros = ?, cons = ?,
		use_cases = ?, website_url = ?, updated_at = ?
		WHERE id = ?`,
		tool.Name, tool.Description, string(tool.Category), string(tool.Pricing),
		tool.Rating, tool.PopularityScore, tool.HasAPI,
		tasks, pros, cons, useCases, tool.WebsiteURL, tool.UpdatedAt, tool.ID)
	if err != nil {
		return fmt.Errorf("failed to update tool %s: %w", tool.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTool hard-deletes a tool and its engagement rows. Engagement tables
// are otherwise append-only; this is the single delete path.
func (db *DB) DeleteTool(ctx context.Context, id string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "DELETE FROM tools WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tool %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	for _, table := range []string{"reviews", "bookmarks", "tool_views"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE tool_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete %s for tool %s: %w", table, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tool delete: %w", err)
	}
	return nil
}

// toolFilterSQL builds the WHERE clause for a filter using the appended
// condition pattern.
func toolFilterSQL(filter ToolFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.Search != "" {
		where += " AND (name ILIKE ? OR description ILIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Pricing != "" {
		where += " AND pricing = ?"
		args = append(args, filter.Pricing)
	}
	if filter.HasAPI != nil {
		where += " AND has_api = ?"
		args = append(args, *filter.HasAPI)
	}
	return where, args
}

func toolOrderSQL(sort string) string {
	switch sort {
	case "popularity":
		return " ORDER BY popularity_score DESC NULLS LAST, id ASC"
	case "name":
		return " ORDER BY name ASC, id ASC"
	case "newest":
		return " ORDER BY created_at DESC, id ASC"
	default:
		return " ORDER BY rating DESC NULLS LAST, id ASC"
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTool(row rowScanner) (*models.Tool, error) {
	var (
		tool       models.Tool
		category   string
		pricing    string
		rating     sql.NullFloat64
		popularity sql.NullInt64
		tasks      string
		pros       string
		cons       string
		useCases   string
	)
	err := row.Scan(&tool.ID, &tool.Name, &tool.Description, &category, &pricing,
		&rating, &popularity, &tool.HasAPI, &tasks, &pros, &cons, &useCases,
		&tool.WebsiteURL, &tool.CreatedAt, &tool.UpdatedAt)
	if err != nil {
		return nil, err
	}

	tool.Category = models.Category(category)
	tool.Pricing = models.Pricing(pricing)
	if rating.Valid {
		tool.Rating = &rating.Float64
	}
	if popularity.Valid {
		tool.PopularityScore = &popularity.Int64
	}
	for _, pair := range []struct {
		raw  string
		dest *[]string
	}{
		{tasks, &tool.Tasks},
		{pros, &tool.Pros},
		{cons, &tool.Cons},
		{useCases, &tool.UseCases},
	} {
		if err := decodeStringList(pair.raw, pair.dest); err != nil {
			return nil, fmt.Errorf("failed to decode list field for tool %s: %w", tool.ID, err)
		}
	}
	return &tool, nil
}

func scanTools(rows *sql.Rows) ([]*models.Tool, error) {
	var tools []*models.Tool
	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool row: %w", err)
		}
		tools = append(tools, tool)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tool row iteration failed: %w", err)
	}
	return tools, nil
}

func encodeToolLists(tool *models.Tool) (tasks, pros, cons, useCases string, err error) {
	encode := func(list []string) (string, error) {
		if list == nil {
			return "[]", nil
		}
		b, err := json.Marshal(list)
		if err != nil {
			return "", fmt.Errorf("failed to encode list field: %w", err)
		}
		return string(b), nil
	}
	if tasks, err = encode(tool.Tasks); err != nil {
		return
	}
	if pros, err = encode(tool.Pros); err != nil {
		return
	}
	if cons, err = encode(tool.Cons); err != nil {
		return
	}
	useCases, err = encode(tool.UseCases)
	return
}

func decodeStringList(raw string, dest *[]string) error {
	if strings.TrimSpace(raw) == "" {
		*dest = nil
		return nil
	}
	return json.Unmarshal([]byte(raw), dest)
}
