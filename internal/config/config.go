// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package config provides layered configuration loading via Koanf v2.
//
// Configuration is loaded with the following precedence (highest wins):
//  1. Environment variables
//  2. Config file (config.yaml)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the AI Tools Explorer backend.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Database      DatabaseConfig      `koanf:"database"`
	Security      SecurityConfig      `koanf:"security"`
	Logging       LoggingConfig       `koanf:"logging"`
	API           APIConfig           `koanf:"api"`
	Reasoning     ReasoningConfig     `koanf:"reasoning"`
	Mail          MailConfig          `koanf:"mail"`
	RateLimit     RateLimitConfig     `koanf:"ratelimit"`
	Sitemap       SitemapConfig       `koanf:"sitemap"`
	Notifications NotificationsConfig `koanf:"notifications"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path, or ":memory:" for an in-memory database.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB thread count; 0 means runtime.NumCPU().
	Threads  int  `koanf:"threads"`
	SeedDemo bool `koanf:"seed_demo"`
}

// SecurityConfig holds authentication settings for the admin surface.
type SecurityConfig struct {
	// JWTSecret signs admin session tokens. Minimum 32 characters.
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	AdminUsername  string        `koanf:"admin_username"`
	AdminPassword  string        `koanf:"admin_password"`
	CORSOrigins    []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig holds pagination defaults for list endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// ReasoningConfig holds settings for the external reasoning (LLM) service
// used by the recommendation matcher.
type ReasoningConfig struct {
	// BaseURL is the OpenAI-compatible API root, e.g. https://api.openai.com/v1.
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
	// RequestsPerSecond paces outbound calls; 0 disables pacing.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// MailConfig holds SMTP settings for transactional email.
type MailConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
	FromName string `koanf:"from_name"`
	UseTLS   bool   `koanf:"use_tls"`
	// AdminEmail receives submission and contact notifications.
	AdminEmail string `koanf:"admin_email"`
}

// RateLimitConfig holds per-IP throttling settings.
type RateLimitConfig struct {
	// Requests/Window is the default API limit applied by the router.
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Disabled bool          `koanf:"disabled"`
	// Store selects the limiter backing for the function endpoints:
	// "badger" (durable across restarts) or "memory" (best-effort).
	Store     string `koanf:"store"`
	StorePath string `koanf:"store_path"`
}

// SitemapConfig holds sitemap generation settings.
type SitemapConfig struct {
	// BaseURL is the canonical site root used when the request does not
	// supply a base_url query parameter.
	BaseURL string `koanf:"base_url"`
}

// NotificationsConfig holds new-tool notification settings.
type NotificationsConfig struct {
	// DefaultHoursBack is the lookback window when a run request does not
	// specify hours_back.
	DefaultHoursBack int `koanf:"default_hours_back"`
}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if len(c.Security.JWTSecret) > 0 && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}
	if c.API.DefaultPageSize <= 0 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("invalid pagination defaults: default=%d max=%d",
			c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	switch c.RateLimit.Store {
	case "memory", "badger":
	default:
		return fmt.Errorf("invalid ratelimit store %q (want memory or badger)", c.RateLimit.Store)
	}
	if c.Notifications.DefaultHoursBack <= 0 {
		return fmt.Errorf("notifications default_hours_back must be positive")
	}
	return nil
}
