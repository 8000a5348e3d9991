// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "bad_port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "missing_db_path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database path is required",
		},
		{
			name:    "short_jwt_secret",
			mutate:  func(c *Config) { c.Security.JWTSecret = "too-short" },
			wantErr: "jwt_secret must be at least 32 characters",
		},
		{
			name:    "bad_pagination",
			mutate:  func(c *Config) { c.API.DefaultPageSize = 500 },
			wantErr: "invalid pagination defaults",
		},
		{
			name:    "bad_ratelimit_store",
			mutate:  func(c *Config) { c.RateLimit.Store = "redis" },
			wantErr: "invalid ratelimit store",
		},
		{
			name:    "bad_hours_back",
			mutate:  func(c *Config) { c.Notifications.DefaultHoursBack = 0 },
			wantErr: "default_hours_back must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEnvKeyTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"ATE_SERVER__PORT", "server.port"},
		{"ATE_DATABASE__MAX_MEMORY", "database.max_memory"},
		{"ATE_REASONING__API_KEY", "reasoning.api_key"},
		{"ATE_RATELIMIT__STORE", "ratelimit.store"},
	}

	for _, tt := range tests {
		if got := envKeyTransform(tt.input); got != tt.want {
			t.Errorf("envKeyTransform(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ATE_SERVER__PORT", "9090")
	t.Setenv("ATE_DATABASE__PATH", ":memory:")
	t.Setenv("ATE_SERVER__TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("expected in-memory database path, got %q", cfg.Database.Path)
	}
	if cfg.Server.Timeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %v", cfg.Server.Timeout)
	}
}
