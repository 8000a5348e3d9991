// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aitools-explorer/backend/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()

	m, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      testSecret,
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	return m
}

func TestNewJWTManagerRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTManager(&config.SecurityConfig{JWTSecret: "short"})
	if err == nil {
		t.Error("expected error for short secret")
	}
}

func TestGenerateAndVerify(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	token, err := m.Generate("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Username != "admin" || claims.Role != RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsGarbageAndWrongSecret(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	if _, err := m.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}

	other, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret: "ffffffffffffffffffffffffffffffff",
	})
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	token, err := other.Generate("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestCheckAdminCredentials(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}

	tests := []struct {
		name     string
		cfg      config.SecurityConfig
		username string
		password string
		want     bool
	}{
		{
			name:     "bcrypt_match",
			cfg:      config.SecurityConfig{AdminUsername: "admin", AdminPassword: string(hash)},
			username: "admin", password: "s3cret", want: true,
		},
		{
			name:     "bcrypt_mismatch",
			cfg:      config.SecurityConfig{AdminUsername: "admin", AdminPassword: string(hash)},
			username: "admin", password: "wrong", want: false,
		},
		{
			name:     "plaintext_match",
			cfg:      config.SecurityConfig{AdminUsername: "admin", AdminPassword: "devpass"},
			username: "admin", password: "devpass", want: true,
		},
		{
			name:     "wrong_username",
			cfg:      config.SecurityConfig{AdminUsername: "admin", AdminPassword: "devpass"},
			username: "root", password: "devpass", want: false,
		},
		{
			name:     "unconfigured",
			cfg:      config.SecurityConfig{},
			username: "admin", password: "anything", want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CheckAdminCredentials(&tt.cfg, tt.username, tt.password); got != tt.want {
				t.Errorf("CheckAdminCredentials = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthenticateMiddleware(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	adminToken, err := m.Generate("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	userToken, err := m.Generate("user", "viewer")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var gotClaims *Claims
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid_admin", "Bearer " + adminToken, http.StatusOK},
		{"wrong_role", "Bearer " + userToken, http.StatusUnauthorized},
		{"missing_header", "", http.StatusUnauthorized},
		{"malformed_header", "Token abc", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	if gotClaims == nil || gotClaims.Username != "admin" {
		t.Errorf("expected admin claims in context, got %+v", gotClaims)
	}
}
