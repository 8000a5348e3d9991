// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleRequest struct {
	Name   string `validate:"required"`
	Email  string `validate:"required,email"`
	Rating int    `validate:"min=1,max=5"`
	Kind   string `validate:"omitempty,oneof=a b"`
}

func TestValidateStructValid(t *testing.T) {
	t.Parallel()

	req := sampleRequest{Name: "x", Email: "x@example.com", Rating: 3}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}
}

func TestValidateStructFieldErrors(t *testing.T) {
	t.Parallel()

	req := sampleRequest{Email: "nope", Rating: 9, Kind: "c"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	fields := verr.Fields()
	if len(fields) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %v", len(fields), fields)
	}

	byField := make(map[string]string)
	for _, f := range fields {
		byField[f.Field] = f.Message
	}
	if byField["name"] != "is required" {
		t.Errorf("unexpected name message %q", byField["name"])
	}
	if !strings.Contains(byField["email"], "email") {
		t.Errorf("unexpected email message %q", byField["email"])
	}
	if !strings.Contains(byField["rating"], "at most 5") {
		t.Errorf("unexpected rating message %q", byField["rating"])
	}
	if !strings.Contains(byField["kind"], "one of") {
		t.Errorf("unexpected kind message %q", byField["kind"])
	}
}
