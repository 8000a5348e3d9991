// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aitools-explorer/backend/internal/mailer"
	"github.com/aitools-explorer/backend/internal/models"
)

type fakeStore struct {
	tools    []*models.Tool
	subs     []*models.CategorySubscription
	notified map[string]bool
	recorded map[string][]string
	toolsErr error

	gotSince time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notified: make(map[string]bool),
		recorded: make(map[string][]string),
	}
}

func (f *fakeStore) ToolsCreatedSince(_ context.Context, since time.Time) ([]*models.Tool, error) {
	f.gotSince = since
	return f.tools, f.toolsErr
}

func (f *fakeStore) CategorySubscriptions(context.Context) ([]*models.CategorySubscription, error) {
	return f.subs, nil
}

func (f *fakeStore) WasNotified(_ context.Context, email, toolID string) (bool, error) {
	return f.notified[email+"/"+toolID], nil
}

func (f *fakeStore) RecordNotifications(_ context.Context, email string, toolIDs []string) error {
	f.recorded[email] = append(f.recorded[email], toolIDs...)
	for _, id := range toolIDs {
		f.notified[email+"/"+id] = true
	}
	return nil
}

type fakeSender struct {
	sent []*mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func tool(id string, category models.Category) *models.Tool {
	return &models.Tool{ID: id, Name: "Tool " + id, Category: category, Description: "desc " + id}
}

func TestRunNoNewTools(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	sender := &fakeSender{}
	runner := NewRunner(store, sender, "https://example.com", 24)

	result, err := runner.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Success || result.Sent != 0 || result.NewTools != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	// Default lookback of 24h applies when hours_back is omitted.
	want := time.Now().UTC().Add(-24 * time.Hour)
	if diff := store.gotSince.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expected ~24h lookback, got since=%v", store.gotSince)
	}
}

func TestRunAggregatesPerSubscriber(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.tools = []*models.Tool{
		tool("w1", models.CategoryWriting),
		tool("c1", models.CategoryCoding),
		tool("d1", models.CategoryDesign),
	}
	store.subs = []*models.CategorySubscription{
		{Email: "both@example.com", Category: models.CategoryWriting},
		{Email: "both@example.com", Category: models.CategoryCoding},
		{Email: "design@example.com", Category: models.CategoryDesign},
		{Email: "none@example.com", Category: models.CategoryAudio},
	}
	sender := &fakeSender{}
	runner := NewRunner(store, sender, "https://example.com", 24)

	result, err := runner.Run(context.Background(), 48)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Success || result.Sent != 2 || result.NewTools != 3 || result.Errors != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 digests, got %d", len(sender.sent))
	}

	// The two-category subscriber gets one aggregated digest.
	var bothBody string
	for _, msg := range sender.sent {
		if msg.To == "both@example.com" {
			bothBody = msg.Body
		}
	}
	if !strings.Contains(bothBody, "Tool w1") || !strings.Contains(bothBody, "Tool c1") {
		t.Errorf("aggregated digest missing tools:\n%s", bothBody)
	}
	if len(store.recorded["both@example.com"]) != 2 {
		t.Errorf("expected 2 recorded notifications, got %v", store.recorded["both@example.com"])
	}
}

func TestRunDedupesAgainstLog(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.tools = []*models.Tool{tool("w1", models.CategoryWriting)}
	store.subs = []*models.CategorySubscription{
		{Email: "user@example.com", Category: models.CategoryWriting},
	}
	sender := &fakeSender{}
	runner := NewRunner(store, sender, "https://example.com", 24)

	// First run sends; second run finds everything already logged.
	for i, wantSent := range []int{1, 0} {
		result, err := runner.Run(context.Background(), 24)
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		if result.Sent != wantSent {
			t.Errorf("run %d: expected sent=%d, got %+v", i, wantSent, result)
		}
	}
	if len(sender.sent) != 1 {
		t.Errorf("expected exactly one digest across runs, got %d", len(sender.sent))
	}
}

func TestRunCountsSendErrors(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.tools = []*models.Tool{tool("w1", models.CategoryWriting)}
	store.subs = []*models.CategorySubscription{
		{Email: "user@example.com", Category: models.CategoryWriting},
	}
	sender := &fakeSender{err: errors.New("smtp down")}
	runner := NewRunner(store, sender, "https://example.com", 24)

	result, err := runner.Run(context.Background(), 24)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Success || result.Errors != 1 || result.Sent != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	// Failed sends stay out of the log so the next run retries.
	if len(store.recorded) != 0 {
		t.Errorf("failed send must not be recorded: %v", store.recorded)
	}
}

func TestRunStoreError(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.toolsErr = errors.New("db down")
	runner := NewRunner(store, &fakeSender{}, "https://example.com", 24)

	if _, err := runner.Run(context.Background(), 24); err == nil {
		t.Error("expected error when scan fails")
	}
}
