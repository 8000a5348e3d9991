// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/aitools-explorer/backend/internal/models"
)

func publishRaw(bus *Bus, payload []byte) error {
	return bus.pubsub.Publish(ViewTopic, message.NewMessage(uuid.NewString(), payload))
}

type recordingStore struct {
	mu    sync.Mutex
	views []*models.ToolView
	seen  chan struct{}
}

func newRecordingStore() *recordingStore {
	return &recordingStore{seen: make(chan struct{}, 16)}
}

func (s *recordingStore) InsertView(_ context.Context, view *models.ToolView) error {
	s.mu.Lock()
	s.views = append(s.views, view)
	s.mu.Unlock()
	s.seen <- struct{}{}
	return nil
}

func (s *recordingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

func TestPublishAndConsumeView(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	defer func() { _ = bus.Close() }()

	store := newRecordingStore()
	consumer := NewConsumer(bus, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- consumer.Serve(ctx) }()

	// Give the subscription a moment to attach before publishing.
	time.Sleep(50 * time.Millisecond)

	if err := bus.PublishView(&ViewEvent{ToolID: "writeflow", UserID: "u1"}); err != nil {
		t.Fatalf("PublishView failed: %v", err)
	}

	select {
	case <-store.seen:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for view to persist")
	}

	if store.count() != 1 {
		t.Fatalf("expected 1 persisted view, got %d", store.count())
	}
	store.mu.Lock()
	view := store.views[0]
	store.mu.Unlock()
	if view.ToolID != "writeflow" || view.UserID != "u1" {
		t.Errorf("unexpected view: %+v", view)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop on context cancel")
	}
}

func TestConsumerSkipsMalformedPayload(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	defer func() { _ = bus.Close() }()

	store := newRecordingStore()
	consumer := NewConsumer(bus, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = consumer.Serve(ctx) }()
	time.Sleep(50 * time.Millisecond)

	// Publish garbage directly, then a valid event; only the valid one lands.
	if err := publishRaw(bus, []byte("{not json")); err != nil {
		t.Fatalf("publishRaw failed: %v", err)
	}
	if err := bus.PublishView(&ViewEvent{ToolID: "ok"}); err != nil {
		t.Fatalf("PublishView failed: %v", err)
	}

	select {
	case <-store.seen:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for valid view")
	}
	if store.count() != 1 {
		t.Errorf("expected malformed event dropped, got %d views", store.count())
	}
}

func TestPublishViewStampsTime(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)
	defer func() { _ = bus.Close() }()

	event := &ViewEvent{ToolID: "a"}
	if err := bus.PublishView(event); err != nil {
		t.Fatalf("PublishView failed: %v", err)
	}
	if event.OccurredAt.IsZero() {
		t.Error("expected OccurredAt stamped")
	}
}
