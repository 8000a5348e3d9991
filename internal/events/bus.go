// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package events carries view events from the HTTP handlers to a persisting
// consumer over an in-process Watermill Pub/Sub, keeping the engagement
// write off the request hot path. Single-process deployment; no broker.
package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ViewTopic is the Pub/Sub topic for tool view events.
const ViewTopic = "engagement.views"

// ViewEvent is the payload of one recorded view.
type ViewEvent struct {
	ToolID     string    `json:"tool_id"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Bus wraps the in-process Pub/Sub.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates the bus. Published messages are buffered so a slow consumer
// does not block request handlers.
func NewBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 256,
		}, logger),
	}
}

// PublishView emits one view event.
func (b *Bus) PublishView(event *ViewEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode view event: %w", err)
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := b.pubsub.Publish(ViewTopic, msg); err != nil {
		return fmt.Errorf("failed to publish view event: %w", err)
	}
	return nil
}

// Subscriber exposes the underlying subscriber for consumers.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close shuts the Pub/Sub down, closing all subscriber channels.
func (b *Bus) Close() error {
	if err := b.pubsub.Close(); err != nil {
		return fmt.Errorf("failed to close event bus: %w", err)
	}
	return nil
}
