// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package events

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/models"
)

// ViewStore persists view events. Satisfied by *database.DB.
type ViewStore interface {
	InsertView(ctx context.Context, view *models.ToolView) error
}

// Consumer drains the view topic and persists each event. It implements
// suture.Service and runs under the supervisor tree.
type Consumer struct {
	bus   *Bus
	store ViewStore
}

// NewConsumer wires the consumer to its bus and store.
func NewConsumer(bus *Bus, store ViewStore) *Consumer {
	return &Consumer{bus: bus, store: store}
}

// Serve consumes until the context is canceled or the subscription closes.
// A malformed or unpersistable event is logged and acked; one bad event must
// not wedge the stream.
func (c *Consumer) Serve(ctx context.Context) error {
	messages, err := c.bus.Subscriber().Subscribe(ctx, ViewTopic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", ViewTopic, err)
	}
	logging.Info().Str("topic", ViewTopic).Msg("View event consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("subscription to %s closed", ViewTopic)
			}

			var event ViewEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logging.Error().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed view event")
				msg.Ack()
				continue
			}

			view := &models.ToolView{ToolID: event.ToolID, UserID: event.UserID}
			if err := c.store.InsertView(ctx, view); err != nil {
				logging.Error().Err(err).Str("tool_id", event.ToolID).Msg("Failed to persist view event")
			}
			msg.Ack()
		}
	}
}

// String names the service in supervisor logs.
func (c *Consumer) String() string { return "view-event-consumer" }
