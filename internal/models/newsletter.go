// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package models

import "time"

// Subscriber is a newsletter recipient. Subscribing twice with the same
// email reactivates the existing row instead of inserting a duplicate.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Active       bool      `json:"active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// CategorySubscription registers interest in new tools of one category.
// The notification run emails each subscriber one digest covering all of
// their matched categories.
type CategorySubscription struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRecord is one row of the notification log. It exists so a
// repeated run never re-sends the same tool to the same subscriber.
type NotificationRecord struct {
	ID     string    `json:"id"`
	Email  string    `json:"email"`
	ToolID string    `json:"tool_id"`
	SentAt time.Time `json:"sent_at"`
}
