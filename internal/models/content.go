// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package models

import "time"

// BlogPost is an editorial article. Only published posts are publicly
// readable; drafts stay behind the admin surface.
type BlogPost struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	Author      string     `json:"author,omitempty"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SubmissionStatus tracks the review state of a community tool submission.
type SubmissionStatus string

// Submission states.
const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is a community-proposed tool awaiting moderation.
type Submission struct {
	ID          string           `json:"id"`
	ToolName    string           `json:"tool_name"`
	WebsiteURL  string           `json:"website_url"`
	Description string           `json:"description"`
	Category    string           `json:"category,omitempty"`
	Pricing     string           `json:"pricing,omitempty"`
	Email       string           `json:"email,omitempty"`
	Status      SubmissionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ContactMessage is an inbound message from the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
