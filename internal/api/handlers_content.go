// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/mailer"
	"github.com/aitools-explorer/backend/internal/models"
)

// handleCreateSubmission serves POST /api/v1/submissions. The submission is
// stored and an admin notification email is dispatched best-effort; a failed
// send never fails the submission.
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SubmissionRequest
	if !decodeRequest(rw, r, &req) {
		return
	}
	if req.Category != "" && !models.Category(req.Category).IsValid() {
		rw.BadRequest("unknown category: " + req.Category)
		return
	}

	sub := &models.Submission{
		ToolName:    req.ToolName,
		WebsiteURL:  req.WebsiteURL,
		Description: req.Description,
		Category:    req.Category,
		Pricing:     req.Pricing,
		Email:       req.Email,
	}
	if err := s.db.InsertSubmission(r.Context(), sub); err != nil {
		storeError(rw, r, err, "submission")
		return
	}

	s.dispatchEmail(r, mailer.EmailToolSubmission, map[string]string{
		"tool_name":   sub.ToolName,
		"website_url": sub.WebsiteURL,
		"description": sub.Description,
		"email":       sub.Email,
	}, s.cfg.Mail.AdminEmail)

	rw.Created(sub)
}

// handleListSubmissions serves the admin GET /api/v1/submissions?status=.
func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := models.SubmissionStatus(r.URL.Query().Get("status"))
	switch status {
	case "", models.SubmissionPending, models.SubmissionApproved, models.SubmissionRejected:
	default:
		rw.BadRequest("unknown submission status: " + string(status))
		return
	}

	subs, err := s.db.ListSubmissions(r.Context(), status)
	if err != nil {
		storeError(rw, r, err, "submissions")
		return
	}
	if subs == nil {
		subs = []*models.Submission{}
	}
	rw.Success(subs)
}

// handleUpdateSubmissionStatus serves the admin PUT
// /api/v1/submissions/{id}/status.
func (s *Server) handleUpdateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending approved rejected"`
	}
	if !decodeRequest(rw, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.db.UpdateSubmissionStatus(r.Context(), id, models.SubmissionStatus(req.Status)); err != nil {
		storeError(rw, r, err, "submission")
		return
	}
	rw.Success(map[string]string{"id": id, "status": req.Status})
}

// handleCreateContact serves POST /api/v1/contact.
func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ContactRequest
	if !decodeRequest(rw, r, &req) {
		return
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.db.InsertContactMessage(r.Context(), msg); err != nil {
		storeError(rw, r, err, "contact message")
		return
	}

	s.dispatchEmail(r, mailer.EmailContact, map[string]string{
		"name":    msg.Name,
		"email":   msg.Email,
		"subject": msg.Subject,
		"message": msg.Message,
	}, s.cfg.Mail.AdminEmail)

	rw.Created(msg)
}

// handleListContacts serves the admin GET /api/v1/contact.
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	msgs, err := s.db.ListContactMessages(r.Context())
	if err != nil {
		storeError(rw, r, err, "contact messages")
		return
	}
	if msgs == nil {
		msgs = []*models.ContactMessage{}
	}
	rw.Success(msgs)
}

// handleSubscribe serves POST /api/v1/newsletter/subscribe. First-time
// subscribers get a welcome email; resubscribing is idempotent.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SubscribeRequest
	if !decodeRequest(rw, r, &req) {
		return
	}
	for _, c := range req.Categories {
		if !models.Category(c).IsValid() {
			rw.BadRequest("unknown category: " + c)
			return
		}
	}

	fresh, err := s.db.UpsertSubscriber(r.Context(), req.Email)
	if err != nil {
		storeError(rw, r, err, "subscriber")
		return
	}
	for _, c := range req.Categories {
		if err := s.db.InsertCategorySubscription(r.Context(), req.Email, models.Category(c)); err != nil {
			storeError(rw, r, err, "category subscription")
			return
		}
	}

	if fresh {
		s.dispatchEmail(r, mailer.EmailNewsletterWelcome, nil, req.Email)
	}

	rw.Success(map[string]any{"email": req.Email, "subscribed": true, "new": fresh})
}

// dispatchEmail renders and sends a transactional email without failing the
// request on error. Outcomes are counted for observability.
func (s *Server) dispatchEmail(r *http.Request, emailType mailer.EmailType, data map[string]string, to string) {
	if to == "" {
		return
	}
	subject, body, err := mailer.Render(emailType, data)
	if err == nil {
		err = s.sender.Send(r.Context(), &mailer.Message{To: to, Subject: subject, Body: body})
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("email_type", string(emailType)).Msg("Failed to dispatch email")
		recordEmail(emailType, false)
		return
	}
	recordEmail(emailType, true)
}
