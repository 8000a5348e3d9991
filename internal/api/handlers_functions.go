// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package api

import (
	"net/http"

	"github.com/aitools-explorer/backend/internal/logging"
	"github.com/aitools-explorer/backend/internal/mailer"
	"github.com/aitools-explorer/backend/internal/metrics"
	"github.com/aitools-explorer/backend/internal/sitemap"
)

// handleSitemap serves GET /sitemap.xml?base_url=. Failures answer a minimal
// XML error body rather than the JSON envelope.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	baseURL := r.URL.Query().Get("base_url")
	if baseURL == "" {
		baseURL = s.cfg.Sitemap.BaseURL
	}

	body, err := s.sitemapGen.Generate(r.Context(), baseURL)
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Sitemap generation failed")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(sitemap.ErrorBody())
		return
	}
	_, _ = w.Write(body)
}

// handleNotifyRun serves POST /api/v1/notifications/run, limited to 2
// requests per minute per IP.
func (s *Server) handleNotifyRun(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if !s.notifyLimiter.Allow(clientIP(r)) {
		metrics.RateLimitRejectionsTotal.WithLabelValues("notifications").Inc()
		rw.TooManyRequests("notification runs are limited to 2 per minute")
		return
	}

	var req NotifyRunRequest
	if r.ContentLength > 0 && !decodeRequest(rw, r, &req) {
		return
	}

	result, err := s.notifier.Run(r.Context(), req.HoursBack)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Notification run failed")
		rw.InternalError("notification run failed")
		return
	}
	rw.Success(result)
}

// handleEmailSend serves POST /api/v1/email/send, limited to 5 requests per
// minute per IP. Only public template types are accepted; the digest type is
// reserved for the notification run.
func (s *Server) handleEmailSend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if !s.emailLimiter.Allow(clientIP(r)) {
		metrics.RateLimitRejectionsTotal.WithLabelValues("email").Inc()
		rw.TooManyRequests("email sends are limited to 5 per minute")
		return
	}

	var req EmailSendRequest
	if !decodeRequest(rw, r, &req) {
		return
	}

	emailType := mailer.EmailType(req.Type)
	if !emailType.IsPublic() {
		rw.BadRequest("unknown email type: " + req.Type)
		return
	}

	to := req.To
	if to == "" {
		if emailType == mailer.EmailNewsletterWelcome {
			to = req.Data["email"]
		} else {
			to = s.cfg.Mail.AdminEmail
		}
	}
	if to == "" {
		rw.BadRequest("no recipient available for this email type")
		return
	}

	subject, body, err := mailer.Render(emailType, req.Data)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if err := s.sender.Send(r.Context(), &mailer.Message{To: to, Subject: subject, Body: body}); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("email_type", req.Type).Msg("Failed to send email")
		recordEmail(emailType, false)
		rw.InternalError("failed to send email")
		return
	}
	recordEmail(emailType, true)

	rw.Success(map[string]string{"type": req.Type, "status": "sent"})
}

func recordEmail(emailType mailer.EmailType, ok bool) {
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	metrics.EmailsTotal.WithLabelValues(string(emailType), outcome).Inc()
}
