// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

// Package mailer delivers transactional email over SMTP. Each send is one
// plain-text message; there is no queue or retry, a failed send surfaces to
// the caller.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/aitools-explorer/backend/internal/config"
	"github.com/aitools-explorer/backend/internal/logging"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages. SMTPMailer is the production implementation;
// NoopMailer stands in when mail is disabled.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	cfg         *config.MailConfig
	dialTimeout time.Duration
}

// NewSMTPMailer builds a mailer from config.
func NewSMTPMailer(cfg *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, dialTimeout: 30 * time.Second}
}

// Send delivers one message.
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if !strings.Contains(msg.To, "@") {
		return fmt.Errorf("invalid recipient address %q", msg.To)
	}
	return m.sendSMTP(ctx, msg.To, m.buildMessage(msg))
}

// buildMessage constructs the raw message with headers.
func (m *SMTPMailer) buildMessage(msg *Message) string {
	var b strings.Builder
	fromName := m.cfg.FromName
	if fromName == "" {
		fromName = "AI Tools Explorer"
	}
	fmt.Fprintf(&b, "From: %s <%s>\r\n", fromName, m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return b.String()
}

func (m *SMTPMailer) sendSMTP(ctx context.Context, to, raw string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	dialer := &net.Dialer{Timeout: m.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if m.cfg.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: m.cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start message: %w", err)
	}
	if _, err := writer.Write([]byte(raw)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}

	// The message is committed once DATA completes; a failed QUIT is not a
	// delivery failure.
	_ = client.Quit()
	return nil
}

// NoopMailer logs instead of sending. Wired when mail.enabled is false.
type NoopMailer struct{}

// Send logs the message and succeeds.
func (NoopMailer) Send(ctx context.Context, msg *Message) error {
	logging.Ctx(ctx).Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("Mail disabled, dropping message")
	return nil
}
