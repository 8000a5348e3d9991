// AI Tools Explorer - Directory and Recommendation Backend
// Copyright 2026 AI Tools Explorer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aitools-explorer/backend

package mailer

import (
	"fmt"
	"strings"
	"text/template"
)

// EmailType selects a builtin transactional template.
type EmailType string

// Transactional email types accepted by the email-send endpoint.
const (
	EmailToolSubmission    EmailType = "tool_submission"
	EmailContact           EmailType = "contact"
	EmailNewsletterWelcome EmailType = "newsletter_welcome"

	// EmailNewTools is the aggregated digest produced by the notification
	// run; it is not accepted from the public endpoint.
	EmailNewTools EmailType = "new_tools"
)

// IsPublic reports whether the type may be requested via the email-send
// endpoint.
func (t EmailType) IsPublic() bool {
	switch t {
	case EmailToolSubmission, EmailContact, EmailNewsletterWelcome:
		return true
	}
	return false
}

type emailTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[EmailType]emailTemplate{
	EmailToolSubmission: {
		subject: "New tool submission: {{.tool_name}}",
		body: template.Must(template.New("tool_submission").Parse(
			`A new tool was submitted to AI Tools Explorer.

Tool:        {{.tool_name}}
Website:     {{.website_url}}
Description: {{.description}}
{{- if .email}}
Submitter:   {{.email}}
{{- end}}
`)),
	},
	EmailContact: {
		subject: "Contact form message from {{.name}}",
		body: template.Must(template.New("contact").Parse(
			`New contact form message.

From:    {{.name}} <{{.email}}>
{{- if .subject}}
Subject: {{.subject}}
{{- end}}

{{.message}}
`)),
	},
	EmailNewsletterWelcome: {
		subject: "Welcome to the AI Tools Explorer newsletter",
		body: template.Must(template.New("newsletter_welcome").Parse(
			`Hi{{if .name}} {{.name}}{{end}},

Thanks for subscribing to the AI Tools Explorer newsletter. We send a short
digest of new tools and editorial picks. Unsubscribe any time from the link
in each issue.
`)),
	},
	EmailNewTools: {
		subject: "New AI tools in your categories",
		body: template.Must(template.New("new_tools").Parse(
			`Hi,

New tools matching your category subscriptions:

{{.tool_list}}
Browse them all at {{.base_url}}.
`)),
	},
}

// Render produces the subject and body for a template type. Missing data
// keys render as empty strings rather than failing the send.
func Render(emailType EmailType, data map[string]string) (subject, body string, err error) {
	tmpl, ok := templates[emailType]
	if !ok {
		return "", "", fmt.Errorf("unknown email type %q", emailType)
	}

	subjectTmpl, err := template.New("subject").Parse(tmpl.subject)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse subject template: %w", err)
	}

	var subjectBuf, bodyBuf strings.Builder
	if err := subjectTmpl.Execute(&subjectBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render subject: %w", err)
	}
	if err := tmpl.body.Execute(&bodyBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render body: %w", err)
	}
	return subjectBuf.String(), bodyBuf.String(), nil
}
