// Package mailer delivers rendered email templates over SMTP for copy
// review. Campaign sending proper happens in the external delivery provider;
// this is only the operator-facing test send.
package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// Sender sends template previews through a configured SMTP account.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender creates a sender. Returns nil when no SMTP host is configured;
// callers treat a nil sender as the feature being disabled.
func NewSender(host string, port int, username, password, from string) *Sender {
	if host == "" {
		return nil
	}
	return &Sender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendPreview renders the template with sample merge values and delivers it
// to the operator address.
func (s *Sender) SendPreview(tmpl domain.EmailTemplate, to string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "[preview] "+renderMerge(tmpl.Subject))
	m.SetBody("text/plain", renderMerge(tmpl.Body))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send preview for template %s: %w", tmpl.ID, err)
	}
	return nil
}

// sampleMerge stands in for lead fields in previews.
var sampleMerge = strings.NewReplacer(
	"{{name}}", "Alex Doe",
	"{{company}}", "Acme Inc",
	"{{position}}", "Head of Operations",
)

func renderMerge(text string) string {
	return sampleMerge.Replace(text)
}
