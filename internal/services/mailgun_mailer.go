package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mailgun/mailgun-go/v4"
)

// ContactMailer delivers contact-form messages to the platform inbox via
// Mailgun, with the sender set as reply-to.
type ContactMailer struct {
	mg        mailgun.Mailgun
	fromEmail string
	toEmail   string
}

func NewContactMailer(domain, apiKey, fromEmail, toEmail string) *ContactMailer {
	return &ContactMailer{
		mg:        mailgun.NewMailgun(domain, apiKey),
		fromEmail: strings.TrimSpace(fromEmail),
		toEmail:   strings.TrimSpace(toEmail),
	}
}

// SendContactEmail forwards a contact-form submission. ticket is the
// reference returned to the user.
func (m *ContactMailer) SendContactEmail(ctx context.Context, ticket, senderName, senderEmail, message string) error {
	if m.fromEmail == "" || m.toEmail == "" {
		return fmt.Errorf("contact mailer not configured")
	}

	subject := fmt.Sprintf("Contato ArtConecta #%s", ticket)
	body := fmt.Sprintf(
		"Ticket: %s\nDe: %s <%s>\n\nMensagem:\n%s\n",
		ticket,
		strings.TrimSpace(senderName),
		strings.TrimSpace(senderEmail),
		strings.TrimSpace(message),
	)

	msg := m.mg.NewMessage(m.fromEmail, subject, body, m.toEmail)
	msg.SetReplyTo(senderEmail)

	_, _, err := m.mg.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
