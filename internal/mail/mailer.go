// Package mail delivers booking notifications to travellers.  The
// Mailer interface keeps SMTP out of the queue consumer; deployments
// without an SMTP host fall back to the console mailer.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/gkidjo/train-booking-api/internal/config"
)

// Mailer sends a plain-text message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers mail over SMTP with PLAIN auth.
type SMTPMailer struct {
	cfg config.Mail
}

func NewSMTPMailer(cfg config.Mail) *SMTPMailer { return &SMTPMailer{cfg: cfg} }

// Send dials the configured SMTP host and submits the message.  The
// context is accepted for interface symmetry; net/smtp has no
// cancellation hook, so the server's own timeouts apply.
func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// ConsoleMailer logs outgoing messages instead of delivering them.
// Used in development and whenever no SMTP host is configured.
type ConsoleMailer struct{}

func NewConsoleMailer() *ConsoleMailer { return &ConsoleMailer{} }

func (ConsoleMailer) Send(_ context.Context, to, subject, body string) error {
	zap.L().Info("mail (console)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// NewFromConfig picks the SMTP mailer when a host is configured and the
// console mailer otherwise.
func NewFromConfig(cfg config.Mail) Mailer {
	if cfg.Host == "" {
		return NewConsoleMailer()
	}
	return NewSMTPMailer(cfg)
}
