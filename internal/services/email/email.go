// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package email sends transactional mail via SMTP using go-mail.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/marathegroup/portal/internal/config"
	"github.com/wneessen/go-mail"
)

// DefaultTimeout bounds a single delivery attempt. Failures are
// reported to the caller, never retried here.
const DefaultTimeout = 10 * time.Second

// Service handles email delivery.
type Service struct {
	cfg     *config.SMTPConfig
	timeout time.Duration
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	timeout := DefaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &Service{cfg: cfg, timeout: timeout}, nil
}

// SendCode sends a one-time code with a purpose line ("Customer
// Registration", "Password Reset", ...).
func (s *Service) SendCode(ctx context.Context, to, code, purpose string) error {
	subject := fmt.Sprintf("Marathe Group — %s OTP", purpose)
	body := fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; color:#111;">
    <div style="max-width:600px; margin:auto; padding:20px;">
      <h2 style="color:#b8860b; margin:0 0 10px 0;">Marathe Group — OTP</h2>
      <p style="margin:8px 0;">Hello,</p>
      <p style="margin:8px 0;">Your <strong>%s</strong> OTP is:</p>
      <div style="font-size:28px; font-weight:700; letter-spacing:4px; margin:12px 0;">%s</div>
      <p style="font-size:13px; color:#444; margin:8px 0;">This code will expire in 5 minutes. If you didn't request this, ignore this email.</p>
      <hr>
      <p style="font-size:12px; color:#666; margin:6px 0;">Marathe Group &bull; Trusted Legacy</p>
    </div>
  </body>
</html>`, purpose, code)

	return s.Deliver(ctx, to, subject, body)
}

// Deliver sends a single HTML message via SMTP, bounded by the
// configured timeout.
func (s *Service) Deliver(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Implicit TLS (SSL) for port 465, STARTTLS for others
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
