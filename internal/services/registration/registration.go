// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package registration orchestrates the guarded-registration flow:
// OTP issuance and delivery, OTP-verified account creation, and
// OTP-verified password reset.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/services/accounts"
	"github.com/marathegroup/portal/internal/services/otp"
)

// ErrDeliveryFailed reports that the code could not be delivered.
// Distinct from otp.ErrRateLimited: the caller may retry delivery,
// while a rate-limited email must wait for the window to age out.
var ErrDeliveryFailed = errors.New("failed to deliver code")

// Purpose strings shown in the OTP email subject.
const (
	PurposeCustomerRegistration = "Customer Registration"
	PurposeAdminRegistration    = "Admin Registration"
	PurposePasswordReset        = "Password Reset"
)

// Mailer delivers one-time codes out of band.
type Mailer interface {
	SendCode(ctx context.Context, to, code, purpose string) error
}

// Service ties the OTP gate, the mailer and the credential store
// together. All operations for one email are serialized through a
// keyed mutex.
type Service struct {
	gate     *otp.Gate
	mailer   Mailer
	accounts *accounts.Service
	byEmail  *keyMutex
}

// NewService creates a new registration service.
func NewService(gate *otp.Gate, mailer Mailer, accounts *accounts.Service) *Service {
	return &Service{
		gate:     gate,
		mailer:   mailer,
		accounts: accounts,
		byEmail:  newKeyMutex(),
	}
}

// RequestCode rate-checks, generates and delivers a code for email.
// The challenge is committed to the gate only after confirmed delivery,
// so a code nobody received never blocks the next one. A failed
// delivery still counts against the rate cap.
func (s *Service) RequestCode(ctx context.Context, email, purpose string) error {
	unlock := s.byEmail.Lock(email)
	defer unlock()

	code, err := s.gate.Reserve(email)
	if err != nil {
		return err
	}

	if err := s.mailer.SendCode(ctx, email, code, purpose); err != nil {
		slog.Warn("otp_delivery_failed", "email", email, "purpose", purpose, "error", err)
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	s.gate.Commit(email, code)
	slog.Info("otp_sent", "email", email, "purpose", purpose)
	return nil
}

// Register verifies the submitted code and creates the account. The
// code is consumed on success and on the verify errors that consume it
// (expiry); a failed account insert after a consumed code requires a
// fresh code, which keeps the gate single-use.
func (s *Service) Register(ctx context.Context, params accounts.RegisterParams, code string) (*models.Account, error) {
	unlock := s.byEmail.Lock(params.Email)
	defer unlock()

	if err := s.gate.Verify(params.Email, code); err != nil {
		return nil, err
	}

	account, err := s.accounts.Register(ctx, params)
	if err != nil {
		return nil, err
	}

	slog.Info("register_success", "account_id", account.ID, "email", account.Email, "role", account.Role)
	return account, nil
}

// ResetPassword verifies the submitted code and overwrites the account
// password. Approval status is unchanged.
func (s *Service) ResetPassword(ctx context.Context, email string, role models.Role, code, newPassword string) error {
	unlock := s.byEmail.Lock(email)
	defer unlock()

	if err := s.gate.Verify(email, code); err != nil {
		return err
	}

	if err := s.accounts.ResetPassword(ctx, email, role, newPassword); err != nil {
		return err
	}

	slog.Info("password_reset", "email", email, "role", role)
	return nil
}
