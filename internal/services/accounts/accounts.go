// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package accounts implements the credential store: durable account
// records keyed by email within a role partition, gated behind the OTP
// verification flow for creation and password reset.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail = errors.New("account already exists for this email")
	ErrNotFound       = errors.New("account not found")
	ErrWrongPassword  = errors.New("wrong password")
	ErrNotApproved    = errors.New("account pending approval")
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrWeakPassword   = errors.New("password too short")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Service wraps the repository with hashing and approval semantics.
// It returns typed failures and never logs or retries; that is the
// caller's job.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new accounts service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// RegisterParams holds the parameters for account registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	Project  string
}

// Register creates a new account with a bcrypt password hash and
// pending approval status. Callers must have verified control of the
// email through the OTP gate first. Returns ErrDuplicateEmail if an
// account already exists for the email within the role partition.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.Account, error) {
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(params.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Name:           params.Name,
		Email:          params.Email,
		PasswordHash:   string(passwordHash),
		Role:           params.Role,
		Project:        params.Project,
		ApprovalStatus: models.StatusPending,
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Authenticate verifies the password for an account and enforces the
// approval gate. The bcrypt comparison runs even when the account does
// not exist so that lookup failures are not observable via timing.
func (s *Service) Authenticate(ctx context.Context, email, password string, role models.Role) (*models.Account, error) {
	account, err := s.repo.GetAccount(ctx, email, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	if !account.IsApproved() {
		return nil, ErrNotApproved
	}

	return account, nil
}

// ResetPassword overwrites the password hash for an account. Approval
// status is unchanged. Callers must have verified the email through
// the OTP gate first.
func (s *Service) ResetPassword(ctx context.Context, email string, role models.Role, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateAccountPassword(ctx, email, role, string(passwordHash)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Approve flips an account from pending to approved. Idempotent when
// already approved.
func (s *Service) Approve(ctx context.Context, email string, role models.Role) error {
	if err := s.repo.ApproveAccount(ctx, email, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to approve account: %w", err)
	}
	return nil
}

// ListPending returns accounts awaiting approval for a role.
func (s *Service) ListPending(ctx context.Context, role models.Role) ([]models.Account, error) {
	return s.repo.ListPendingAccounts(ctx, role)
}

// Get returns the account for an email within a role partition.
func (s *Service) Get(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	account, err := s.repo.GetAccount(ctx, email, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}
