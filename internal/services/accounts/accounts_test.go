// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package accounts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/services/accounts"
	"github.com/marathegroup/portal/internal/testutil"
)

func newTestService(t *testing.T) *accounts.Service {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	return accounts.NewService(repo)
}

func register(t *testing.T, svc *accounts.Service, email, password string, role models.Role) *models.Account {
	t.Helper()
	account, err := svc.Register(context.Background(), accounts.RegisterParams{
		Name:     "Test User",
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return account
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)

	account := register(t, svc, "asha@example.com", "secret-password", models.RoleCustomer)

	assert.Equal(t, models.StatusPending, account.ApprovalStatus)
	assert.NotEqual(t, "secret-password", account.PasswordHash)
	assert.NotEmpty(t, account.PasswordHash)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), accounts.RegisterParams{
		Name:     "Bad",
		Email:    "not-an-email",
		Password: "secret-password",
		Role:     models.RoleCustomer,
	})

	assert.ErrorIs(t, err, accounts.ErrInvalidEmail)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), accounts.RegisterParams{
		Name:     "Short",
		Email:    "short@example.com",
		Password: "short",
		Role:     models.RoleCustomer,
	})

	assert.ErrorIs(t, err, accounts.ErrWeakPassword)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, "dup@example.com", "secret-password", models.RoleCustomer)

	_, err := svc.Register(context.Background(), accounts.RegisterParams{
		Name:     "Other",
		Email:    "dup@example.com",
		Password: "secret-password",
		Role:     models.RoleCustomer,
	})
	assert.ErrorIs(t, err, accounts.ErrDuplicateEmail)

	// The same email may register for the other role.
	_, err = svc.Register(context.Background(), accounts.RegisterParams{
		Name:     "Staff",
		Email:    "dup@example.com",
		Password: "secret-password",
		Role:     models.RoleAdmin,
	})
	assert.NoError(t, err)
}

func TestAuthenticate_NotApprovedUntilApproval(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	register(t, svc, "asha@example.com", "secret-password", models.RoleCustomer)

	// Correct password, but the account is still pending.
	_, err := svc.Authenticate(ctx, "asha@example.com", "secret-password", models.RoleCustomer)
	assert.ErrorIs(t, err, accounts.ErrNotApproved)

	require.NoError(t, svc.Approve(ctx, "asha@example.com", models.RoleCustomer))

	account, err := svc.Authenticate(ctx, "asha@example.com", "secret-password", models.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, account.IsApproved())
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	register(t, svc, "asha@example.com", "secret-password", models.RoleCustomer)
	require.NoError(t, svc.Approve(ctx, "asha@example.com", models.RoleCustomer))

	_, err := svc.Authenticate(ctx, "asha@example.com", "wrong-password", models.RoleCustomer)

	assert.ErrorIs(t, err, accounts.ErrWrongPassword)
}

func TestAuthenticate_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever", models.RoleCustomer)

	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestAuthenticate_RolePartition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	register(t, svc, "asha@example.com", "secret-password", models.RoleCustomer)
	require.NoError(t, svc.Approve(ctx, "asha@example.com", models.RoleCustomer))

	// A customer account does not grant admin login.
	_, err := svc.Authenticate(ctx, "asha@example.com", "secret-password", models.RoleAdmin)
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	register(t, svc, "asha@example.com", "secret-password", models.RoleCustomer)
	require.NoError(t, svc.Approve(ctx, "asha@example.com", models.RoleCustomer))

	require.NoError(t, svc.ResetPassword(ctx, "asha@example.com", models.RoleCustomer, "another-password"))

	// Old password no longer works, new one does; approval survives.
	_, err := svc.Authenticate(ctx, "asha@example.com", "secret-password", models.RoleCustomer)
	assert.ErrorIs(t, err, accounts.ErrWrongPassword)

	account, err := svc.Authenticate(ctx, "asha@example.com", "another-password", models.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, account.IsApproved())
}

func TestResetPassword_NotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.ResetPassword(context.Background(), "nobody@example.com", models.RoleCustomer, "another-password")

	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestApprove_NotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Approve(context.Background(), "nobody@example.com", models.RoleCustomer)

	assert.ErrorIs(t, err, accounts.ErrNotFound)
}
