// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package registration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/services/accounts"
	"github.com/marathegroup/portal/internal/services/otp"
	"github.com/marathegroup/portal/internal/services/registration"
	"github.com/marathegroup/portal/internal/testutil"
)

type fixture struct {
	svc      *registration.Service
	accounts *accounts.Service
	gate     *otp.Gate
	mailer   *testutil.FakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	_, repo := testutil.NewTestDB(t)

	gate := otp.NewGate(otp.Config{})
	mailer := testutil.NewFakeMailer()
	accountsSvc := accounts.NewService(repo)

	return &fixture{
		svc:      registration.NewService(gate, mailer, accountsSvc),
		accounts: accountsSvc,
		gate:     gate,
		mailer:   mailer,
	}
}

func TestRequestCode_DeliversAndCommits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestCode(ctx, "a@x.com", registration.PurposeCustomerRegistration))

	code := f.mailer.LastCode("a@x.com")
	require.Len(t, code, 6)

	// The delivered code is the live challenge.
	assert.NoError(t, f.gate.Verify("a@x.com", code))
}

func TestRequestCode_DeliveryFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mailer.Fail = true
	err := f.svc.RequestCode(ctx, "a@x.com", registration.PurposeCustomerRegistration)
	require.ErrorIs(t, err, registration.ErrDeliveryFailed)

	// No challenge was committed for the undelivered code.
	assert.ErrorIs(t, f.gate.Verify("a@x.com", "123456"), otp.ErrNoChallenge)

	// The failed attempt still counted against the rate cap.
	f.mailer.Fail = false
	for range 4 {
		require.NoError(t, f.svc.RequestCode(ctx, "a@x.com", registration.PurposeCustomerRegistration))
	}
	err = f.svc.RequestCode(ctx, "a@x.com", registration.PurposeCustomerRegistration)
	assert.ErrorIs(t, err, otp.ErrRateLimited)
}

func TestRequestCode_RateLimited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for range 5 {
		require.NoError(t, f.svc.RequestCode(ctx, "b@x.com", registration.PurposeCustomerRegistration))
	}

	err := f.svc.RequestCode(ctx, "b@x.com", registration.PurposeCustomerRegistration)
	assert.ErrorIs(t, err, otp.ErrRateLimited)
	assert.Equal(t, 5, f.mailer.Sent)
}

func TestRegister_WrongCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestCode(ctx, "a@x.com", registration.PurposeCustomerRegistration))
	code := f.mailer.LastCode("a@x.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	params := accounts.RegisterParams{
		Name:     "Asha",
		Email:    "a@x.com",
		Password: "secret-password",
		Role:     models.RoleCustomer,
		Project:  "Marathe Tower",
	}

	_, err := f.svc.Register(ctx, params, wrong)
	assert.ErrorIs(t, err, otp.ErrMismatch)

	// Mismatch keeps the challenge; the correct code still registers.
	account, err := f.svc.Register(ctx, params, code)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, account.ApprovalStatus)
}

func TestRegister_WithoutCode(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), accounts.RegisterParams{
		Name:     "Nobody",
		Email:    "nobody@x.com",
		Password: "secret-password",
		Role:     models.RoleCustomer,
	}, "123456")

	assert.ErrorIs(t, err, otp.ErrNoChallenge)
}

// Full guarded-registration walkthrough: request code, verify, register,
// login blocked until approval, approve, login succeeds.
func TestGuardedRegistrationFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestCode(ctx, "a@x.com", registration.PurposeCustomerRegistration))
	code := f.mailer.LastCode("a@x.com")

	account, err := f.svc.Register(ctx, accounts.RegisterParams{
		Name:     "Asha",
		Email:    "a@x.com",
		Password: "secret-password",
		Role:     models.RoleCustomer,
		Project:  "Marathe Sapphire",
	}, code)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, account.ApprovalStatus)

	// The code was consumed by registration.
	_, err = f.svc.Register(ctx, accounts.RegisterParams{
		Name:     "Asha",
		Email:    "a@x.com",
		Password: "secret-password",
		Role:     models.RoleCustomer,
	}, code)
	assert.ErrorIs(t, err, otp.ErrNoChallenge)

	_, err = f.accounts.Authenticate(ctx, "a@x.com", "secret-password", models.RoleCustomer)
	assert.ErrorIs(t, err, accounts.ErrNotApproved)

	require.NoError(t, f.accounts.Approve(ctx, "a@x.com", models.RoleCustomer))

	logged, err := f.accounts.Authenticate(ctx, "a@x.com", "secret-password", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, account.ID, logged.ID)
}

func TestResetPasswordFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestCode(ctx, "a@x.com", registration.PurposeCustomerRegistration))
	_, err := f.svc.Register(ctx, accounts.RegisterParams{
		Name:     "Asha",
		Email:    "a@x.com",
		Password: "secret-password",
		Role:     models.RoleCustomer,
	}, f.mailer.LastCode("a@x.com"))
	require.NoError(t, err)
	require.NoError(t, f.accounts.Approve(ctx, "a@x.com", models.RoleCustomer))

	require.NoError(t, f.svc.RequestCode(ctx, "a@x.com", registration.PurposePasswordReset))
	code := f.mailer.LastCode("a@x.com")

	require.NoError(t, f.svc.ResetPassword(ctx, "a@x.com", models.RoleCustomer, code, "another-password"))

	// Approval survives the reset.
	account, err := f.accounts.Authenticate(ctx, "a@x.com", "another-password", models.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, account.IsApproved())
}

func TestResetPassword_ExpiredCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.gate.SetClock(func() time.Time { return now })

	require.NoError(t, f.svc.RequestCode(ctx, "a@x.com", registration.PurposePasswordReset))
	code := f.mailer.LastCode("a@x.com")

	now = now.Add(301 * time.Second)

	err := f.svc.ResetPassword(ctx, "a@x.com", models.RoleCustomer, code, "another-password")
	assert.ErrorIs(t, err, otp.ErrExpired)
}
