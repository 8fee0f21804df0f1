// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/marathegroup/portal/internal/database"
	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/repository"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestAccount creates an account with a bcrypt hash of password.
func NewTestAccount(t *testing.T, repo *repository.Repository, email, password string, role models.Role) *models.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	account := &models.Account{
		Name:           "Test User",
		Email:          email,
		PasswordHash:   string(hash),
		Role:           role,
		ApprovalStatus: models.StatusPending,
	}
	require.NoError(t, repo.CreateAccount(context.Background(), account))
	return account
}

// FakeMailer records sent codes instead of delivering them.
type FakeMailer struct {
	mu    sync.Mutex
	Codes map[string]string // email -> last code
	Fail  bool              // simulate delivery failure
	Sent  int
}

// NewFakeMailer creates an empty fake mailer.
func NewFakeMailer() *FakeMailer {
	return &FakeMailer{Codes: make(map[string]string)}
}

// SendCode records the code, or fails when Fail is set.
func (m *FakeMailer) SendCode(_ context.Context, to, code, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return errSMTP
	}
	m.Codes[to] = code
	m.Sent++
	return nil
}

// LastCode returns the last code sent to an address.
func (m *FakeMailer) LastCode(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Codes[to]
}

var errSMTP = errors.New("smtp: connection refused")
