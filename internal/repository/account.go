// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/marathegroup/portal/internal/models"
)

// CreateAccount inserts a new account. Returns ErrDuplicate if an account
// with the same email and role already exists.
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (name, email, password_hash, role, project, approval_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		account.Name, account.Email, account.PasswordHash, account.Role,
		account.Project, account.ApprovalStatus, account.CreatedAt)
	if err != nil {
		return wrapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	account.ID = id
	return nil
}

// GetAccount retrieves an account by email within a role partition.
func (r *Repository) GetAccount(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT * FROM accounts WHERE email = ? AND role = ?`, email, role)
	if err != nil {
		return nil, wrapError(err)
	}
	return &account, nil
}

// GetAccountByID retrieves an account by its primary key.
func (r *Repository) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account, `SELECT * FROM accounts WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &account, nil
}

// AccountExists checks whether an account exists for the given email and role.
func (r *Repository) AccountExists(ctx context.Context, email string, role models.Role) (bool, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM accounts WHERE email = ? AND role = ?`, email, role)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateAccountPassword overwrites the password hash for an account.
// Approval status is untouched.
func (r *Repository) UpdateAccountPassword(ctx context.Context, email string, role models.Role, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ? WHERE email = ? AND role = ?`,
		passwordHash, email, role)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ApproveAccount flips an account from pending to approved. Idempotent:
// approving an already approved account is not an error.
func (r *Repository) ApproveAccount(ctx context.Context, email string, role models.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET approval_status = ? WHERE email = ? AND role = ?`,
		models.StatusApproved, email, role)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPendingAccounts returns accounts awaiting approval for a role,
// oldest first.
func (r *Repository) ListPendingAccounts(ctx context.Context, role models.Role) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.SelectContext(ctx, &accounts,
		`SELECT * FROM accounts WHERE role = ? AND approval_status = ? ORDER BY created_at ASC`,
		role, models.StatusPending)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
