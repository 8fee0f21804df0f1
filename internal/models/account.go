// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package models

import "time"

// Role partitions the account table. The same email may exist once per role.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ApprovalStatus is a one-way gate: accounts start pending and may only
// move to approved via an admin action. There is no reverse transition.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
)

// Account is a durable credential record, keyed by (email, role).
type Account struct { //nolint:govet // fieldalignment: readability over optimization
	ID             int64          `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Email          string         `db:"email" json:"email"`
	PasswordHash   string         `db:"password_hash" json:"-"`
	Role           Role           `db:"role" json:"role"`
	Project        string         `db:"project" json:"project,omitempty"`
	ApprovalStatus ApprovalStatus `db:"approval_status" json:"approval_status"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// IsApproved reports whether the account has passed the admin gate.
func (a *Account) IsApproved() bool {
	return a.ApprovalStatus == StatusApproved
}
