// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package models

import "time"

// Enquiry is a contact-form lead. Stored as-is, listed by admin staff.
type Enquiry struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Project   string    `db:"project" json:"project,omitempty"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
