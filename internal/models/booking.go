// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package models

import "time"

// Booking links an uploaded document to a customer and a project.
// Documents are uploaded by admin staff and downloadable by the
// customer once their account is approved.
type Booking struct { //nolint:govet // fieldalignment: readability over optimization
	ID            int64     `db:"id" json:"id"`
	CustomerEmail string    `db:"customer_email" json:"customer_email"`
	Project       string    `db:"project" json:"project"`
	Status        string    `db:"status" json:"status"`
	FileName      string    `db:"file_name" json:"file_name"`
	StorageKey    string    `db:"storage_key" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
