// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/marathegroup/portal/internal/models"
)

// CreateEnquiry inserts a new contact-form enquiry.
func (r *Repository) CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) error {
	if enquiry.CreatedAt.IsZero() {
		enquiry.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO enquiries (name, email, phone, project, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.Project,
		enquiry.Message, enquiry.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	enquiry.ID = id
	return nil
}

// ListEnquiries returns all enquiries, newest first.
func (r *Repository) ListEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	err := r.db.SelectContext(ctx, &enquiries, `SELECT * FROM enquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return enquiries, nil
}
