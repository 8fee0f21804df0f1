// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/marathegroup/portal/internal/models"
)

// CreateBooking inserts a new booking/document row.
func (r *Repository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (customer_email, project, status, file_name, storage_key, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		booking.CustomerEmail, booking.Project, booking.Status,
		booking.FileName, booking.StorageKey, booking.CreatedAt)
	if err != nil {
		return wrapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	booking.ID = id
	return nil
}

// GetBooking retrieves a booking by ID.
func (r *Repository) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, `SELECT * FROM bookings WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &booking, nil
}

// ListBookingsByCustomer returns all bookings for a customer email,
// newest first.
func (r *Repository) ListBookingsByCustomer(ctx context.Context, email string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.SelectContext(ctx, &bookings,
		`SELECT * FROM bookings WHERE customer_email = ? ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListBookings returns all bookings, newest first.
func (r *Repository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.SelectContext(ctx, &bookings, `SELECT * FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
