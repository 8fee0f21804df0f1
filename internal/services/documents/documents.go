// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package documents manages booking documents: uploaded by admin staff
// for a customer, downloadable by that customer once approved.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/repository"
	"github.com/marathegroup/portal/internal/storage"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCustomerNotApproved = errors.New("customer not approved")
	ErrNotFound            = errors.New("document not found")
	ErrForbidden           = errors.New("document belongs to another customer")
)

// StatusDocumentUploaded is the booking status set on upload.
const StatusDocumentUploaded = "document_uploaded"

// Service coordinates blob storage and booking rows.
type Service struct {
	repo  *repository.Repository
	store storage.Store
}

// NewService creates a new documents service.
func NewService(repo *repository.Repository, store storage.Store) *Service {
	return &Service{repo: repo, store: store}
}

// Upload stores a document for an approved customer and records the
// booking row. Admin-only; the HTTP layer enforces the role.
func (s *Service) Upload(ctx context.Context, customerEmail, project, fileName string, r io.Reader) (*models.Booking, error) {
	customer, err := s.repo.GetAccount(ctx, customerEmail, models.RoleCustomer)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if !customer.IsApproved() {
		return nil, ErrCustomerNotApproved
	}

	key := storage.NewKey(customerEmail)
	if err := s.store.Put(ctx, key, r); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	booking := &models.Booking{
		CustomerEmail: customerEmail,
		Project:       project,
		Status:        StatusDocumentUploaded,
		FileName:      fileName,
		StorageKey:    key,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		// Roll back the orphaned blob; the row is the source of truth.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			slog.Warn("orphaned document blob", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to record booking: %w", err)
	}

	return booking, nil
}

// ListForCustomer returns the bookings visible to a customer. The
// customer must be approved.
func (s *Service) ListForCustomer(ctx context.Context, email string) ([]models.Booking, error) {
	account, err := s.repo.GetAccount(ctx, email, models.RoleCustomer)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if !account.IsApproved() {
		return nil, ErrCustomerNotApproved
	}
	return s.repo.ListBookingsByCustomer(ctx, email)
}

// Open returns the document stream for a booking, enforcing that it
// belongs to the given customer email.
func (s *Service) Open(ctx context.Context, bookingID int64, customerEmail string) (*models.Booking, io.ReadCloser, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking.CustomerEmail != customerEmail {
		return nil, nil, ErrForbidden
	}

	rc, err := s.store.Get(ctx, booking.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open document: %w", err)
	}
	return booking, rc, nil
}

// ListAll returns every booking, newest first. Admin-only.
func (s *Service) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.repo.ListBookings(ctx)
}
