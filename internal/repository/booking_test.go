// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/repository"
	"github.com/marathegroup/portal/internal/testutil"
)

func TestCreateBooking(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	booking := &models.Booking{
		CustomerEmail: "asha@example.com",
		Project:       "Marathe Pride",
		Status:        "document_uploaded",
		FileName:      "allotment.pdf",
		StorageKey:    "documents/asha_at_example.com/abc",
	}

	require.NoError(t, repo.CreateBooking(ctx, booking))
	assert.NotZero(t, booking.ID)

	got, err := repo.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "allotment.pdf", got.FileName)
	assert.Equal(t, booking.StorageKey, got.StorageKey)
}

func TestGetBooking_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetBooking(context.Background(), 42)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListBookingsByCustomer(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "a@example.com", "b@example.com"} {
		require.NoError(t, repo.CreateBooking(ctx, &models.Booking{
			CustomerEmail: email,
			Project:       "Marathe Tower",
			Status:        "document_uploaded",
			FileName:      "doc.pdf",
			StorageKey:    "key-" + email,
		}))
	}

	bookings, err := repo.ListBookingsByCustomer(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	all, err := repo.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateEnquiry(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	enquiry := &models.Enquiry{
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Phone:   "+91 7045871101",
		Project: "Marathe Elenza",
		Message: "Interested in a site visit.",
	}

	require.NoError(t, repo.CreateEnquiry(ctx, enquiry))
	assert.NotZero(t, enquiry.ID)

	enquiries, err := repo.ListEnquiries(ctx)
	require.NoError(t, err)
	require.Len(t, enquiries, 1)
	assert.Equal(t, "ravi@example.com", enquiries[0].Email)
}
