// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marathegroup/portal/internal/models"
)

// PendingAccounts lists customer accounts awaiting approval.
func (h *Handlers) PendingAccounts(c echo.Context) error {
	pending, err := h.accounts.ListPending(c.Request().Context(), models.RoleCustomer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pending)
}

type approveRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Approve flips an account from pending to approved.
func (h *Handlers) Approve(c echo.Context) error {
	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	role, err := parseRole(req.Role)
	if err != nil {
		return err
	}

	if err := h.accounts.Approve(c.Request().Context(), req.Email, role); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "approved"})
}

// UploadDocument accepts a multipart upload for an approved customer.
func (h *Handlers) UploadDocument(c echo.Context) error {
	customerEmail := c.FormValue("customer_email")
	project := c.FormValue("project")
	if customerEmail == "" || project == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_email and project are required")
	}
	if _, ok := h.catalog.Get(project); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown project")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	booking, err := h.documents.Upload(c.Request().Context(), customerEmail, project, fileHeader.Filename, f)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, booking)
}

// Bookings lists all bookings.
func (h *Handlers) Bookings(c echo.Context) error {
	bookings, err := h.documents.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Enquiries lists all contact-form enquiries.
func (h *Handlers) Enquiries(c echo.Context) error {
	enquiries, err := h.repo.ListEnquiries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enquiries)
}
