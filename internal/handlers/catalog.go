// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marathegroup/portal/internal/models"
)

// Catalog returns the project catalog.
func (h *Handlers) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.All())
}

type enquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Project string `json:"project"`
	Message string `json:"message"`
}

// CreateEnquiry records a contact-form enquiry.
func (h *Handlers) CreateEnquiry(c echo.Context) error {
	var req enquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and message are required")
	}

	enquiry := &models.Enquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Project: req.Project,
		Message: req.Message,
	}
	if err := h.repo.CreateEnquiry(c.Request().Context(), enquiry); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, enquiry)
}
