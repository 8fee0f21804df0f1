// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/marathegroup/portal/internal/middleware"
)

// MyDocuments lists the bookings/documents of the logged-in customer.
func (h *Handlers) MyDocuments(c echo.Context) error {
	s := middleware.GetSession(c)

	bookings, err := h.documents.ListForCustomer(c.Request().Context(), s.Email)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, bookings)
}

// DownloadDocument streams a document belonging to the logged-in
// customer.
func (h *Handlers) DownloadDocument(c echo.Context) error {
	s := middleware.GetSession(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid document id")
	}

	booking, rc, err := h.documents.Open(c.Request().Context(), id, s.Email)
	if err != nil {
		return httpError(err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, booking.FileName))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, rc)
}
