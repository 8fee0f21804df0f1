// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marathegroup/portal/internal/services/accounts"
	"github.com/marathegroup/portal/internal/services/documents"
	"github.com/marathegroup/portal/internal/services/otp"
	"github.com/marathegroup/portal/internal/services/registration"
)

// httpError maps typed service failures to HTTP errors. Everything the
// services return is recoverable by the caller; only unknown errors
// surface as 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, otp.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many OTP requests, try again later")
	case errors.Is(err, registration.ErrDeliveryFailed):
		return echo.NewHTTPError(http.StatusBadGateway, "could not deliver the OTP email")
	case errors.Is(err, otp.ErrNoChallenge):
		return echo.NewHTTPError(http.StatusBadRequest, "no OTP was sent for this email")
	case errors.Is(err, otp.ErrExpired):
		return echo.NewHTTPError(http.StatusBadRequest, "OTP expired, request a new one")
	case errors.Is(err, otp.ErrMismatch):
		return echo.NewHTTPError(http.StatusBadRequest, "incorrect OTP")
	case errors.Is(err, accounts.ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusConflict, "an account with this email already exists")
	case errors.Is(err, accounts.ErrInvalidEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email address")
	case errors.Is(err, accounts.ErrWeakPassword):
		return echo.NewHTTPError(http.StatusBadRequest, "password too short")
	case errors.Is(err, accounts.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "email not registered")
	case errors.Is(err, accounts.ErrWrongPassword):
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect password")
	case errors.Is(err, accounts.ErrNotApproved):
		return echo.NewHTTPError(http.StatusForbidden, "registration pending admin approval")
	case errors.Is(err, documents.ErrCustomerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	case errors.Is(err, documents.ErrCustomerNotApproved):
		return echo.NewHTTPError(http.StatusForbidden, "customer not approved")
	case errors.Is(err, documents.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	case errors.Is(err, documents.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	default:
		return err
	}
}
