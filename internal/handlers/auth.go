// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/services/accounts"
	"github.com/marathegroup/portal/internal/services/registration"
	"github.com/marathegroup/portal/internal/services/session"
)

type requestOTPRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"` // register, reset
	Role    string `json:"role"`    // customer (default), admin
}

// RequestOTP sends a one-time code to the given email. For password
// resets the email must belong to an existing account.
func (h *Handlers) RequestOTP(c echo.Context) error {
	var req requestOTPRequest
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

	purpose := registration.PurposeCustomerRegistration
	if role == models.RoleAdmin {
		purpose = registration.PurposeAdminRegistration
	}
	if req.Purpose == "reset" {
		purpose = registration.PurposePasswordReset
		if _, err := h.accounts.Get(c.Request().Context(), req.Email, role); err != nil {
			return httpError(err)
		}
	}

	if err := h.registration.RequestCode(c.Request().Context(), req.Email, purpose); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "otp_sent"})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Project  string `json:"project"`
	Code     string `json:"code"`
}

// Register verifies the OTP and creates a pending account.
func (h *Handlers) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and password are required")
	}

	role, err := parseRole(req.Role)
	if err != nil {
		return err
	}

	if role == models.RoleCustomer && req.Project != "" {
		if _, ok := h.catalog.Get(req.Project); !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown project")
		}
	}

	account, err := h.registration.Register(c.Request().Context(), accounts.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Project:  req.Project,
	}, req.Code)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, account)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login authenticates an approved account and issues a session cookie.
func (h *Handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	role, err := parseRole(req.Role)
	if err != nil {
		return err
	}

	account, err := h.accounts.Authenticate(c.Request().Context(), req.Email, req.Password, role)
	if err != nil {
		return httpError(err)
	}

	if err := h.sessions.Issue(c, session.Session{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, account)
}

// Logout clears the session cookie.
func (h *Handlers) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ConfirmPasswordReset verifies the OTP and overwrites the password.
func (h *Handlers) ConfirmPasswordReset(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	role, err := parseRole(req.Role)
	if err != nil {
		return err
	}

	if err := h.registration.ResetPassword(c.Request().Context(), req.Email, role, req.Code, req.NewPassword); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "password_reset"})
}

// parseRole maps the wire role to a models.Role; empty means customer.
func parseRole(s string) (models.Role, error) {
	switch s {
	case "", "customer":
		return models.RoleCustomer, nil
	case "admin":
		return models.RoleAdmin, nil
	default:
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}
}
