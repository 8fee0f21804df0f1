// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package middleware provides echo middleware for session auth.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/services/session"
)

// sessionKey is the echo context key the session is stored under.
const sessionKey = "portal.session"

// GetSession returns the session stored by RequireRole middleware.
func GetSession(c echo.Context) *session.Session {
	s, _ := c.Get(sessionKey).(*session.Session)
	return s
}

// RequireRole rejects requests without a valid session of the given
// role. The session is stored in the echo context for handlers.
func RequireRole(sm *session.Manager, role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := sm.Get(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			if s.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}

// RequireCustomer requires a customer session.
func RequireCustomer(sm *session.Manager) echo.MiddlewareFunc {
	return RequireRole(sm, models.RoleCustomer)
}

// RequireAdmin requires an admin session.
func RequireAdmin(sm *session.Manager) echo.MiddlewareFunc {
	return RequireRole(sm, models.RoleAdmin)
}
