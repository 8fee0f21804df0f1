// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package handlers contains the JSON HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marathegroup/portal/internal/catalog"
	"github.com/marathegroup/portal/internal/repository"
	"github.com/marathegroup/portal/internal/services/accounts"
	"github.com/marathegroup/portal/internal/services/documents"
	"github.com/marathegroup/portal/internal/services/registration"
	"github.com/marathegroup/portal/internal/services/session"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	registration *registration.Service
	accounts     *accounts.Service
	documents    *documents.Service
	repo         *repository.Repository
	catalog      *catalog.Catalog
	sessions     *session.Manager
}

// New creates a new Handlers instance.
func New(
	reg *registration.Service,
	acc *accounts.Service,
	docs *documents.Service,
	repo *repository.Repository,
	cat *catalog.Catalog,
	sessions *session.Manager,
) *Handlers {
	return &Handlers{
		registration: reg,
		accounts:     acc,
		documents:    docs,
		repo:         repo,
		catalog:      cat,
		sessions:     sessions,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
