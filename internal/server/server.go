// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package server wires the portal together and runs the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"github.com/marathegroup/portal/internal/catalog"
	"github.com/marathegroup/portal/internal/config"
	"github.com/marathegroup/portal/internal/database"
	"github.com/marathegroup/portal/internal/handlers"
	"github.com/marathegroup/portal/internal/middleware"
	"github.com/marathegroup/portal/internal/repository"
	"github.com/marathegroup/portal/internal/services/accounts"
	"github.com/marathegroup/portal/internal/services/documents"
	"github.com/marathegroup/portal/internal/services/email"
	"github.com/marathegroup/portal/internal/services/otp"
	"github.com/marathegroup/portal/internal/services/registration"
	"github.com/marathegroup/portal/internal/services/session"
	"github.com/marathegroup/portal/internal/storage"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	repo := repository.New(db)

	// Catalog
	cat, err := catalog.Load(cfg.Storage.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Document storage
	store, err := newStore(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to set up storage: %w", err)
	}

	// Services
	mailer, err := email.NewService(&cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to set up mailer: %w", err)
	}

	gate := otp.NewGate(otp.Config{
		Expiry:       time.Duration(cfg.OTP.ExpirySeconds) * time.Second,
		Window:       time.Duration(cfg.OTP.WindowSeconds) * time.Second,
		MaxPerWindow: cfg.OTP.MaxPerWindow,
	})

	accountsSvc := accounts.NewService(repo)
	registrationSvc := registration.NewService(gate, mailer, accountsSvc)
	documentsSvc := documents.NewService(repo, store)

	sessions, err := session.NewManager(&cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to set up sessions: %w", err)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)

	h := handlers.New(registrationSvc, accountsSvc, documentsSvc, repo, cat, sessions)
	setupRoutes(e, h, sessions)

	return startWithGracefulShutdown(e, cfg)
}

// newStore builds the configured document store.
func newStore(ctx context.Context, cfg *config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case "", "fs":
		return storage.NewFSStore(cfg.UploadDir)
	case "s3":
		return storage.NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func setupRoutes(e *echo.Echo, h *handlers.Handlers, sessions *session.Manager) {
	e.GET("/health", h.Health)
	e.GET("/catalog", h.Catalog)
	e.POST("/enquiries", h.CreateEnquiry)

	auth := e.Group("/auth")
	auth.POST("/otp/request", h.RequestOTP)
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.POST("/password-reset/confirm", h.ConfirmPasswordReset)

	me := e.Group("/me", middleware.RequireCustomer(sessions))
	me.GET("/documents", h.MyDocuments)
	me.GET("/documents/:id/download", h.DownloadDocument)

	admin := e.Group("/admin", middleware.RequireAdmin(sessions))
	admin.GET("/pending", h.PendingAccounts)
	admin.POST("/approve", h.Approve)
	admin.POST("/documents", h.UploadDocument)
	admin.GET("/bookings", h.Bookings)
	admin.GET("/enquiries", h.Enquiries)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("server running", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
