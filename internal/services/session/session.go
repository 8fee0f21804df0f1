// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package session manages signed session cookies.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"github.com/marathegroup/portal/internal/config"
	"github.com/marathegroup/portal/internal/models"
)

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no session")

// Session is the authenticated account carried in the cookie.
type Session struct {
	AccountID int64       `json:"account_id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

// Manager signs and verifies session cookies.
type Manager struct {
	sc         *securecookie.SecureCookie
	cookieName string
	maxAge     int
}

// NewManager creates a session manager. Missing keys are generated at
// startup, which invalidates existing sessions on restart.
func NewManager(cfg *config.SessionConfig) (*Manager, error) {
	hashKey, err := keyFromHex(cfg.HashKey, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid session hash key: %w", err)
	}

	var blockKey []byte
	if cfg.BlockKey != "" {
		blockKey, err = keyFromHex(cfg.BlockKey, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid session block key: %w", err)
		}
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(cfg.MaxAge)

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "portal_session"
	}

	return &Manager{sc: sc, cookieName: cookieName, maxAge: cfg.MaxAge}, nil
}

// Issue writes the session cookie to the response.
func (m *Manager) Issue(c echo.Context, s Session) error {
	encoded, err := m.sc.Encode(m.cookieName, s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   m.maxAge,
		Expires:  time.Now().Add(time.Duration(m.maxAge) * time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.Scheme() == "https",
	})
	return nil
}

// Get reads and verifies the session cookie from the request.
func (m *Manager) Get(c echo.Context) (*Session, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	var s Session
	if err := m.sc.Decode(m.cookieName, cookie.Value, &s); err != nil {
		return nil, ErrNoSession
	}
	return &s, nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// keyFromHex decodes a hex key of the given byte length, or generates
// a random one when empty.
func keyFromHex(s string, length int) ([]byte, error) {
	if s == "" {
		key := make([]byte, length)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		return key, nil
	}

	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(key) != length {
		return nil, fmt.Errorf("key must be %d bytes, got %d", length, len(key))
	}
	return key, nil
}
