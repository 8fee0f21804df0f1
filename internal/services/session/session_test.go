// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marathegroup/portal/internal/config"
	"github.com/marathegroup/portal/internal/models"
	"github.com/marathegroup/portal/internal/services/session"
)

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	sm, err := session.NewManager(&config.SessionConfig{
		CookieName: "portal_session",
		MaxAge:     3600,
	})
	require.NoError(t, err)
	return sm
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestManager(t)
	e := echo.New()

	// Issue on one request.
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, sm.Issue(c, session.Session{
		AccountID: 7,
		Email:     "asha@example.com",
		Role:      models.RoleCustomer,
	}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	// Read it back on the next request.
	req2 := httptest.NewRequest(http.MethodGet, "/me/documents", nil)
	req2.AddCookie(cookies[0])
	c2 := e.NewContext(req2, httptest.NewRecorder())

	s, err := sm.Get(c2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.AccountID)
	assert.Equal(t, "asha@example.com", s.Email)
	assert.Equal(t, models.RoleCustomer, s.Role)
}

func TestGet_NoCookie(t *testing.T) {
	sm := newTestManager(t)
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := sm.Get(c)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestGet_TamperedCookie(t *testing.T) {
	sm := newTestManager(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "tampered"})
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := sm.Get(c)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestGet_DifferentManagerKeys(t *testing.T) {
	sm1 := newTestManager(t)
	sm2 := newTestManager(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	require.NoError(t, sm1.Issue(c, session.Session{AccountID: 1, Email: "a@x.com", Role: models.RoleAdmin}))

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(rec.Result().Cookies()[0])
	c2 := e.NewContext(req2, httptest.NewRecorder())

	// A cookie signed with other keys is rejected.
	_, err := sm2.Get(c2)
	assert.ErrorIs(t, err, session.ErrNoSession)
}
