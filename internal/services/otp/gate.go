// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package otp implements the verification gate for email one-time codes:
// issuance, rate limiting, and single-use verify-and-consume.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	// DefaultExpiry is how long an issued code stays valid.
	DefaultExpiry = 5 * time.Minute
	// DefaultWindow is the trailing interval used to cap issuances per email.
	DefaultWindow = 5 * time.Minute
	// DefaultMaxPerWindow is the issuance cap within the trailing window.
	DefaultMaxPerWindow = 5
)

var (
	ErrRateLimited = errors.New("too many codes requested")
	ErrNoChallenge = errors.New("no code issued for this email")
	ErrExpired     = errors.New("code expired")
	ErrMismatch    = errors.New("code does not match")
)

// challenge is the live code bound to an email. At most one per email.
type challenge struct {
	code     string
	issuedAt time.Time
}

// Config tunes the gate. Zero values fall back to the defaults.
type Config struct {
	Expiry       time.Duration
	Window       time.Duration
	MaxPerWindow int
}

// Gate issues and verifies short-lived numeric codes bound to an email
// address. State is in-memory and process-wide; codes are allowed to
// vanish on restart. All operations are safe for concurrent use.
type Gate struct {
	mu         sync.Mutex
	challenges map[string]challenge
	rate       map[string][]time.Time

	expiry       time.Duration
	window       time.Duration
	maxPerWindow int

	now func() time.Time
}

// NewGate creates a gate with the given configuration.
func NewGate(cfg Config) *Gate {
	if cfg.Expiry <= 0 {
		cfg.Expiry = DefaultExpiry
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.MaxPerWindow <= 0 {
		cfg.MaxPerWindow = DefaultMaxPerWindow
	}
	return &Gate{
		challenges:   make(map[string]challenge),
		rate:         make(map[string][]time.Time),
		expiry:       cfg.Expiry,
		window:       cfg.Window,
		maxPerWindow: cfg.MaxPerWindow,
		now:          time.Now,
	}
}

// SetClock overrides the gate's time source. Tests only.
func (g *Gate) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
}

// CanIssue reports whether a new code may be issued for email. Stale
// entries are pruned from the rate window even when the check fails.
func (g *Gate) CanIssue(email string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pruneLocked(email) < g.maxPerWindow
}

// Issue generates a code, stores it as the live challenge for email
// (overwriting any prior one) and records the issuance in the rate
// window. It does not re-check the rate limit; callers following the
// two-step protocol must call CanIssue first. TryIssue collapses the
// two steps into one atomic call.
func (g *Gate) Issue(email string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.storeLocked(email, code)
	g.recordLocked(email)
	return code, nil
}

// TryIssue atomically checks the rate limit and issues a code. Returns
// ErrRateLimited when the trailing-window cap is reached.
func (g *Gate) TryIssue(email string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pruneLocked(email) >= g.maxPerWindow {
		return "", ErrRateLimited
	}
	g.storeLocked(email, code)
	g.recordLocked(email)
	return code, nil
}

// Reserve atomically checks the rate limit, records the issuance and
// returns a fresh code without storing a challenge. Used by flows that
// store the challenge only after confirmed delivery (Commit), so a code
// nobody received never becomes the live challenge. Failed deliveries
// still count against the rate cap.
func (g *Gate) Reserve(email string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pruneLocked(email) >= g.maxPerWindow {
		return "", ErrRateLimited
	}
	g.recordLocked(email)
	return code, nil
}

// Commit stores code as the live challenge for email, overwriting any
// prior one. Counterpart of Reserve.
func (g *Gate) Commit(email, code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.storeLocked(email, code)
}

// Verify checks the submitted code against the live challenge for email.
// On match the challenge is consumed (single use). An expired challenge
// is deleted as a side effect; a mismatch keeps the challenge so the
// user can retry within the expiry window.
func (g *Gate) Verify(email, submitted string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.challenges[email]
	if !ok {
		return ErrNoChallenge
	}
	if g.now().Sub(c.issuedAt) > g.expiry {
		delete(g.challenges, email)
		return ErrExpired
	}
	if subtle.ConstantTimeCompare([]byte(c.code), []byte(submitted)) != 1 {
		return ErrMismatch
	}
	delete(g.challenges, email)
	return nil
}

// GenerateCode returns a uniformly random 6-digit code in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// storeLocked installs the live challenge for email. Caller holds g.mu.
func (g *Gate) storeLocked(email, code string) {
	g.challenges[email] = challenge{code: code, issuedAt: g.now()}
}

// recordLocked appends an issuance timestamp to the rate window.
// Caller holds g.mu.
func (g *Gate) recordLocked(email string) {
	g.rate[email] = append(g.rate[email], g.now())
}

// pruneLocked drops timestamps older than the window and returns the
// remaining count. Caller holds g.mu.
func (g *Gate) pruneLocked(email string) int {
	now := g.now()
	events := g.rate[email][:0]
	for _, t := range g.rate[email] {
		if now.Sub(t) <= g.window {
			events = append(events, t)
		}
	}
	if len(events) == 0 {
		delete(g.rate, email)
		return 0
	}
	g.rate[email] = events
	return len(events)
}
