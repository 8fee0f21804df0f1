// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package storage abstracts blob storage for booking documents.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored object does not exist.
var ErrNotFound = errors.New("object not found")

// Store is a blob store keyed by opaque string keys.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh storage key scoped to a customer email.
func NewKey(email string) string {
	return fmt.Sprintf("documents/%s/%s", sanitizeEmail(email), uuid.New())
}

// sanitizeEmail makes an email safe for use as a path segment.
func sanitizeEmail(email string) string {
	email = strings.ReplaceAll(email, "@", "_at_")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, email)
}
