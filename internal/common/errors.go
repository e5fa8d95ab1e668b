// Package common defines shared constants and sentinel errors used across
// the pet-manager client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTokenMissing   = errors.New("token not found in response")
	ErrNoRefreshToken = errors.New("no refresh token available")

	// Resource errors surfaced by link/unlink and lookups.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
