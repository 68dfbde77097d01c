package domain

import "errors"

// Common domain errors
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrUnknownStatus   = errors.New("unknown loan status")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionCorrupt  = errors.New("session record corrupt")
)
