package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionExpired indicates the source session cookie is no
	// longer valid and the user must log in again.
	ErrSessionExpired = errors.New("session expired")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrConfigUnavailable indicates the sync configuration source is
	// designated but could not be read.
	ErrConfigUnavailable = errors.New("sync configuration unavailable")

	// ErrNoPageID indicates a destination write reported success but
	// returned no page identity.
	ErrNoPageID = errors.New("destination returned no page id")
)
