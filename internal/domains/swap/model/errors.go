package model

import "errors"

// Error taxonomy of the swap engine. Every precondition violation is
// detected before any mutation is attempted, and each kind stays
// distinguishable all the way to the HTTP layer.
var (
	ErrSwapNotFound       = errors.New("swap not found")
	ErrForbidden          = errors.New("actor is not allowed to perform this transition")
	ErrInvalidState       = errors.New("swap is not in the required state for this transition")
	ErrSelfSwap           = errors.New("cannot request your own book")
	ErrNotOwner           = errors.New("offered book is not owned by the requester")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrMissingTracking    = errors.New("tracking number is required")

	// ErrConflict surfaces storage-level concurrent-modification
	// detection (serialization failure). Safe for the caller to retry.
	ErrConflict = errors.New("concurrent modification detected, retry the operation")

	ErrUserNotFound = errors.New("user not found")
)
