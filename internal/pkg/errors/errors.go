package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks a uniqueness violation, e.g. a duplicate favorite.
	ErrConflict = errors.New("conflict")
	// ErrPermissionDenied marks a mutation attempted by someone other than the owner.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrRender marks a document rendering failure.
	ErrRender = errors.New("render failed")
)
