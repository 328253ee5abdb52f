// Package errs defines the error taxonomy shared by the store, service and
// HTTP layers. Callers classify failures with errors.Is against these
// sentinels; the HTTP layer maps each class to a status code.
package errs

import "errors"

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a uniqueness violation (username, email, outfit name).
	ErrConflict = errors.New("already exists")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAuth marks a missing, invalid or expired credential.
	ErrAuth = errors.New("unauthorized")

	// ErrStore marks an underlying persistence failure.
	ErrStore = errors.New("store error")
)
