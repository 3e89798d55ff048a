// Package apperrors defines the error kinds shared across services so HTTP
// handlers can map failures to status codes with errors.Is.
package apperrors

import "errors"

var (
	// ErrInvalid marks a validation rejection: a required field is missing
	// or malformed. Nothing was changed.
	ErrInvalid = errors.New("invalid input")

	// ErrNotFound marks a lookup of an entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPrecondition marks an operation whose domain preconditions are not
	// met (selling a sold unit, mutating a closed batch, ...). Nothing was
	// changed.
	ErrPrecondition = errors.New("precondition failed")

	// ErrForbidden marks an operation reserved to the administrator role.
	ErrForbidden = errors.New("forbidden")
)
