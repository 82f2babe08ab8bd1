package service

import (
	"errors"
	"fmt"
)

// Common errors shared by the services and mapped to HTTP in the handlers.
var (
	// Resource absent, or deliberately indistinguishable from forbidden
	// (venue delete hides existence from non-owners).
	ErrNotFound = errors.New("resource not found")

	// Authenticated but not permitted
	ErrForbidden = errors.New("operation not allowed for the current user")

	// One report per (venue, reporter) pair
	ErrDuplicateReport = errors.New("you have already reported this venue")

	// Image upload rejections
	ErrImageTooLarge       = errors.New("image exceeds the maximum allowed size of 5 MiB")
	ErrImageTypeNotAllowed = errors.New("image type is not allowed (jpg, jpeg, png, gif)")
)

// ValidationError reports the specific field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsRejected reports whether err is an image constraint rejection.
func IsRejected(err error) bool {
	return errors.Is(err, ErrImageTooLarge) || errors.Is(err, ErrImageTypeNotAllowed)
}
