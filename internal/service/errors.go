// Package service holds the errors shared by the domain services.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input that can never succeed as sent.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks missing or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict marks a request that clashes with the current state.
	ErrConflict = errors.New("conflict")
)

// Invalid wraps ErrValidation with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
