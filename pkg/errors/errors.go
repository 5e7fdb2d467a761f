package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates invalid input data or configuration
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid authentication
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates an optional collaborator is not configured
	ErrUnavailable = errors.New("unavailable")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// UnauthorizedError creates an unauthorized error with context
func UnauthorizedError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrUnauthorized)
	}
	return ErrUnauthorized
}

// UnavailableError creates an unavailable error naming the missing collaborator
func UnavailableError(what string) error {
	return fmt.Errorf("%s %w", what, ErrUnavailable)
}

// InternalError marks cause as internal. Both ErrInternal and cause match errors.Is.
func InternalError(msg string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", msg, ErrInternal)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrInternal, cause)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
