package usecase

import (
	"errors"

	"movie-discovery/pkg/utils"
)

// Failures surfaced to the HTTP layer. Services wrap them with detail, callers
// match with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateUser       = errors.New("user already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrNotFound            = errors.New("not found")
	ErrEmptyQuery          = errors.New("search query is empty")
	ErrProviderUnavailable = errors.New("movie provider unavailable")
)

// ValidationError carries per-field messages and matches ErrInvalidInput
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
