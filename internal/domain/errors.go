package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnauthenticated    = errors.New("user not logged in")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("an account with this email already exists")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrCannotMatchSelf    = errors.New("cannot match with yourself")
	ErrValidation         = errors.New("validation failed")
	ErrEncoding           = errors.New("photo could not be encoded")
	ErrUpload             = errors.New("media upload failed")
	ErrDecode             = errors.New("document is missing required fields")
	ErrInvalidInput       = errors.New("invalid input")
)

// ValidationError carries every failing rule so the client can show them all at once.
type ValidationError struct {
	Problems []string
}

func NewValidationError(problems []string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
