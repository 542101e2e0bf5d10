package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected conditions. Handlers branch on these to pick
// status codes; anything else maps to a 500.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidPassword = errors.New("invalid password")

	ErrProjectNotFound = errors.New("project not found")
	ErrNotProjectOwner = errors.New("not the project owner")

	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrAlreadyFavorited = errors.New("project already favorited")
	ErrFavoriteBadInput = errors.New("favorite requires user and project ids")
)

// ValidationError reports a required field missing from a record handed to
// the sync orchestrator. It fails fast: the public store is never touched.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s is required", e.Field)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps a failure from the public profile store: the backend was
// unreachable or rejected the write. The reason is diagnostic only and safe
// to log; it is never sent to clients verbatim.
type StoreError struct {
	Op     string
	Reason string
	Err    error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("public store %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("public store %s: %s", e.Op, e.Reason)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsStoreError reports whether err is a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
