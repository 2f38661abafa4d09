package apperr

import (
	"errors"
	"fmt"
	"time"
)

// Sentinels for domain failures that carry no extra state.
var (
	ErrNotFound       = errors.New("not found")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrCheckoutFailed = errors.New("failed to process transaction")
	ErrUnauthorized   = errors.New("unauthorized")
)

// ValidationError carries field-level messages for 422 responses.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// OrNil lets validators build up errors and return nil when everything passed.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// NotFoundError names the entity that was looked up.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Entity) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NewNotFound(entity string) *NotFoundError { return &NotFoundError{Entity: entity} }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// LockedOutError is returned while the login attempt counter is saturated.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return "too many login attempts, please try again later"
}

func NewLockedOut(retryAfter time.Duration) *LockedOutError {
	return &LockedOutError{RetryAfter: retryAfter}
}

// AuthError covers bad credentials and missing/invalid tokens.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "authentication failed"
	}
	return e.Reason
}

func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }

func NewAuth(reason string) *AuthError { return &AuthError{Reason: reason} }
