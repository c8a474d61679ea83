package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrContentNotFound    = errors.New("content not found")
	ErrNotOwner           = errors.New("content belongs to another user")
	ErrMissingToken       = errors.New("token not provided or invalid format")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrCreateInProgress   = errors.New("a create with this idempotency key is still in progress")
)

// OwnershipError names the operation that was refused. It matches ErrNotOwner.
type OwnershipError struct {
	Op string
}

func (e *OwnershipError) Error() string {
	return e.Op + ": " + ErrNotOwner.Error()
}

func (e *OwnershipError) Unwrap() error {
	return ErrNotOwner
}

// ValidationError carries one human-readable message per rejected field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}
