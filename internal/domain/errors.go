package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries every violated field of a rejected payload, keyed by
// field name. It maps to a 422 response and never reaches storage.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty validation error ready to collect violations
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for a field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Merge folds another validation error's fields into this one
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		e.Fields[field] = append(e.Fields[field], msgs...)
	}
}

// HasErrors reports whether any field was rejected
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error itself when violations were collected, nil otherwise
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// NotFoundError signals a missing record. Message is user-facing and already
// localized ("Empresa no encontrada").
type NotFoundError struct {
	Entity  string
	ID      uint
	Message string
}

// NewNotFoundError creates a not-found error for an entity
func NewNotFoundError(entity, message string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id, Message: message}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError signals a uniqueness violation that slipped past pre-write
// validation, surfaced by a storage constraint.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// AuthError signals bad credentials or a missing/invalid/revoked token
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ErrInvalidCredentials is returned by login when email or password is wrong
var ErrInvalidCredentials = &AuthError{Message: "Credenciales inválidas"}

// AsValidationError unwraps err into a *ValidationError when possible
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsNotFoundError unwraps err into a *NotFoundError when possible
func AsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	ok := errors.As(err, &nfe)
	return nfe, ok
}

// AsConflictError unwraps err into a *ConflictError when possible
func AsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}

// AsAuthError unwraps err into an *AuthError when possible
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	ok := errors.As(err, &ae)
	return ae, ok
}
