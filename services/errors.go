package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	// ErrorTypeInvalidCredentials covers bad email/password at login. It is
	// never split into "no such user" vs "wrong password".
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	// ErrorTypeUnauthorized means no valid identity could be established
	// (missing, malformed, or expired token, or an inactive account).
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	// ErrorTypeForbidden means a valid identity exists but lacks rights.
	ErrorTypeForbidden ErrorType = "forbidden"
	// ErrorTypeConflict covers duplicate unique resources.
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeNotFound covers missing domain records.
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation covers malformed request input.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeUnavailable means the identity store could not be reached.
	// Auth outcomes are never guessed at under doubt.
	ErrorTypeUnavailable ErrorType = "unavailable"
	// ErrorTypeInternal covers everything else.
	ErrorTypeInternal ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && (t.Message == "" || e.Message == t.Message)
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Domain error variables

var (
	// Authentication outcomes
	ErrInvalidCredentials = NewDomainError(ErrorTypeInvalidCredentials, "incorrect email or password", nil)
	ErrUnauthorized       = NewDomainError(ErrorTypeUnauthorized, "authentication failed", nil)

	// Permission outcomes
	ErrForbidden = NewDomainError(ErrorTypeForbidden, "insufficient permissions", nil)

	// Conflict outcomes
	ErrEmailTaken    = NewDomainError(ErrorTypeConflict, "email already registered", nil)
	ErrProfileExists = NewDomainError(ErrorTypeConflict, "dealer profile already exists", nil)

	// Not found outcomes
	ErrUserNotFound    = NewDomainError(ErrorTypeNotFound, "user not found", nil)
	ErrVehicleNotFound = NewDomainError(ErrorTypeNotFound, "vehicle not found", nil)
	ErrProfileNotFound = NewDomainError(ErrorTypeNotFound, "dealer profile not found", nil)

	// Infrastructure outcomes
	ErrStoreUnavailable = NewDomainError(ErrorTypeUnavailable, "identity store unavailable", nil)
)

// Error type checking helper functions

// IsInvalidCredentialsError checks if an error is an invalid credentials error
func IsInvalidCredentialsError(err error) bool {
	return hasType(err, ErrorTypeInvalidCredentials)
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return hasType(err, ErrorTypeUnauthorized)
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	return hasType(err, ErrorTypeForbidden)
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	return hasType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsUnavailableError checks if an error is a store unavailability error
func IsUnavailableError(err error) bool {
	return hasType(err, ErrorTypeUnavailable)
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return hasType(err, ErrorTypeInternal)
}

func hasType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(errType ErrorType, message string, err error) error {
	return NewDomainError(errType, message, err)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}

// WrapUnavailable wraps an error as a store unavailability error
func WrapUnavailable(message string, err error) error {
	return NewDomainError(ErrorTypeUnavailable, message, err)
}
