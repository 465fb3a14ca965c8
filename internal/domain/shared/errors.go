package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidIdentifier  = NewDomainError("INVALID_IDENTIFIER", "Identifier is missing or malformed")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Unknown username or wrong password")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock  = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInsufficientFunds  = NewDomainError("INSUFFICIENT_FUNDS", "Operation would drive the balance negative")
	ErrPersistence        = NewDomainError("PERSISTENCE_FAILURE", "Persistent store operation failed")
)

// CodeOf returns the code of a domain error, or an empty string for any
// other error value.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err is a domain error carrying the given code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// NewPersistenceError wraps a store failure so it is never surfaced to a
// caller as a false success or a bare driver error.
func NewPersistenceError(err error) *DomainError {
	if err == nil {
		return ErrPersistence
	}
	return NewDomainError("PERSISTENCE_FAILURE", "Persistent store operation failed: "+err.Error())
}
