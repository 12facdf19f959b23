// Package apperrors defines the error taxonomy shared by services and
// handlers: validation, capacity, gateway and authorization failures each
// map to a distinct HTTP status at the edge.
package apperrors

import "fmt"

// ValidationError signals a missing or malformed required field (HTTP 400)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidation creates a ValidationError naming the offending field
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CapacityError signals a selection exceeding remaining availability for a
// console type (HTTP 409)
type CapacityError struct {
	ConsoleType string
	Requested   int
	Available   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough %s units available: requested %d, %d remaining",
		e.ConsoleType, e.Requested, e.Available)
}

// GatewayError signals a remote payment/email provider failure or timeout
// (HTTP 500). The downstream message is preserved where available.
type GatewayError struct {
	Provider string
	Message  string
	Err      error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// AuthorizationError signals a failed or unprivileged role resolution.
// Role lookup failures fail closed through this type (HTTP 403).
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }
