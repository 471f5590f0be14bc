// Package errors provides structured error types for the viewer core.
//
// Errors carry a category, a stable code, and a recoverability flag so
// callers can decide whether to surface a failure to the user (generation
// errors are retryable) or degrade silently (storage errors leave the
// in-memory state authoritative).
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeGeneration ErrorType = "generation"
	ErrorTypeInternal   ErrorType = "internal"
)

// NeuroError is a structured error type with context.
type NeuroError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Component   string
	Recoverable bool
}

// Error implements the error interface.
func (e *NeuroError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}
	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *NeuroError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *NeuroError) Is(target error) bool {
	var t *NeuroError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *NeuroError) WithContext(key string, value interface{}) *NeuroError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithComponent adds component context.
func (e *NeuroError) WithComponent(component string) *NeuroError {
	e.Component = component

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *NeuroError {
	return &NeuroError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewStorageError creates a storage error. Storage errors are recoverable:
// the in-memory registry remains the source of truth when a write fails.
func NewStorageError(code, message string, cause error) *NeuroError {
	return &NeuroError{
		Type:        ErrorTypeStorage,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewGenerationError creates a content-generation error. These are the only
// errors surfaced to the user, and they are always retryable.
func NewGenerationError(code, message string, cause error) *NeuroError {
	return &NeuroError{
		Type:        ErrorTypeGeneration,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *NeuroError {
	return &NeuroError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable reports whether the error (or any wrapped NeuroError)
// is marked recoverable.
func IsRecoverable(err error) bool {
	var ne *NeuroError
	if errors.As(err, &ne) {
		return ne.Recoverable
	}

	return false
}

// IsType reports whether the error belongs to the given category.
func IsType(err error, t ErrorType) bool {
	var ne *NeuroError
	if errors.As(err, &ne) {
		return ne.Type == t
	}

	return false
}
