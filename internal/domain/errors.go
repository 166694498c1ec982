// Package domain contains the QuoteFlow business types and errors.
// Domain errors describe business-level failures, not HTTP errors; adapters
// map them onto their own transport.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a record failed input validation.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrUpstream indicates a remote quote source could not be fetched.
	ErrUpstream = errors.New("upstream fetch failed")

	// ErrRender indicates the wallpaper renderer could not produce an image.
	ErrRender = errors.New("render failed")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError names the offending field of a rejected record.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// UnavailableError reports a dependency that cannot currently serve requests.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// UpstreamError is returned when a remote quote source fails or answers
// with something other than a quote list. Cause may be nil.
type UpstreamError struct {
	Source  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *UpstreamError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrUpstream, e.Cause}
	}

	return []error{ErrUpstream}
}

// NewUpstreamError creates an upstream fetch error.
func NewUpstreamError(source, message string, cause error) error {
	return &UpstreamError{Source: source, Message: message, Cause: cause}
}

// RenderError wraps a failure at a named stage of wallpaper rendering.
type RenderError struct {
	Stage string
	Cause error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render %s: %v", e.Stage, e.Cause)
	}

	return "render " + e.Stage + " failed"
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *RenderError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrRender, e.Cause}
	}

	return []error{ErrRender}
}

// NewRenderError creates a render failure for the given stage.
func NewRenderError(stage string, cause error) error {
	return &RenderError{Stage: stage, Cause: cause}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsUpstream checks if an error came from a remote quote source.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsRender checks if an error is a wallpaper render failure.
func IsRender(err error) bool {
	return errors.Is(err, ErrRender)
}
