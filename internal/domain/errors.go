package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUpstream     = errors.New("upstream service failed")
)

// UpstreamError reports a failed call to a required collaborator (language model, store).
// The message is surfaced to the client as the problem detail.
type UpstreamError struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap exposes the underlying cause
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is() to match against ErrUpstream
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// StatusCode implements the HTTPError interface
func (e *UpstreamError) StatusCode() int {
	return http.StatusInternalServerError
}

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (user, session)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface.
// Duplicate registrations are reported as bad requests.
func (e *ConflictError) StatusCode() int {
	return http.StatusBadRequest
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// MessageError pairs a sentinel kind with a client-facing message.
// Error returns only the message so it can be shown as a problem detail.
type MessageError struct {
	Kind    error
	Message string
}

// NewError creates a MessageError of the given kind
func NewError(kind error, message string) error {
	return &MessageError{Kind: kind, Message: message}
}

// Error implements the error interface
func (e *MessageError) Error() string {
	return e.Message
}

// Unwrap allows errors.Is() to match the kind
func (e *MessageError) Unwrap() error {
	return e.Kind
}
