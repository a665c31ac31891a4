// ABOUTME: Error types for the podfeed library with structured error information
// ABOUTME: Classifies pipeline failures into validation, network, parsing and configuration errors

package podfeed

import (
	"context"
	"errors"
	"fmt"

	coreerrors "podfeed-api/core/errors"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation indicates invalid input parameters
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNetwork indicates the feed could not be fetched
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeParsing indicates the document is not a usable RSS feed
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeTimeout indicates the context ended first
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates invalid client options
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a podfeed library error
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrClientClosed is returned when operations are attempted on a closed client
var ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

// classify wraps a pipeline error into an *Error. The original stays
// reachable through errors.As.
func classify(err error, feedURL string) error {
	var libErr *Error
	if errors.As(err, &libErr) {
		return err
	}

	var e *Error
	switch {
	case coreerrors.IsInvalidURL(err), coreerrors.IsValidation(err):
		e = NewError(ErrorTypeValidation, "invalid feed URL")
	case coreerrors.IsMalformedXML(err), coreerrors.IsMissingChannel(err):
		e = NewError(ErrorTypeParsing, "feed could not be parsed")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		e = NewError(ErrorTypeTimeout, "request ended before the feed was fetched")
	case coreerrors.IsAllTransportsFailed(err), coreerrors.IsNonXMLResponse(err), coreerrors.IsExternalAPI(err):
		e = NewError(ErrorTypeNetwork, "feed could not be fetched")
	default:
		e = NewError(ErrorTypeInternal, "unexpected error")
	}
	e.Cause = err
	if feedURL != "" {
		e.WithContext("url", feedURL)
	}
	return e
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	return hasType(err, ErrorTypeNetwork)
}

// IsParsingError checks if an error is a parsing error
func IsParsingError(err error) bool {
	return hasType(err, ErrorTypeParsing)
}

func hasType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}
