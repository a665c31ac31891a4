// ABOUTME: Custom error types for feed fetching and parsing
// ABOUTME: Separates hard failures (bad input, broken XML) from soft transport failures

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a validation error on caller input
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// InvalidURLError is returned when a feed URL cannot be fetched at all
type InvalidURLError struct {
	URL    string
	Reason string
}

// Error implements the error interface
func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid feed url %q: %s", e.URL, e.Reason)
}

// ExternalAPIError represents a non-2xx answer from an upstream host or proxy
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// TransportAttempt records the outcome of a single transport strategy
type TransportAttempt struct {
	Strategy string
	Err      error
}

// AllTransportsFailedError is returned when every transport strategy failed
type AllTransportsFailedError struct {
	URL      string
	Attempts []TransportAttempt
}

// Error implements the error interface
func (e *AllTransportsFailedError) Error() string {
	names := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		names = append(names, a.Strategy)
	}
	msg := fmt.Sprintf("all transports failed for %s", e.URL)
	if len(names) > 0 {
		msg += " (tried " + strings.Join(names, ", ") + ")"
	}
	if last := e.LastErr(); last != nil {
		msg += ": " + last.Error()
	}
	return msg
}

// LastErr returns the error of the final attempt
func (e *AllTransportsFailedError) LastErr() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

// Unwrap exposes the final attempt's error to errors.Is/As
func (e *AllTransportsFailedError) Unwrap() error {
	return e.LastErr()
}

// NonXMLResponseError is returned when a fetched payload is not XML
type NonXMLResponseError struct {
	URL     string
	Snippet string
	// DecodeFailed is set when a base64 data URI could not be decoded
	DecodeFailed bool
}

// Error implements the error interface
func (e *NonXMLResponseError) Error() string {
	if e.DecodeFailed {
		return fmt.Sprintf("unable to decode feed content from %s", e.URL)
	}
	return fmt.Sprintf("non-XML response from %s: %q", e.URL, e.Snippet)
}

// MalformedXMLError is returned when the feed text is not well-formed XML
type MalformedXMLError struct {
	Cause error
}

// Error implements the error interface
func (e *MalformedXMLError) Error() string {
	return fmt.Sprintf("malformed XML: %v", e.Cause)
}

// Unwrap returns the underlying decoder error
func (e *MalformedXMLError) Unwrap() error {
	return e.Cause
}

// MissingChannelError is returned when the document has no channel element
type MissingChannelError struct {
	// DetectedType names the feed format that was found instead, if any
	DetectedType string
}

// Error implements the error interface
func (e *MissingChannelError) Error() string {
	if e.DetectedType != "" && e.DetectedType != "unknown" {
		return fmt.Sprintf("invalid RSS feed: no channel element found (document looks like %s)", e.DetectedType)
	}
	return "invalid RSS feed: no channel element found"
}

// FeedTooLargeError is returned when a response body exceeds the read limit
type FeedTooLargeError struct {
	Source string
	Limit  int64
}

// Error implements the error interface
func (e *FeedTooLargeError) Error() string {
	return fmt.Sprintf("response from %s exceeds %d bytes", e.Source, e.Limit)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsInvalidURL checks if an error is an InvalidURLError
func IsInvalidURL(err error) bool {
	var urlErr *InvalidURLError
	return errors.As(err, &urlErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsAllTransportsFailed checks if an error is an AllTransportsFailedError
func IsAllTransportsFailed(err error) bool {
	var transportErr *AllTransportsFailedError
	return errors.As(err, &transportErr)
}

// IsNonXMLResponse checks if an error is a NonXMLResponseError
func IsNonXMLResponse(err error) bool {
	var nonXML *NonXMLResponseError
	return errors.As(err, &nonXML)
}

// IsMalformedXML checks if an error is a MalformedXMLError
func IsMalformedXML(err error) bool {
	var malformed *MalformedXMLError
	return errors.As(err, &malformed)
}

// IsMissingChannel checks if an error is a MissingChannelError
func IsMissingChannel(err error) bool {
	var missing *MissingChannelError
	return errors.As(err, &missing)
}

// IsFeedTooLarge checks if an error is a FeedTooLargeError
func IsFeedTooLarge(err error) bool {
	var tooLarge *FeedTooLargeError
	return errors.As(err, &tooLarge)
}

// IsHard reports whether err must be surfaced to the caller rather than
// replaced with a placeholder feed
func IsHard(err error) bool {
	return IsInvalidURL(err) || IsMalformedXML(err) || IsMissingChannel(err) || IsValidation(err)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
