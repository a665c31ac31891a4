package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "url",
		Message: "URL is required",
	}

	expected := "validation error on field 'url': URL is required"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestExternalAPIError_Error(t *testing.T) {
	err := &ExternalAPIError{
		StatusCode: 503,
		Message:    "service unavailable",
		API:        "corsproxy",
	}

	expected := "external API error from corsproxy: 503 - service unavailable"
	if err.Error() != expected {
		t.Errorf("ExternalAPIError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestInvalidURLError_Error(t *testing.T) {
	err := &InvalidURLError{URL: "ftp://x", Reason: "unsupported scheme"}

	expected := `invalid feed url "ftp://x": unsupported scheme`
	if err.Error() != expected {
		t.Errorf("InvalidURLError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestAllTransportsFailedError_UnwrapsLastAttempt(t *testing.T) {
	last := &ExternalAPIError{StatusCode: 502, API: "direct"}
	err := &AllTransportsFailedError{
		URL: "https://example.com/feed.xml",
		Attempts: []TransportAttempt{
			{Strategy: "allorigins", Err: errors.New("timeout")},
			{Strategy: "direct", Err: last},
		},
	}

	if err.LastErr() != last {
		t.Error("LastErr should return the final attempt's error")
	}
	if !IsExternalAPI(err) {
		t.Error("AllTransportsFailedError should unwrap to the final attempt's error")
	}
	msg := err.Error()
	if msg == "" {
		t.Fatal("Error() returned empty string")
	}
	for _, want := range []string{"allorigins", "direct", "https://example.com/feed.xml"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to mention %q", msg, want)
		}
	}
}

func TestAllTransportsFailedError_NoAttempts(t *testing.T) {
	err := &AllTransportsFailedError{URL: "https://example.com/feed.xml"}

	if err.LastErr() != nil {
		t.Error("LastErr should be nil without attempts")
	}
	if err.Error() != "all transports failed for https://example.com/feed.xml" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestNonXMLResponseError_Error(t *testing.T) {
	plain := &NonXMLResponseError{URL: "https://a", Snippet: "{\"x\":1}"}
	decode := &NonXMLResponseError{URL: "https://a", DecodeFailed: true}

	if !strings.Contains(plain.Error(), "non-XML response") {
		t.Errorf("unexpected message %q", plain.Error())
	}
	if decode.Error() != "unable to decode feed content from https://a" {
		t.Errorf("unexpected message %q", decode.Error())
	}
}

func TestMissingChannelError_Error(t *testing.T) {
	if (&MissingChannelError{}).Error() != "invalid RSS feed: no channel element found" {
		t.Error("unexpected message for bare MissingChannelError")
	}
	if !strings.Contains((&MissingChannelError{DetectedType: "atom"}).Error(), "atom") {
		t.Error("MissingChannelError should mention the detected type")
	}
}

func TestIsHelpers_WrappedErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", &ValidationError{Field: "url"}, IsValidation},
		{"invalid url", &InvalidURLError{URL: "x"}, IsInvalidURL},
		{"external api", &ExternalAPIError{StatusCode: 500}, IsExternalAPI},
		{"transports", &AllTransportsFailedError{URL: "x"}, IsAllTransportsFailed},
		{"non xml", &NonXMLResponseError{URL: "x"}, IsNonXMLResponse},
		{"malformed", &MalformedXMLError{Cause: errors.New("eof")}, IsMalformedXML},
		{"missing channel", &MissingChannelError{}, IsMissingChannel},
		{"too large", &FeedTooLargeError{Source: "x", Limit: 1}, IsFeedTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !tt.check(tt.err) {
				t.Errorf("check failed for bare %s error", tt.name)
			}
			if !tt.check(wrapped) {
				t.Errorf("check failed for wrapped %s error", tt.name)
			}
			if tt.check(errors.New("plain")) {
				t.Errorf("check matched a plain error for %s", tt.name)
			}
		})
	}
}

func TestIsHard(t *testing.T) {
	if !IsHard(&MalformedXMLError{Cause: errors.New("x")}) {
		t.Error("malformed XML should be hard")
	}
	if !IsHard(&MissingChannelError{}) {
		t.Error("missing channel should be hard")
	}
	if !IsHard(&InvalidURLError{}) {
		t.Error("invalid url should be hard")
	}
	if IsHard(&AllTransportsFailedError{}) {
		t.Error("transport exhaustion should be soft")
	}
	if IsHard(&NonXMLResponseError{}) {
		t.Error("non-XML response should be soft")
	}
	if IsHard(&FeedTooLargeError{}) {
		t.Error("oversized response should be soft")
	}
}

func TestMalformedXMLError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &MalformedXMLError{Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("MalformedXMLError should unwrap to its cause")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	original := &ValidationError{Field: "url", Message: "bad"}
	wrapped := WrapError(original, "parsing feed")
	if !IsValidation(wrapped) {
		t.Error("WrapError should preserve the error chain")
	}
	if wrapped.Error() != "parsing feed: validation error on field 'url': bad" {
		t.Errorf("unexpected wrapped message %q", wrapped.Error())
	}
}
