// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"context"
	stderrors "errors"

	"github.com/danielgtaylor/huma/v2"

	"podfeed-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsInvalidURL(err), errors.IsValidation(err):
		return huma.Error400BadRequest(err.Error())
	case errors.IsMalformedXML(err), errors.IsMissingChannel(err):
		return huma.Error422UnprocessableEntity("Feed could not be parsed", err)
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return huma.Error504GatewayTimeout("Feed request timed out")
	case errors.IsAllTransportsFailed(err), errors.IsNonXMLResponse(err):
		// Unwraps to the last attempt's error, so it must be matched before ExternalAPI
		return huma.Error502BadGateway("Feed could not be fetched", err)
	}

	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("External service error", err)
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by external service")
		case apiErr.StatusCode >= 400:
			return huma.Error400BadRequest("External service request error", err)
		default:
			return huma.Error500InternalServerError("Unexpected external service response", err)
		}
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
