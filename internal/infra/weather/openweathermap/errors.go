package openweathermap

import (
	"fmt"
	"net/http"
)

// APIError is returned when OpenWeatherMap answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openweathermap error %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports an invalid or expired API key.
func (e *APIError) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// RateLimited reports that the account exceeded its call quota.
func (e *APIError) RateLimited() bool { return e.StatusCode == http.StatusTooManyRequests }

// BadRequest reports a malformed query such as an unparseable location.
func (e *APIError) BadRequest() bool { return e.StatusCode == http.StatusBadRequest }

// NetworkError wraps transport failures.
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func newAPIError(status int, body string) *APIError {
	msg := body
	switch status {
	case http.StatusUnauthorized:
		msg = "api key is invalid or expired"
	case http.StatusTooManyRequests:
		msg = "call limit exceeded"
	case http.StatusBadRequest:
		msg = "invalid request: " + body
	}
	return &APIError{StatusCode: status, Message: msg}
}
