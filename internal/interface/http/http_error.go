package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/singhHarcharan/trip-planner-agent/pkg/errors"
)

// HTTPError is what errorHandlingMiddleware renders into the
// {"error":{"code","message"}} envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// codeStatus maps domain AppError codes to response statuses. invalid_input
// is reported to clients as invalid_request.
var codeStatus = map[string]int{
	"invalid_input":       http.StatusBadRequest,
	"location_not_found":  http.StatusNotFound,
	"weather_unavailable": http.StatusBadGateway,
	"llm_error":           http.StatusBadGateway,
	"embedding_error":     http.StatusBadGateway,
	"booking_error":       http.StatusBadGateway,
	"storage_error":       http.StatusServiceUnavailable,
	"index_error":         http.StatusServiceUnavailable,
	"document_error":      http.StatusServiceUnavailable,
}

// domainError converts a service error. Unknown codes become fallbackCode
// with a 500.
func domainError(err error, fallbackCode string) *HTTPError {
	code := apperrors.CodeOf(err)
	status, known := codeStatus[code]
	switch {
	case !known:
		return NewHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
	case code == "invalid_input":
		return NewHTTPError(status, "invalid_request", errMessage(err), err)
	default:
		return NewHTTPError(status, code, errMessage(err), err)
	}
}

func asHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err != nil {
		_ = c.Error(err)
		c.Abort()
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
