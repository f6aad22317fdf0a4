package errors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrLocationNotFound = errors.New("location not found")
	ErrNoForecastData   = errors.New("no forecast data available")
	ErrUpstream         = errors.New("upstream service error")
	ErrConfiguration    = errors.New("configuration error")
	ErrRateLimited      = errors.New("rate limit exceeded")
)

// Error is the error type surfaced to API clients. Message is safe to return verbatim.
type Error struct {
	Err     error
	Message string
	Code    string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Wrap(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
		Code:    "INTERNAL_ERROR",
		Status:  http.StatusInternalServerError,
	}
}

func InvalidInput(message string) *Error {
	return &Error{
		Err:     ErrInvalidInput,
		Message: message,
		Code:    "INVALID_INPUT",
		Status:  http.StatusBadRequest,
	}
}

func NotFound(message string) *Error {
	return &Error{
		Err:     ErrNotFound,
		Message: message,
		Code:    "NOT_FOUND",
		Status:  http.StatusNotFound,
	}
}

func LocationNotFound(message string) *Error {
	return &Error{
		Err:     ErrLocationNotFound,
		Message: message,
		Code:    "LOCATION_NOT_FOUND",
		Status:  http.StatusNotFound,
	}
}

func NoForecastData(message string) *Error {
	return &Error{
		Err:     ErrNoForecastData,
		Message: message,
		Code:    "NO_FORECAST_DATA",
		Status:  http.StatusBadRequest,
	}
}

// Upstream reports a failed call to a third-party API. Statuses below 400 map to 502.
func Upstream(status int, message string) *Error {
	if status < http.StatusBadRequest {
		status = http.StatusBadGateway
	}
	return &Error{
		Err:     ErrUpstream,
		Message: message,
		Code:    "UPSTREAM_ERROR",
		Status:  status,
	}
}

func RateLimited(message string) *Error {
	return &Error{
		Err:     ErrRateLimited,
		Message: message,
		Code:    "RATE_LIMITED",
		Status:  http.StatusTooManyRequests,
	}
}

func Configuration(message string) *Error {
	return &Error{
		Err:     ErrConfiguration,
		Message: message,
		Code:    "CONFIGURATION_ERROR",
		Status:  http.StatusInternalServerError,
	}
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNoForecastData):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err, hiding internal details.
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
