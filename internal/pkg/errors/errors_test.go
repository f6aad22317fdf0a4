package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"location not found", LocationNotFound("Location not found"), http.StatusNotFound},
		{"no forecast", NoForecastData("none"), http.StatusBadRequest},
		{"upstream keeps status", Upstream(http.StatusUnauthorized, "denied"), http.StatusUnauthorized},
		{"upstream default", Upstream(0, "down"), http.StatusBadGateway},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestRateLimited(t *testing.T) {
	err := RateLimited("Slow down")

	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, http.StatusTooManyRequests, StatusOf(err))
	assert.Equal(t, "Slow down", MessageOf(err, "fallback"))
}

func TestMessageOf(t *testing.T) {
	wrapped := fmt.Errorf("create record: %w", InvalidInput("Invalid date format"))

	assert.Equal(t, "Invalid date format", MessageOf(wrapped, "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("pq: connection refused"), "fallback"))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, "Error saving record")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "INTERNAL_ERROR", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}
