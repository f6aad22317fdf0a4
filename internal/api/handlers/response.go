package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"weather-api/internal/logger"
	apperrors "weather-api/internal/pkg/errors"

	"github.com/sirupsen/logrus"
)

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.LogEvent(logrus.ErrorLevel, "Failed to encode response", logrus.Fields{"error": err.Error()})
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps err to its HTTP status. Only messages of *apperrors.Error reach
// the client; anything else is reported as an internal error.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusOf(err)
	message := apperrors.MessageOf(err, "Internal server error occurred")

	if status >= http.StatusInternalServerError {
		fields := logrus.Fields{"path": r.URL.Path, "status": status, "error": err.Error()}
		if cause := errors.Unwrap(err); cause != nil {
			fields["cause"] = cause.Error()
		}
		logger.LogEvent(logrus.ErrorLevel, "Request failed", fields)
	}

	respondWithError(w, status, message)
}

// ParsePaginationParams reads limit and offset from the query. Missing or invalid values are 0.
// MethodNotAllowed answers a known path requested with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func ParsePaginationParams(r *http.Request) (limit, offset int) {
	query := r.URL.Query()

	if limitParam := query.Get("limit"); limitParam != "" {
		if parsedLimit, err := strconv.Atoi(limitParam); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if offsetParam := query.Get("offset"); offsetParam != "" {
		if parsedOffset, err := strconv.Atoi(offsetParam); err == nil && parsedOffset > 0 {
			offset = parsedOffset
		}
	}

	return limit, offset
}
