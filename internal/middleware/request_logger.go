package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"weather-api/internal/logger"
	"weather-api/internal/services"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

type RequestLogger struct {
	logService services.RequestLogService
	clock      clockwork.Clock
}

func NewRequestLogger(logService services.RequestLogService, clock clockwork.Clock) *RequestLogger {
	return &RequestLogger{
		logService: logService,
		clock:      clock,
	}
}

// LogRequest persists a request log row for every API call. It must run inside
// LoggingMiddleware so the request ID is available.
func (rl *RequestLogger) LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := rl.clock.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		entry := services.RequestLogEntry{
			ClientIP:   ClientIP(r),
			Endpoint:   r.URL.Path,
			Method:     r.Method,
			StatusCode: rw.statusCode,
			Summary:    createRequestSummary(r),
			Duration:   rl.clock.Since(start),
			Timestamp:  start,
		}
		if info, ok := services.RequestInfoFromContext(r.Context()); ok {
			entry.RequestID = info.RequestID
		}

		// Persist even when the client has disconnected.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
		defer cancel()

		if err := rl.logService.LogRequest(ctx, entry); err != nil {
			logger.Logger.WithFields(logrus.Fields{
				"error":      err,
				"request_id": entry.RequestID,
				"path":       r.URL.Path,
			}).Error("Failed to log request")
		}
	})
}

func createRequestSummary(r *http.Request) string {
	path := strings.TrimSuffix(r.URL.Path, "/")
	query := r.URL.Query()

	switch {
	case path == "/api/weather":
		return "Weather lookup for: " + query.Get("location")
	case path == "/api/location-data":
		return "Location data for: " + query.Get("location")
	case path == "/api/suggestions":
		return "Location suggestions for: " + query.Get("search")
	case path == "/api/landmarks":
		return "Landmark listing"
	case path == "/api/weather-records/export":
		format := query.Get("format")
		if format == "" {
			format = "json"
		}
		return "Weather record export as " + format
	case path == "/api/weather-records/stats":
		return "Weather record statistics"
	case strings.HasPrefix(path, "/api/weather-records"):
		switch r.Method {
		case http.MethodPost:
			return "Create weather record"
		case http.MethodPut:
			return "Update weather record"
		case http.MethodDelete:
			return "Delete weather record"
		}
		if path == "/api/weather-records" {
			return "List weather records"
		}
		return "Get weather record"
	}
	return "API request"
}
