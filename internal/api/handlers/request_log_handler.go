package handlers

import (
	"net/http"
	"time"

	"weather-api/internal/logger"
	"weather-api/internal/models"
	"weather-api/internal/services"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

type RequestLogHandler struct {
	logService services.RequestLogService
	clock      clockwork.Clock
}

func NewRequestLogHandler(logService services.RequestLogService, clock clockwork.Clock) *RequestLogHandler {
	return &RequestLogHandler{
		logService: logService,
		clock:      clock,
	}
}

// GetLogs returns persisted API request logs between ?from= and ?to=, optionally for one ?endpoint=.
func (h *RequestLogHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	from, to := getTimeRange(r, h.clock.Now())

	var (
		logs []models.RequestLog
		err  error
	)
	if endpoint := r.URL.Query().Get("endpoint"); endpoint != "" {
		logs, err = h.logService.GetEndpointLogs(ctx, endpoint, from, to)
	} else {
		logs, err = h.logService.GetLogs(ctx, from, to)
	}
	if err != nil {
		logger.LogEvent(logrus.ErrorLevel, "Error fetching request logs", logrus.Fields{"error": err.Error()})
		respondWithError(w, http.StatusInternalServerError, "Error fetching logs")
		return
	}

	if logs == nil {
		logs = []models.RequestLog{}
	}
	respondWithJSON(w, http.StatusOK, logs)
}

// getTimeRange defaults to the month before now. Unparseable bounds keep the default.
func getTimeRange(r *http.Request, now time.Time) (time.Time, time.Time) {
	from := now.AddDate(0, -1, 0)
	to := now

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		if parsedFrom, err := time.Parse(time.RFC3339, fromStr); err == nil {
			from = parsedFrom
		}
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		if parsedTo, err := time.Parse(time.RFC3339, toStr); err == nil {
			to = parsedTo
		}
	}

	return from, to
}
