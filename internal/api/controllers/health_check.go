package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"weather-api/internal/scheduler"
)

const databasePingTimeout = 3 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StatusReporter exposes the registered upstream probes and their latest results.
type StatusReporter interface {
	ProbeNames() []string
	Statuses() map[string]scheduler.Status
}

type HealthCheckResponse struct {
	Status           string            `json:"status"`
	Database         string            `json:"database"`
	ExternalServices map[string]string `json:"external_services"`
}

// HealthCheckHandler checks API health, database connection, and external services.
// Upstream availability comes from the background probes so the endpoint never calls out.
func HealthCheckHandler(db Pinger, probes StatusReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthCheckResponse{
			Status:           "API is running",
			ExternalServices: make(map[string]string),
		}

		if probes != nil {
			statuses := probes.Statuses()
			for _, name := range probes.ProbeNames() {
				status, checked := statuses[name]
				if !checked {
					response.ExternalServices[name] = "Pending"
					continue
				}
				response.ExternalServices[name] = describe(status)
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), databasePingTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			response.Database = "Database connection failed"
			respondWithJSON(w, http.StatusServiceUnavailable, response)
			return
		}

		response.Database = "Database connection is healthy"
		respondWithJSON(w, http.StatusOK, response)
	}
}

func describe(status scheduler.Status) string {
	if status.Up {
		return "Available"
	}
	return "Unavailable"
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
