package api

import (
	"net/http"

	"weather-api/internal/api/controllers"
	"weather-api/internal/api/handlers"
	"weather-api/internal/middleware"
	"weather-api/internal/observability"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything the HTTP layer needs.
type RouterConfig struct {
	WeatherHandler       *handlers.WeatherHandler
	LocationDataHandler  *handlers.LocationDataHandler
	LandmarkHandler      *handlers.LandmarkHandler
	SuggestionsHandler   *handlers.SuggestionsHandler
	WeatherRecordHandler *handlers.WeatherRecordHandler
	RecordStatsHandler   *handlers.RecordStatsHandler
	RequestLogHandler    *handlers.RequestLogHandler
	AuditLogHandler      *handlers.AuditLogHandler

	RequestLogger *middleware.RequestLogger
	RateLimiter   *middleware.RateLimiter
	Metrics       *observability.Metrics

	Database controllers.Pinger
	Probes   controllers.StatusReporter
}

func SetupRoutes(cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(cfg.Metrics))
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	router.HandleFunc("/health", controllers.HealthCheckHandler(cfg.Database, cfg.Probes)).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()
	// Without its own handler the subrouter reports a method mismatch as 404.
	api.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
	if cfg.RequestLogger != nil {
		api.Use(cfg.RequestLogger.LogRequest)
	}
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.RateLimit)
	}

	api.HandleFunc("/weather", cfg.WeatherHandler.GetWeather).Methods(http.MethodGet)
	api.HandleFunc("/location-data", cfg.LocationDataHandler.GetLocationData).Methods(http.MethodGet)
	api.HandleFunc("/landmarks", cfg.LandmarkHandler.ListLandmarks).Methods(http.MethodGet)
	api.HandleFunc("/suggestions", cfg.SuggestionsHandler.GetSuggestions).Methods(http.MethodGet)

	records := cfg.WeatherRecordHandler
	// Fixed paths are registered before {id} so they are not shadowed.
	api.HandleFunc("/weather-records/stats", cfg.RecordStatsHandler.GetRecordStats).Methods(http.MethodGet)
	api.HandleFunc("/weather-records/export", records.ExportRecords).Methods(http.MethodGet)
	api.HandleFunc("/weather-records", records.ListRecords).Methods(http.MethodGet)
	api.HandleFunc("/weather-records", records.CreateRecord).Methods(http.MethodPost)
	api.HandleFunc("/weather-records", records.UpdateRecord).Methods(http.MethodPut)
	api.HandleFunc("/weather-records", records.DeleteRecord).Methods(http.MethodDelete)
	api.HandleFunc("/weather-records/{id:[0-9]+}", records.GetRecord).Methods(http.MethodGet)
	api.HandleFunc("/weather-records/{id:[0-9]+}", records.UpdateRecord).Methods(http.MethodPut)
	api.HandleFunc("/weather-records/{id:[0-9]+}", records.DeleteRecord).Methods(http.MethodDelete)

	api.HandleFunc("/request-logs", cfg.RequestLogHandler.GetLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs", cfg.AuditLogHandler.ListAuditLogs).Methods(http.MethodGet)

	return router
}
