package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"weather-api/internal/api"
	"weather-api/internal/api/handlers"
	"weather-api/internal/config"
	"weather-api/internal/db"
	"weather-api/internal/events"
	"weather-api/internal/logger"
	"weather-api/internal/middleware"
	"weather-api/internal/observability"
	"weather-api/internal/providers/openweather"
	"weather-api/internal/providers/youtube"
	"weather-api/internal/repository"
	"weather-api/internal/scheduler"
	"weather-api/internal/services"
	"weather-api/internal/timezone"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	if err := logger.Configure(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		log.Fatal("Invalid log configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Logger.WithError(err).Fatal("Server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	// Initialize database connection
	gormDB, err := db.Connect(cfg.DatabaseURL, cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	cache, err := services.NewCacheService(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	if closer, ok := cache.(io.Closer); ok {
		defer closer.Close()
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	weatherClient := openweather.NewClient(cfg.OpenWeather.APIKey, cfg.OpenWeather.BaseURL, httpClient, metrics)
	videoClient := youtube.NewClient(cfg.YouTube.APIKey, cfg.YouTube.BaseURL, httpClient, metrics)
	if !weatherClient.Configured() {
		logger.LogEvent(logrus.WarnLevel, "OpenWeather API key is missing", nil)
	}
	if !videoClient.Enabled() {
		logger.LogEvent(logrus.WarnLevel, "YouTube API key is missing; travel videos are disabled", nil)
	}

	timezones, err := timezone.NewService()
	if err != nil {
		logger.LogEvent(logrus.WarnLevel, "Timezone lookup unavailable; using forecast UTC offsets", logrus.Fields{"error": err.Error()})
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.LogEvent(logrus.InfoLevel, "Publishing record events to Kafka", logrus.Fields{
			"brokers": cfg.Kafka.Brokers,
			"topic":   cfg.Kafka.Topic,
		})
	}
	defer publisher.Close()

	// Initialize repositories
	landmarkRepo := repository.NewLandmarkRepository(gormDB)
	recordRepo := repository.NewWeatherRecordRepository(gormDB)
	statsRepo := repository.NewRecordStatsRepository(gormDB)
	requestLogRepo := repository.NewRequestLogRepository(gormDB)
	auditLogRepo := repository.NewAuditLogRepository(gormDB)

	// Initialize services
	weatherProvider := services.NewCachedWeatherProvider(weatherClient, cache, cfg.Cache.DefaultTTL, metrics)
	locationService := services.NewLocationService(weatherClient, landmarkRepo, recordRepo, cache, cfg.Cache.GeocodeTTL, metrics)
	weatherService := services.NewWeatherService(locationService, weatherProvider, timezones, clock)
	auditLogService := services.NewAuditLogService(auditLogRepo, clock)
	recordService := services.NewWeatherRecordService(recordRepo, locationService, weatherProvider, auditLogService, publisher, cache, clock, metrics)
	exportService := services.NewExportService(recordRepo, metrics)
	statsService := services.NewRecordStatsService(statsRepo, cache, cfg.Cache.DefaultTTL)
	requestLogService := services.NewRequestLogService(requestLogRepo)
	locationDataService := services.NewLocationDataService(locationService, videoClient)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, clock)

	jobs := scheduler.New(cfg.ProbeInterval, clock, metrics)
	jobs.AddProbe("database", sqlDB.PingContext)
	jobs.AddProbe("cache", cache.Ping)
	if weatherClient.Configured() {
		jobs.AddProbe("openweather", weatherClient.Ping)
	}
	jobs.AddTask(rateLimiter.Sweep)
	if err := jobs.Start(); err != nil {
		return err
	}
	defer jobs.Stop()

	router := api.SetupRoutes(api.RouterConfig{
		WeatherHandler:       handlers.NewWeatherHandler(weatherService),
		LocationDataHandler:  handlers.NewLocationDataHandler(locationDataService),
		LandmarkHandler:      handlers.NewLandmarkHandler(locationService),
		SuggestionsHandler:   handlers.NewSuggestionsHandler(locationService),
		WeatherRecordHandler: handlers.NewWeatherRecordHandler(recordService, exportService),
		RecordStatsHandler:   handlers.NewRecordStatsHandler(statsService),
		RequestLogHandler:    handlers.NewRequestLogHandler(requestLogService, clock),
		AuditLogHandler:      handlers.NewAuditLogHandler(auditLogService),
		RequestLogger:        middleware.NewRequestLogger(requestLogService, clock),
		RateLimiter:          rateLimiter,
		Metrics:              metrics,
		Database:             sqlDB,
		Probes:               jobs,
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			middleware.RequestIDHeader,
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			middleware.RequestIDHeader,
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	// Create server with timeouts
	srv := &http.Server{
		Handler:           corsMiddleware.Handler(router),
		Addr:              cfg.Addr(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.LogEvent(logrus.InfoLevel, "Server starting", logrus.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.LogEvent(logrus.InfoLevel, "Shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
