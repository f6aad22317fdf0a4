package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins []string
	HTTPTimeout    time.Duration
	ProbeInterval  time.Duration

	OpenWeather ProviderConfig
	YouTube     ProviderConfig

	Log       LogConfig
	Database  PoolConfig
	Kafka     KafkaConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
}

// ProviderConfig holds credentials for a third-party API
type ProviderConfig struct {
	APIKey  string
	BaseURL string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	File       string // empty logs to stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// PoolConfig holds database connection pool settings
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig enables record change events when Brokers is non-empty
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5050")
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("http_timeout", 10*time.Second)
	v.SetDefault("probe_interval", 5*time.Minute)

	v.SetDefault("openweather_base_url", "https://api.openweathermap.org")
	v.SetDefault("youtube_base_url", "https://www.googleapis.com")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("log_max_size_mb", 100)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)

	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 25)
	v.SetDefault("db_conn_max_lifetime", 5*time.Minute)

	v.SetDefault("kafka_topic", "weather-record-events")

	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", 10*time.Minute)
	v.SetDefault("geocode_cache_ttl", 24*time.Hour)

	v.SetDefault("rate_limit", 120)
	v.SetDefault("rate_limit_window", time.Minute)
}

// Load reads configuration from an optional config.yaml and environment variables.
// Environment variables use the upper-case key, e.g. DATABASE_URL.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		DatabaseURL:    v.GetString("database_url"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
		HTTPTimeout:    v.GetDuration("http_timeout"),
		ProbeInterval:  v.GetDuration("probe_interval"),
		OpenWeather: ProviderConfig{
			APIKey:  v.GetString("openweather_api_key"),
			BaseURL: strings.TrimRight(v.GetString("openweather_base_url"), "/"),
		},
		YouTube: ProviderConfig{
			APIKey:  v.GetString("youtube_api_key"),
			BaseURL: strings.TrimRight(v.GetString("youtube_base_url"), "/"),
		},
		Log: LogConfig{
			Level:      v.GetString("log_level"),
			Format:     v.GetString("log_format"),
			File:       v.GetString("log_file"),
			MaxSizeMB:  v.GetInt("log_max_size_mb"),
			MaxBackups: v.GetInt("log_max_backups"),
			MaxAgeDays: v.GetInt("log_max_age_days"),
		},
		Database: PoolConfig{
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("kafka_brokers")),
			Topic:   v.GetString("kafka_topic"),
		},
		Cache:     newCacheConfig(v),
		RateLimit: newRateLimitConfig(v),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}
	if cfg.Port == "" {
		cfg.Port = "5050"
	}

	return cfg, nil
}

// Addr returns the listen address in the format ":port"
func (c *Config) Addr() string {
	return ":" + c.Port
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
